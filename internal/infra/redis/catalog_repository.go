package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"designer-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches quiz content from a backing store (e.g., Postgres).
type CatalogLoader interface {
	LoadCatalog(ctx context.Context, version string) (domain.Catalog, error)
}

// CatalogRepository caches catalogs in Redis as JSON values, one key per
// version: SET catalog:{version} {json}. Cache misses fall through to the
// loader, deduplicated via singleflight.
type CatalogRepository struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context, version string) (domain.Catalog, error) {
	key := r.key(version)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
		var catalog domain.Catalog
		if err := json.Unmarshal(raw, &catalog); err == nil {
			return catalog, nil
		}
		// Corrupt cache entry; fall through and refill.
	}

	result, err, _ := r.sf.Do(version, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			var catalog domain.Catalog
			if err := json.Unmarshal(raw, &catalog); err == nil {
				return catalog, nil
			}
		}

		catalog, err := r.loader.LoadCatalog(ctx, version)
		if err != nil {
			return domain.Catalog{}, err
		}

		if raw, err := json.Marshal(catalog); err == nil {
			// best-effort cache write
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return catalog, nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	return result.(domain.Catalog), nil
}

func (r *CatalogRepository) key(version string) string {
	return "catalog:" + version
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
