package redis

import (
	"context"
	"testing"
	"time"

	"designer-quiz-service/internal/domain"
	"designer-quiz-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestCatalogRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	loader := &countingLoader{
		CatalogLoader: memory.NewStaticCatalogLoader(map[string]domain.Catalog{
			"v1": sampleCatalog(),
		}),
	}
	repo := NewCatalogRepository(client, loader, time.Minute)

	catalog, err := repo.GetCatalog(context.Background(), "v1")
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if catalog.Len() != 1 {
		t.Fatalf("expected one question, got %d", catalog.Len())
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("catalog:v1") {
		t.Fatalf("expected redis key to be set")
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetCatalog(context.Background(), "v1")
	if err != nil {
		t.Fatalf("get catalog cached: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if q, ok := cached.Question(0); !ok || len(q.Options) != 2 {
		t.Fatalf("expected catalog round-trip through redis, got %+v", cached)
	}
}

func TestCatalogRepositoryLoaderErrorPropagates(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewCatalogRepository(client, memory.NewStaticCatalogLoader(nil), time.Minute)

	if _, err := repo.GetCatalog(context.Background(), "missing"); err != domain.ErrCatalogNotFound {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}
}

type countingLoader struct {
	CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context, version string) (domain.Catalog, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx, version)
}

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		Version: "v1",
		Questions: []domain.Question{
			{
				Index: 0,
				Text:  "How do you start?",
				Options: []domain.Option{
					{ID: "a", Text: "Plan", Weights: map[domain.Category]int{domain.CategoryStratega: 2}},
					{ID: "b", Text: "Build", Weights: map[domain.Category]int{domain.CategoryKivitelezo: 2}},
				},
			},
		},
	}
}
