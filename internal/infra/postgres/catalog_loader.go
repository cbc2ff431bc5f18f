package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"designer-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads versioned catalog JSONB from Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context, version string) (domain.Catalog, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM catalogs WHERE version=$1`, version).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Catalog{}, domain.ErrCatalogNotFound
	}
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	var catalog domain.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return catalog, nil
}

// EnsureCatalog seeds the catalog row if its version is not present yet.
// Existing content is never overwritten.
func (l *CatalogLoader) EnsureCatalog(ctx context.Context, catalog domain.Catalog) error {
	raw, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	_, err = l.pool.Exec(ctx, `
		INSERT INTO catalogs (version, data) VALUES ($1, $2)
		ON CONFLICT (version) DO NOTHING`, catalog.Version, raw)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}
