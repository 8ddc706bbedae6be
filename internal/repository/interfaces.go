package repository

import (
	"context"

	"github.com/ayase-dev/otodoke/internal/domain"
)

// CatalogRepo is the persistence seam for the catalog graph. The core
// treats every call as a single suspending operation: no retries live here,
// and the returned rows are plain data the graph builder consumes.
type CatalogRepo interface {
	// GetProduct returns the raw product row with its variants and group
	// index, or domain.ErrNotFound.
	GetProduct(ctx context.Context, productID string) (*domain.ProductRow, error)

	// GetSKUs returns at most one row per requested code and is free to
	// omit codes that do not exist; callers must not assume completeness.
	GetSKUs(ctx context.Context, productID string, codes []string) ([]domain.SKURow, error)

	// ListProducts returns lightweight summaries for product pickers.
	ListProducts(ctx context.Context) ([]domain.ProductSummary, error)

	// UpsertProduct writes the product row and replaces its group index
	// and variants wholesale.
	UpsertProduct(ctx context.Context, row *domain.ProductRow) error

	// UpsertSKUs inserts or updates catalog entries keyed by (product, code).
	UpsertSKUs(ctx context.Context, productID string, rows []domain.SKURow) error

	// SetSKUSchedule updates one SKU's schedule override; nil clears it.
	// Returns false when no such SKU exists.
	SetSKUSchedule(ctx context.Context, productID, code string, numeric *int64) (bool, error)
}
