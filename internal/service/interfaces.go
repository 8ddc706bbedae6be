package service

import (
	"context"
	"io"

	"github.com/ayase-dev/otodoke/internal/delivery"
	"github.com/ayase-dev/otodoke/internal/domain"
)

// CatalogService answers product-page and delivery-report queries. Each
// call reads the store once, builds a fresh graph, and throws it away;
// concurrent requests share nothing.
type CatalogService interface {
	// ProductDetail builds the catalog graph for one product, with all
	// schedule labels rendered for tag. Returns domain.ErrNotFound when the
	// product does not exist and *domain.IntegrityError when the catalog
	// references SKUs the store does not have.
	ProductDetail(ctx context.Context, productID string, tag domain.Locale) (*domain.Product, error)

	// DeliveryReport aggregates the product's SKUs against the current
	// baseline. onlyDelaying drops on-schedule SKUs from the result.
	DeliveryReport(ctx context.Context, productID string, tag domain.Locale, onlyDelaying bool) (*delivery.Report, error)

	// Products lists product summaries for pickers.
	Products(ctx context.Context) ([]domain.ProductSummary, error)
}

// ImportResult summarizes one schedule import run.
type ImportResult struct {
	Lines   int
	Updated int
	Missing []string
}

// ImportService applies bulk SKU schedule updates from CSV receiver lists.
type ImportService interface {
	// ImportSchedules reads "code,numeric" CSV rows (empty numeric clears
	// the override) and applies them to the product's SKUs.
	ImportSchedules(ctx context.Context, productID string, r io.Reader) (*ImportResult, error)
}
