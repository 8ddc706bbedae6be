package service

import (
	"context"

	"github.com/ayase-dev/otodoke/internal/catalog"
	"github.com/ayase-dev/otodoke/internal/delivery"
	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/repository"
)

type catalogService struct {
	repo repository.CatalogRepo
	cal  *domain.Calendar
}

// NewCatalogService wires a CatalogService over the given store and
// delivery calendar. The store is passed in explicitly; nothing here
// resolves collaborators from ambient request state.
func NewCatalogService(repo repository.CatalogRepo, cal *domain.Calendar) CatalogService {
	return &catalogService{repo: repo, cal: cal}
}

func (s *catalogService) ProductDetail(ctx context.Context, productID string, tag domain.Locale) (*domain.Product, error) {
	row, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	codes := catalog.SKUCodes(row)
	skuRows, err := s.repo.GetSKUs(ctx, productID, codes)
	if err != nil {
		return nil, err
	}
	return catalog.Build(row, skuRows, s.cal, tag)
}

func (s *catalogService) DeliveryReport(ctx context.Context, productID string, tag domain.Locale, onlyDelaying bool) (*delivery.Report, error) {
	product, err := s.ProductDetail(ctx, productID, tag)
	if err != nil {
		return nil, err
	}
	report := delivery.BuildReport(product.Variants, s.cal.Current(tag), onlyDelaying)
	return &report, nil
}

func (s *catalogService) Products(ctx context.Context) ([]domain.ProductSummary, error) {
	return s.repo.ListProducts(ctx)
}
