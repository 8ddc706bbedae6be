package service

import (
	"context"

	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/repository"
	"github.com/google/uuid"
)

// SeedDemo writes a small demo catalog so serve/report/widget have
// something to show on a fresh database: one product, two variants, color
// and size selectors, and a couple of SKUs running late.
func SeedDemo(ctx context.Context, repo repository.CatalogRepo, cal *domain.Calendar) error {
	const productID = "prd_festival_tee"

	late := func(days int) domain.ScheduleOverride {
		slot := cal.Now().In(cal.Location()).AddDate(0, 0, days)
		return domain.ExplicitNumeric(domain.NumericDate(slot))
	}

	row := &domain.ProductRow{
		ProductID: productID,
		Title:     "フェスTシャツ 2026",
		Schedule:  domain.NoOverride(),
		Groups: map[string][]string{
			"color": {"TEE-RED", "TEE-BLUE", "TEE-GREEN"},
			"size":  {"SIZE-S", "SIZE-M", "SIZE-L"},
		},
		GroupOrder: []string{"color", "size"},
		Variants: []domain.VariantRow{
			{
				VariantID: uuid.New().String(),
				SKUCodes:  []string{"BASE-SHIP"},
				Groups: []domain.GroupRow{
					{Code: "color", Label: "カラー"},
					{Code: "size", Label: "サイズ"},
				},
			},
			{
				VariantID: uuid.New().String(),
				Schedule:  late(7),
				SKUCodes:  []string{"BASE-SHIP", "GIFT-BOX"},
				Groups: []domain.GroupRow{
					{Code: "color", Label: "カラー"},
					{Code: "size", Label: "サイズ"},
				},
			},
		},
	}
	if err := repo.UpsertProduct(ctx, row); err != nil {
		return err
	}

	skus := []domain.SKURow{
		{Code: "BASE-SHIP", Name: "基本送料", SortNumber: 90, SkipDeliveryCalc: true},
		{Code: "GIFT-BOX", Name: "ギフトボックス", DisplayName: "ギフト包装", SortNumber: 80, Schedule: late(7)},
		{Code: "TEE-RED", Name: "Tシャツ（レッド）", SortNumber: 10},
		{Code: "TEE-BLUE", Name: "Tシャツ（ブルー）", SortNumber: 20, Schedule: late(14)},
		{Code: "TEE-GREEN", Name: "Tシャツ（グリーン）", SortNumber: 30, Schedule: late(21)},
		{Code: "SIZE-S", Name: "サイズS", SortNumber: 40},
		{Code: "SIZE-M", Name: "サイズM", SortNumber: 50},
		{Code: "SIZE-L", Name: "サイズL", SortNumber: 60},
	}
	return repo.UpsertSKUs(ctx, productID, skus)
}
