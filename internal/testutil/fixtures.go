package testutil

import (
	"time"

	"github.com/ayase-dev/otodoke/internal/domain"
)

// FixedTime is the pinned clock shared by schedule tests: 2026-06-01 10:00 JST.
var FixedTime = time.Date(2026, 6, 1, 10, 0, 0, 0, JST())

// JST returns the Asia/Tokyo location tests evaluate schedules in.
func JST() *time.Location {
	return time.FixedZone("JST", 9*60*60)
}

// FixedCalendar returns a Calendar pinned to FixedTime with a 3-day lead,
// so the baseline slot is always 2026-06-04.
func FixedCalendar() *domain.Calendar {
	cal := domain.NewCalendar(3, JST())
	cal.Now = func() time.Time { return FixedTime }
	return cal
}

// FestivalTeeRow is a two-variant product row mirroring the demo seed:
// color and size selector groups, one gift-wrapped variant with its own
// schedule.
func FestivalTeeRow() *domain.ProductRow {
	return &domain.ProductRow{
		ProductID: "prd_tee",
		Title:     "フェスTシャツ",
		Schedule:  domain.NoOverride(),
		Groups: map[string][]string{
			"color": {"TEE-RED", "TEE-BLUE", "TEE-GREEN"},
			"size":  {"SIZE-S", "SIZE-M"},
		},
		GroupOrder: []string{"color", "size"},
		Variants: []domain.VariantRow{
			{
				VariantID: "var_plain",
				SKUCodes:  []string{"BASE-SHIP"},
				Groups: []domain.GroupRow{
					{Code: "color", Label: "カラー"},
					{Code: "size", Label: "サイズ"},
				},
			},
			{
				VariantID: "var_gift",
				Schedule:  domain.ExplicitNumeric(20260611),
				SKUCodes:  []string{"BASE-SHIP", "GIFT-BOX"},
				Groups: []domain.GroupRow{
					{Code: "color", Label: "カラー"},
					{Code: "size", Label: "サイズ"},
				},
			},
		},
	}
}

// FestivalTeeSKUs is the SKU batch matching FestivalTeeRow. TEE-BLUE and
// TEE-GREEN run later than the fixed baseline.
func FestivalTeeSKUs() []domain.SKURow {
	return []domain.SKURow{
		{Code: "BASE-SHIP", Name: "基本送料", SortNumber: 90, SkipDeliveryCalc: true},
		{Code: "GIFT-BOX", Name: "ギフトボックス", DisplayName: "ギフト包装", SortNumber: 80, Schedule: domain.ExplicitNumeric(20260611)},
		{Code: "TEE-RED", Name: "Tシャツ（レッド）", SortNumber: 10},
		{Code: "TEE-BLUE", Name: "Tシャツ（ブルー）", SortNumber: 20, Schedule: domain.ExplicitNumeric(20260615)},
		{Code: "TEE-GREEN", Name: "Tシャツ（グリーン）", SortNumber: 30, Schedule: domain.ExplicitNumeric(20260622)},
		{Code: "SIZE-S", Name: "サイズS", SortNumber: 40},
		{Code: "SIZE-M", Name: "サイズM", SortNumber: 50},
	}
}
