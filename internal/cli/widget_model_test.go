package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayase-dev/otodoke/internal/catalog"
	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/teatest"
	"github.com/ayase-dev/otodoke/internal/testutil"
)

func loadedWidget(t *testing.T) *teatest.Driver {
	t.Helper()
	cal := testutil.FixedCalendar()
	p, err := catalog.Build(testutil.FestivalTeeRow(), testutil.FestivalTeeSKUs(), cal, domain.BaseLocale)
	require.NoError(t, err)

	m := newWidgetModel(nil, cal, domain.BaseLocale, "prd_tee")
	d := teatest.New(t, m)
	// Feed the graph directly; the Loader path is covered by client tests.
	d.Send(productLoadedMsg{product: p})
	return d
}

func TestWidgetShowsLoadingSpinner(t *testing.T) {
	cal := testutil.FixedCalendar()
	m := newWidgetModel(nil, cal, domain.BaseLocale, "prd_tee")
	d := teatest.New(t, m)

	assert.Contains(t, d.View(), "Loading product prd_tee")
}

func TestWidgetRendersDefaults(t *testing.T) {
	d := loadedWidget(t)
	view := d.View()

	assert.Contains(t, view, "フェスTシャツ")
	assert.Contains(t, view, "カラー: Tシャツ（レッド）")
	assert.Contains(t, view, "サイズ: サイズS")
	assert.Contains(t, view, "2026年6月4日ごろお届け予定")
	assert.NotContains(t, view, "お時間がかかります")
}

func TestWidgetPickMovesEstimateAndShowsBanner(t *testing.T) {
	d := loadedWidget(t)

	// Cycle color to the slow blue tee.
	d.Press("down")
	view := d.View()
	assert.Contains(t, view, "カラー: Tシャツ（ブルー）")
	assert.Contains(t, view, "2026年6月15日ごろお届け予定")
	assert.Contains(t, view, "お時間がかかります")

	// Cycling back restores the baseline and hides the banner.
	d.Press("up")
	view = d.View()
	assert.Contains(t, view, "2026年6月4日ごろお届け予定")
	assert.NotContains(t, view, "お時間がかかります")
}

func TestWidgetFocusMovesBetweenGroups(t *testing.T) {
	d := loadedWidget(t)

	d.Press("right")
	d.Press("down")
	view := d.View()
	// The size group changed while the color pick stayed on its default.
	assert.Contains(t, view, "カラー: Tシャツ（レッド）")
	assert.Contains(t, view, "サイズ: サイズM")
}

func TestWidgetVariantCycleCarriesPicks(t *testing.T) {
	d := loadedWidget(t)

	d.Press("down") // blue
	d.Press("v")    // gift variant
	view := d.View()

	// The pick survives the variant change and the gift variant's own
	// schedule is already later than the baseline.
	assert.Contains(t, view, "カラー: Tシャツ（ブルー）")
	assert.Contains(t, view, "2026年6月15日ごろお届け予定")

	d.Press("up") // back to red; the variant schedule now governs
	view = d.View()
	assert.Contains(t, view, "2026年6月11日ごろお届け予定")
	assert.Contains(t, view, "お時間がかかります")
}

func TestWidgetQuits(t *testing.T) {
	d := loadedWidget(t)
	d.Press("q")
	assert.True(t, d.Quitting)
}

func TestWidgetNoDelayBannerOutsideBaseLocale(t *testing.T) {
	cal := testutil.FixedCalendar()
	tag := domain.MatchLocale("en")
	p, err := catalog.Build(testutil.FestivalTeeRow(), testutil.FestivalTeeSKUs(), cal, tag)
	require.NoError(t, err)

	m := newWidgetModel(nil, cal, tag, "prd_tee")
	d := teatest.New(t, m)
	d.Send(productLoadedMsg{product: p})

	d.Press("down")
	view := d.View()
	assert.Contains(t, view, "Estimated delivery around Jun 15, 2026")
	assert.NotContains(t, view, "お時間がかかります")
}
