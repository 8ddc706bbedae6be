package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ayase-dev/otodoke/internal/catalog"
	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/testutil"
)

func buildProduct(t *testing.T, tag domain.Locale) (*domain.Product, *domain.Calendar) {
	t.Helper()
	cal := testutil.FixedCalendar()
	p, err := catalog.Build(testutil.FestivalTeeRow(), testutil.FestivalTeeSKUs(), cal, tag)
	require.NoError(t, err)
	return p, cal
}

func TestNewActivatesFirstVariantWithDefaults(t *testing.T) {
	p, cal := buildProduct(t, domain.BaseLocale)
	m := New(p, cal, domain.BaseLocale)

	require.NotNil(t, m.Variant())
	assert.Equal(t, "var_plain", m.Variant().VariantID)
	assert.Equal(t, []string{"TEE-RED", "SIZE-S"}, m.Selected())
	assert.Equal(t, []string{"BASE-SHIP"}, m.BaseCodes())
}

func TestSelectSKURecalculatesApplied(t *testing.T) {
	p, cal := buildProduct(t, domain.BaseLocale)
	m := New(p, cal, domain.BaseLocale)

	// Default pick ships on the baseline.
	assert.Equal(t, int64(20260604), m.Applied().Numeric)

	// Picking the slow blue tee moves the estimate.
	m.SelectSKU(0, "TEE-BLUE")
	assert.Equal(t, int64(20260615), m.Applied().Numeric)

	// Back to red restores the baseline.
	m.SelectSKU(0, "TEE-RED")
	assert.Equal(t, int64(20260604), m.Applied().Numeric)
}

func TestSelectSKUToleratesOutOfRangeIndex(t *testing.T) {
	p, cal := buildProduct(t, domain.BaseLocale)
	m := New(p, cal, domain.BaseLocale)

	m.SelectSKU(-1, "TEE-BLUE")
	m.SelectSKU(99, "TEE-BLUE")
	assert.Equal(t, []string{"TEE-RED", "SIZE-S"}, m.Selected())
}

func TestSelectSKUDoesNotValidateCode(t *testing.T) {
	// The selector control is trusted to offer only candidates; the machine
	// records whatever arrives and resolution simply finds no such SKU.
	p, cal := buildProduct(t, domain.BaseLocale)
	m := New(p, cal, domain.BaseLocale)

	m.SelectSKU(0, "NO-SUCH")
	assert.Equal(t, "NO-SUCH", m.Selected()[0])
	assert.Equal(t, int64(20260604), m.Applied().Numeric)
}

func TestChangeVariantCarriesOverStillValidPicks(t *testing.T) {
	p, cal := buildProduct(t, domain.BaseLocale)
	m := New(p, cal, domain.BaseLocale)

	m.SelectSKU(0, "TEE-BLUE")
	m.SelectSKU(1, "SIZE-M")
	m.ChangeVariant("var_gift")

	// Both groups exist with the same candidates, so the picks survive.
	assert.Equal(t, "var_gift", m.Variant().VariantID)
	assert.Equal(t, []string{"TEE-BLUE", "SIZE-M"}, m.Selected())
	assert.Equal(t, []string{"BASE-SHIP", "GIFT-BOX"}, m.BaseCodes())
}

func TestChangeVariantFallsBackWhenPickNoLongerOffered(t *testing.T) {
	row := testutil.FestivalTeeRow()
	// The gift variant sells a reduced palette without blue.
	row.Groups["color-gift"] = []string{"TEE-RED", "TEE-GREEN"}
	row.Variants[1].Groups[0] = domain.GroupRow{Code: "color-gift", Label: "カラー"}

	cal := testutil.FixedCalendar()
	p, err := catalog.Build(row, testutil.FestivalTeeSKUs(), cal, domain.BaseLocale)
	require.NoError(t, err)

	m := New(p, cal, domain.BaseLocale)
	m.SelectSKU(0, "TEE-BLUE")
	m.ChangeVariant("var_gift")

	// Blue is not a candidate of the new group, so the group resets to its
	// first candidate; the size pick carries over.
	assert.Equal(t, []string{"TEE-RED", "SIZE-S"}, m.Selected())
}

func TestChangeVariantUnknownIDIsIgnored(t *testing.T) {
	p, cal := buildProduct(t, domain.BaseLocale)
	m := New(p, cal, domain.BaseLocale)
	m.SelectSKU(0, "TEE-GREEN")

	m.ChangeVariant("var_nope")
	assert.Equal(t, "var_plain", m.Variant().VariantID)
	assert.Equal(t, []string{"TEE-GREEN", "SIZE-S"}, m.Selected())
}

func TestAppliedTakesLatestOfProductVariantAndPicks(t *testing.T) {
	p, cal := buildProduct(t, domain.BaseLocale)
	m := New(p, cal, domain.BaseLocale)

	// Gift variant alone pushes to 2026-06-11.
	m.ChangeVariant("var_gift")
	assert.Equal(t, int64(20260611), m.Applied().Numeric)

	// A slower pick wins over the variant schedule.
	m.SelectSKU(0, "TEE-GREEN")
	assert.Equal(t, int64(20260622), m.Applied().Numeric)
}

func TestDelayVisibleOnlyInBaseLocale(t *testing.T) {
	p, cal := buildProduct(t, domain.BaseLocale)
	m := New(p, cal, domain.BaseLocale)

	assert.False(t, m.DelayVisible())
	m.SelectSKU(0, "TEE-BLUE")
	assert.True(t, m.DelayVisible())

	pEn, calEn := buildProduct(t, language.English)
	mEn := New(pEn, calEn, language.English)
	mEn.SelectSKU(0, "TEE-BLUE")
	assert.False(t, mEn.DelayVisible())
}

func TestSelectedVariantSubstitutesPicks(t *testing.T) {
	p, cal := buildProduct(t, domain.BaseLocale)
	m := New(p, cal, domain.BaseLocale)
	m.SelectSKU(0, "TEE-BLUE")

	v := m.SelectedVariant()
	require.NotNil(t, v)
	require.Len(t, v.SelectableSKUs, 2)
	assert.Equal(t, "TEE-BLUE", v.SelectableSKUs[0].Code)
	assert.Equal(t, "SIZE-S", v.SelectableSKUs[1].Code)

	// The original graph is untouched.
	assert.Equal(t, "TEE-RED", p.Variants[0].SelectableSKUs[0].Code)
}

func TestNewWithNoVariants(t *testing.T) {
	cal := testutil.FixedCalendar()
	p := &domain.Product{ProductID: "p", SKUs: map[string]domain.SKU{}}
	m := New(p, cal, domain.BaseLocale)

	assert.Nil(t, m.Variant())
	assert.Nil(t, m.SelectedVariant())
	assert.Empty(t, m.Selected())
	// Applied still resolves from the product schedule alone.
	assert.Equal(t, int64(20260604), m.Applied().Numeric)
}
