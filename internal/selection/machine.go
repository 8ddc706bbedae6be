// Package selection mirrors the server's schedule resolution on the client:
// it tracks the shopper's live SKU choices for the active variant and
// re-derives the applicable delivery schedule on every change.
//
// The machine holds no ambient state. Variant changes and SKU selections
// arrive through explicit method calls from the host (a widget, a test),
// one at a time in receipt order.
package selection

import (
	"github.com/ayase-dev/otodoke/internal/domain"
)

// Machine is the live selection state for one product page. It is built
// fresh per page load and is not safe for concurrent use; the host's single
// update loop is the only writer.
type Machine struct {
	product *domain.Product
	cal     *domain.Calendar
	tag     domain.Locale

	variant  *domain.Variant
	selected []string
	base     []string
}

// New creates a machine over an already-built product graph. The first
// variant, if any, becomes active with every group on its first candidate.
func New(product *domain.Product, cal *domain.Calendar, tag domain.Locale) *Machine {
	m := &Machine{product: product, cal: cal, tag: tag}
	if len(product.Variants) > 0 {
		m.activate(product.Variants[0])
	}
	return m
}

// ChangeVariant switches the active variant. For each group index the
// previously selected code is carried over iff it is still a candidate of
// the new group at that index; otherwise the group falls back to its first
// candidate. Base codes are replaced wholesale. An unknown variant id
// leaves the machine untouched rather than blocking the render cycle.
func (m *Machine) ChangeVariant(variantID string) {
	next, ok := m.product.VariantByID(variantID)
	if !ok {
		return
	}
	prev := m.selected
	m.activate(next)
	for i, g := range next.Groups {
		if i >= len(prev) {
			break
		}
		if containsCode(g.Candidates, prev[i]) {
			m.selected[i] = prev[i]
		}
	}
}

// SelectSKU records the shopper's pick for the group at index. The caller
// is a selector control that only offers valid candidates, so the code is
// not validated here; an out-of-range index is tolerated and ignored.
func (m *Machine) SelectSKU(index int, code string) {
	if index < 0 || index >= len(m.selected) {
		return
	}
	m.selected[index] = code
}

// Variant returns the active variant, or nil when the product has none.
func (m *Machine) Variant() *domain.Variant {
	return m.variant
}

// Selected returns the chosen SKU code per group, index-aligned with the
// active variant's groups.
func (m *Machine) Selected() []string {
	return append([]string(nil), m.selected...)
}

// BaseCodes returns the active variant's unconditional SKU codes.
func (m *Machine) BaseCodes() []string {
	return append([]string(nil), m.base...)
}

// Applied derives the schedule governing the current configuration: the
// latest of the product schedule, the variant schedule, and each selected
// SKU's schedule, resolved against the baseline.
func (m *Machine) Applied() domain.Schedule {
	overrides := []domain.ScheduleOverride{m.product.Schedule}
	if m.variant != nil {
		overrides = append(overrides, m.variant.Schedule)
	}
	for _, code := range m.selected {
		if sku, ok := m.product.SKUByCode(code); ok {
			overrides = append(overrides, sku.Schedule)
		}
	}
	return m.cal.Materialize(domain.LatestSchedule(overrides...), m.tag)
}

// ProductSchedule is the product-level schedule resolved against the
// baseline, i.e. what the page promises before any selection.
func (m *Machine) ProductSchedule() domain.Schedule {
	return m.cal.Materialize(m.product.Schedule, m.tag)
}

// DelayVisible reports whether the delay banner should be shown: the
// applied label differs from the product-level label, and the presentation
// locale is the base locale. The warning copy only exists in the base
// locale, so other locales never surface it.
func (m *Machine) DelayVisible() bool {
	if !domain.IsBaseLocale(m.tag) {
		return false
	}
	return m.Applied().Text != m.ProductSchedule().Text
}

// SelectedVariant materializes the active variant with the current picks
// substituted for the default selections, for handing to the delivery
// aggregator.
func (m *Machine) SelectedVariant() *domain.Variant {
	if m.variant == nil {
		return nil
	}
	v := *m.variant
	v.SelectableSKUs = nil
	for _, code := range m.selected {
		if sku, ok := m.product.SKUByCode(code); ok {
			v.SelectableSKUs = append(v.SelectableSKUs, sku)
		}
	}
	return &v
}

func (m *Machine) activate(v *domain.Variant) {
	m.variant = v
	m.base = append([]string(nil), v.SKUCodes...)
	m.selected = make([]string, len(v.Groups))
	for i, g := range v.Groups {
		m.selected[i] = g.Candidates[0]
	}
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
