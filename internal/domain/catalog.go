package domain

// SKU is one catalog entry of a product. Code is unique within the product
// and is the key used everywhere the graph references a SKU.
type SKU struct {
	ID               int64
	Code             string
	Name             string
	DisplayName      string
	Schedule         ScheduleOverride
	SortNumber       int
	SkipDeliveryCalc bool
}

// Label returns the presentation name: DisplayName when set, else Name.
func (s SKU) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Name
}

// SKUGroup is a named choice point within a variant. Candidates is the
// ordered, non-empty list of mutually exclusive SKU codes the shopper picks
// from; exactly one is chosen per group.
type SKUGroup struct {
	Code       string
	Label      string
	Candidates []string
}

// Variant is one purchasable configuration of a product. BaseSKUs are
// always part of the order; SelectableSKUs hold the default pick for each
// group (the first candidate) and exist only through group resolution.
type Variant struct {
	VariantID      string
	Schedule       ScheduleOverride
	SKUCodes       []string
	BaseSKUs       []SKU
	Groups         []SKUGroup
	SelectableSKUs []SKU

	// DefaultSchedule is the latest of the product schedule, the variant's
	// own schedule, and each default-selected SKU's schedule. An order
	// cannot complete before its slowest mandatory part ships.
	DefaultSchedule ScheduleOverride
}

// Product is the root of the catalog graph for one product page. The graph
// is rebuilt fresh for every request or page load and never mutated after
// construction.
type Product struct {
	ProductID string
	Title     string
	Schedule  ScheduleOverride
	Groups    map[string][]string
	SKUs      map[string]SKU
	Variants  []*Variant
}

// SKUByCode looks a SKU up in the flat code table.
func (p *Product) SKUByCode(code string) (SKU, bool) {
	s, ok := p.SKUs[code]
	return s, ok
}

// VariantByID finds a variant by its identifier.
func (p *Product) VariantByID(id string) (*Variant, bool) {
	for _, v := range p.Variants {
		if v.VariantID == id {
			return v, true
		}
	}
	return nil, false
}

// ProductSummary is the lightweight listing row for product pickers.
type ProductSummary struct {
	ProductID    string
	Title        string
	VariantCount int
}
