package domain

// Raw persistence rows, as returned by the catalog store. The graph builder
// consumes these; nothing below this layer knows about SQL.

// GroupRow is a group reference declared on a variant: the group code plus
// the label shown on the selector control.
type GroupRow struct {
	Code  string
	Label string
}

// VariantRow is one variant as stored: its unconditionally attached base
// SKU codes and its group references, both in declared order.
type VariantRow struct {
	VariantID string
	Schedule  ScheduleOverride
	SKUCodes  []string
	Groups    []GroupRow
}

// ProductRow is the raw product record plus its variant rows and the
// product-level group index (group code to ordered candidate SKU codes).
type ProductRow struct {
	ProductID  string
	Title      string
	Schedule   ScheduleOverride
	Groups     map[string][]string
	GroupOrder []string
	Variants   []VariantRow
}

// SKURow is one catalog entry as stored.
type SKURow struct {
	ID               int64
	Code             string
	Name             string
	DisplayName      string
	Schedule         ScheduleOverride
	SortNumber       int
	SkipDeliveryCalc bool
}
