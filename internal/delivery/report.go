// Package delivery aggregates, across a product's variants, the
// de-duplicated set of SKUs that are running late relative to the current
// baseline schedule.
package delivery

import (
	"sort"

	"github.com/ayase-dev/otodoke/internal/domain"
)

// SKULine is one row of a delivery report.
type SKULine struct {
	ID         int64           `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Schedule   domain.Schedule `json:"schedule"`
	SortNumber int             `json:"sortNumber"`
	Delaying   bool            `json:"delaying"`
}

// Report is the flat delivery report for one product.
type Report struct {
	Current domain.Schedule `json:"current"`
	SKUs    []SKULine       `json:"skus"`
}

// BuildReport walks the variants in order, flattening base SKUs then
// default-selected SKUs per variant, and admits each SKU code once (first
// occurrence wins). SKUs flagged SkipDeliveryCalc never appear. A SKU's
// effective schedule is its own explicit schedule, else current; it is
// delaying iff that schedule is strictly later than current. When
// onlyDelaying is set, on-schedule SKUs are dropped as well.
//
// The result is ordered by (SortNumber, ID) ascending: SortNumber is not
// guaranteed unique, so ID breaks ties to keep the report deterministic.
func BuildReport(variants []*domain.Variant, current domain.Schedule, onlyDelaying bool) Report {
	admitted := make(map[string]struct{})
	lines := make([]SKULine, 0)

	admit := func(sku domain.SKU) {
		if _, ok := admitted[sku.Code]; ok {
			return
		}
		admitted[sku.Code] = struct{}{}
		if sku.SkipDeliveryCalc {
			return
		}
		effective := current
		if sku.Schedule.Explicit {
			effective = sku.Schedule.Schedule
		}
		delaying := effective.After(current)
		if onlyDelaying && !delaying {
			return
		}
		lines = append(lines, SKULine{
			ID:         sku.ID,
			Code:       sku.Code,
			Name:       sku.Label(),
			Schedule:   effective,
			SortNumber: sku.SortNumber,
			Delaying:   delaying,
		})
	}

	for _, v := range variants {
		for _, sku := range v.BaseSKUs {
			admit(sku)
		}
		for _, sku := range v.SelectableSKUs {
			admit(sku)
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].SortNumber != lines[j].SortNumber {
			return lines[i].SortNumber < lines[j].SortNumber
		}
		return lines[i].ID < lines[j].ID
	})

	return Report{Current: current, SKUs: lines}
}
