// Package catalog builds the in-memory product graph from raw persistence
// rows: Product -> Variant -> SKUGroup, plus the flat SKU code table. The
// graph is immutable once built and owned by the request that built it.
package catalog

import (
	"sort"

	"github.com/ayase-dev/otodoke/internal/domain"
)

// SKUCodes returns every SKU code reachable from the product's variants
// (base SKU lists) and group definitions (candidate lists), de-duplicated,
// in first-seen order. This is the exact fetch set for the SKU batch query:
// every code the graph can reference appears once, and nothing else does.
func SKUCodes(row *domain.ProductRow) []string {
	seen := make(map[string]struct{})
	var codes []string
	add := func(code string) {
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	for _, v := range row.Variants {
		for _, code := range v.SKUCodes {
			add(code)
		}
		for _, g := range v.Groups {
			for _, code := range row.Groups[g.Code] {
				add(code)
			}
		}
	}
	// Group definitions not referenced by any variant still belong to the
	// product and stay fetchable.
	for _, groupCode := range groupOrder(row) {
		for _, code := range row.Groups[groupCode] {
			add(code)
		}
	}
	return codes
}

func groupOrder(row *domain.ProductRow) []string {
	if len(row.GroupOrder) > 0 {
		return row.GroupOrder
	}
	order := make([]string, 0, len(row.Groups))
	for code := range row.Groups {
		order = append(order, code)
	}
	sort.Strings(order)
	return order
}

// Build assembles the catalog graph for one product. skuRows is the batch
// fetched for SKUCodes(row); the store may have omitted codes that do not
// exist, and any such gap that the graph actually references surfaces as an
// IntegrityError. Labels on every schedule are rendered for tag.
//
// Building twice from the same inputs yields a structurally identical graph.
func Build(row *domain.ProductRow, skuRows []domain.SKURow, cal *domain.Calendar, tag domain.Locale) (*domain.Product, error) {
	lookup := make(map[string]domain.SKU, len(skuRows))
	for _, r := range skuRows {
		if _, ok := lookup[r.Code]; ok {
			continue
		}
		lookup[r.Code] = materializeSKU(r, cal, tag)
	}

	var missing []string
	seenMissing := make(map[string]struct{})
	miss := func(code string) {
		if _, ok := seenMissing[code]; ok {
			return
		}
		seenMissing[code] = struct{}{}
		missing = append(missing, code)
	}

	groups := make(map[string][]string, len(row.Groups))
	for code, candidates := range row.Groups {
		groups[code] = append([]string(nil), candidates...)
	}

	variants := make([]*domain.Variant, 0, len(row.Variants))
	for _, vr := range row.Variants {
		v := &domain.Variant{
			VariantID: vr.VariantID,
			Schedule:  vr.Schedule,
			SKUCodes:  append([]string(nil), vr.SKUCodes...),
		}

		for _, code := range vr.SKUCodes {
			sku, ok := lookup[code]
			if !ok {
				miss(code)
				continue
			}
			v.BaseSKUs = append(v.BaseSKUs, sku)
		}

		for _, gr := range vr.Groups {
			candidates := groups[gr.Code]
			if len(candidates) == 0 {
				// A group with nothing to offer never blocks the resolve
				// cycle; it simply disappears from the variant.
				continue
			}
			for _, code := range candidates {
				if _, ok := lookup[code]; !ok {
					miss(code)
				}
			}
			v.Groups = append(v.Groups, domain.SKUGroup{
				Code:       gr.Code,
				Label:      gr.Label,
				Candidates: append([]string(nil), candidates...),
			})
		}

		defaults := []domain.ScheduleOverride{row.Schedule, vr.Schedule}
		for _, g := range v.Groups {
			first, ok := lookup[g.Candidates[0]]
			if !ok {
				continue
			}
			v.SelectableSKUs = append(v.SelectableSKUs, first)
			defaults = append(defaults, first.Schedule)
		}
		v.DefaultSchedule = domain.LatestSchedule(defaults...)

		variants = append(variants, v)
	}

	if len(missing) > 0 {
		return nil, &domain.IntegrityError{ProductID: row.ProductID, MissingCodes: missing}
	}

	return &domain.Product{
		ProductID: row.ProductID,
		Title:     row.Title,
		Schedule:  row.Schedule,
		Groups:    groups,
		SKUs:      lookup,
		Variants:  variants,
	}, nil
}

func materializeSKU(r domain.SKURow, cal *domain.Calendar, tag domain.Locale) domain.SKU {
	sku := domain.SKU{
		ID:               r.ID,
		Code:             r.Code,
		Name:             r.Name,
		DisplayName:      r.DisplayName,
		Schedule:         r.Schedule,
		SortNumber:       r.SortNumber,
		SkipDeliveryCalc: r.SkipDeliveryCalc,
	}
	if sku.Schedule.Explicit {
		sku.Schedule = domain.Explicit(cal.Materialize(sku.Schedule, tag))
	}
	return sku
}
