// Package contract holds the wire shapes of the edge API. The server
// renders them from the domain graph; the widget client decodes them and
// rebuilds the same graph, so both sides resolve schedules over identical
// structures.
package contract

import (
	"github.com/ayase-dev/otodoke/internal/domain"
)

// ScheduleView is a resolved schedule on the wire.
type ScheduleView struct {
	Numeric int64  `json:"numeric"`
	Text    string `json:"text"`
}

// SKUView is one catalog entry on the wire. Schedule is null when the SKU
// ships on the baseline.
type SKUView struct {
	ID               int64         `json:"id"`
	Code             string        `json:"code"`
	Name             string        `json:"name"`
	DisplayName      string        `json:"displayName,omitempty"`
	Schedule         *ScheduleView `json:"schedule,omitempty"`
	SortNumber       int           `json:"sortNumber"`
	SkipDeliveryCalc bool          `json:"skipDeliveryCalc"`
}

// SKUGroupView names a selection point on a variant; candidates live in
// the product-level skuGroups index.
type SKUGroupView struct {
	SKUGroupCode string `json:"skuGroupCode"`
	Label        string `json:"label"`
}

// VariantView is one purchasable configuration on the wire.
type VariantView struct {
	VariantID       string         `json:"variantId"`
	SKUs            []string       `json:"skus"`
	SKUGroups       []SKUGroupView `json:"skuGroups"`
	Schedule        *ScheduleView  `json:"schedule,omitempty"`
	DefaultSchedule *ScheduleView  `json:"defaultSchedule,omitempty"`
}

// ProductView is the product-detail payload consumed by the live widget.
type ProductView struct {
	ProductID string              `json:"productId"`
	Title     string              `json:"title"`
	SKUGroups map[string][]string `json:"skuGroups"`
	SKUs      map[string]SKUView  `json:"skus"`
	Variants  []VariantView       `json:"variants"`
	Schedule  ScheduleView        `json:"schedule"`
}

// ProductSummaryView is a product-list row.
type ProductSummaryView struct {
	ProductID    string `json:"productId"`
	Title        string `json:"title"`
	VariantCount int    `json:"variantCount"`
}

func scheduleView(s domain.Schedule) ScheduleView {
	return ScheduleView{Numeric: s.Numeric, Text: s.Text}
}

func overrideView(o domain.ScheduleOverride) *ScheduleView {
	if !o.Explicit {
		return nil
	}
	v := scheduleView(o.Schedule)
	return &v
}

func overrideOf(v *ScheduleView) domain.ScheduleOverride {
	if v == nil {
		return domain.NoOverride()
	}
	return domain.Explicit(domain.Schedule{Numeric: v.Numeric, Text: v.Text})
}

// ProductViewOf renders the wire payload for an already-built graph. The
// product-level schedule is always resolved against the baseline so the
// page has a concrete promise to display.
func ProductViewOf(p *domain.Product, cal *domain.Calendar, tag domain.Locale) ProductView {
	view := ProductView{
		ProductID: p.ProductID,
		Title:     p.Title,
		SKUGroups: p.Groups,
		SKUs:      make(map[string]SKUView, len(p.SKUs)),
		Schedule:  scheduleView(cal.Materialize(p.Schedule, tag)),
	}
	for code, sku := range p.SKUs {
		view.SKUs[code] = SKUView{
			ID:               sku.ID,
			Code:             sku.Code,
			Name:             sku.Name,
			DisplayName:      sku.DisplayName,
			Schedule:         overrideView(sku.Schedule),
			SortNumber:       sku.SortNumber,
			SkipDeliveryCalc: sku.SkipDeliveryCalc,
		}
	}
	for _, v := range p.Variants {
		vv := VariantView{
			VariantID:       v.VariantID,
			SKUs:            v.SKUCodes,
			Schedule:        overrideView(v.Schedule),
			DefaultSchedule: overrideView(v.DefaultSchedule),
		}
		for _, g := range v.Groups {
			vv.SKUGroups = append(vv.SKUGroups, SKUGroupView{SKUGroupCode: g.Code, Label: g.Label})
		}
		view.Variants = append(view.Variants, vv)
	}
	return view
}

// ToDomain rebuilds the catalog graph on the widget side. The payload was
// rendered from a validated graph, so unknown codes are skipped rather
// than re-validated here.
func (v *ProductView) ToDomain() *domain.Product {
	p := &domain.Product{
		ProductID: v.ProductID,
		Title:     v.Title,
		Schedule:  domain.Explicit(domain.Schedule{Numeric: v.Schedule.Numeric, Text: v.Schedule.Text}),
		Groups:    v.SKUGroups,
		SKUs:      make(map[string]domain.SKU, len(v.SKUs)),
	}
	if p.Groups == nil {
		p.Groups = map[string][]string{}
	}
	for code, sv := range v.SKUs {
		p.SKUs[code] = domain.SKU{
			ID:               sv.ID,
			Code:             sv.Code,
			Name:             sv.Name,
			DisplayName:      sv.DisplayName,
			Schedule:         overrideOf(sv.Schedule),
			SortNumber:       sv.SortNumber,
			SkipDeliveryCalc: sv.SkipDeliveryCalc,
		}
	}
	for _, vv := range v.Variants {
		variant := &domain.Variant{
			VariantID:       vv.VariantID,
			Schedule:        overrideOf(vv.Schedule),
			SKUCodes:        vv.SKUs,
			DefaultSchedule: overrideOf(vv.DefaultSchedule),
		}
		for _, code := range vv.SKUs {
			if sku, ok := p.SKUs[code]; ok {
				variant.BaseSKUs = append(variant.BaseSKUs, sku)
			}
		}
		for _, g := range vv.SKUGroups {
			candidates := p.Groups[g.SKUGroupCode]
			if len(candidates) == 0 {
				continue
			}
			variant.Groups = append(variant.Groups, domain.SKUGroup{
				Code:       g.SKUGroupCode,
				Label:      g.Label,
				Candidates: candidates,
			})
			if sku, ok := p.SKUs[candidates[0]]; ok {
				variant.SelectableSKUs = append(variant.SelectableSKUs, sku)
			}
		}
		p.Variants = append(p.Variants, variant)
	}
	return p
}
