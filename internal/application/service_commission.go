package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"github.com/tonycardosa/afiliados-rst/internal/ports"
)

// syncPass is the per-pass working state, mainly the brand memo. It is created
// at the start of RunSync and dropped with it, so stale catalog data can never
// leak into a later pass. Negative lookups are cached too: a product with no
// resolvable brand is asked about upstream at most once per pass.
type syncPass struct {
	brandByProduct  map[int64]*domain.Brand
	brandByExternal map[int64]*domain.Brand
}

func newSyncPass() *syncPass {
	return &syncPass{
		brandByProduct:  map[int64]*domain.Brand{},
		brandByExternal: map[int64]*domain.Brand{},
	}
}

// orderTotals accumulates one order's money. Commission is zero when no line
// item matched a rule, in which case no commission row is written.
type orderTotals struct {
	WithVAT    float64
	WithoutVAT float64
	Commission float64
}

// calculateCommission prices every line item into the order totals and adds
// the rule-derived share to the commission total. The first-purchase decision
// is made once per order by the caller and applied to every line uniformly.
func (s *Service) calculateCommission(ctx context.Context, pass *syncPass, items []ports.SourceLineItem, affiliateID uuid.UUID, isFirst bool) orderTotals {
	var totals orderTotals
	for _, item := range items {
		priceIncl := item.TotalTaxIncl
		priceExcl := item.TotalTaxExcl
		if priceIncl == 0 {
			// Some upstream responses omit line totals; fall back to unit
			// price times quantity.
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}
			priceIncl = item.UnitPriceTaxIncl * float64(qty)
			priceExcl = item.UnitPriceTaxExcl * float64(qty)
		}
		totals.WithVAT += priceIncl
		totals.WithoutVAT += priceExcl

		// An unresolvable brand still prices into the order total; it just
		// limits the line to the affiliate's default rule.
		brand := s.resolveBrand(ctx, pass, item.ProductExternalID)

		rule, ok := s.findRule(ctx, affiliateID, brand)
		if !ok {
			continue
		}
		rate := rule.SubsequentRate
		if isFirst {
			rate = rule.FirstRate
		}
		totals.Commission += priceIncl * rate / 100
	}
	totals.WithVAT = round2(totals.WithVAT)
	totals.WithoutVAT = round2(totals.WithoutVAT)
	totals.Commission = round2(totals.Commission)
	return totals
}

// findRule resolves the applicable rate pair: the brand-specific rule when one
// exists, else the affiliate's default rule, else nothing.
func (s *Service) findRule(ctx context.Context, affiliateID uuid.UUID, brand *domain.Brand) (domain.CommissionRule, bool) {
	if brand != nil {
		rule, err := s.rules.Find(ctx, affiliateID, &brand.BrandID)
		if err == nil {
			return rule, true
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.ErrorContext(ctx, "rule lookup failed",
				"operation", "find_rule",
				"affiliate_id", affiliateID.String(),
				"error", err.Error(),
			)
			return domain.CommissionRule{}, false
		}
	}
	rule, err := s.rules.Find(ctx, affiliateID, nil)
	if err == nil {
		return rule, true
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.ErrorContext(ctx, "default rule lookup failed",
			"operation", "find_rule",
			"affiliate_id", affiliateID.String(),
			"error", err.Error(),
		)
	}
	return domain.CommissionRule{}, false
}

// resolveBrand maps a product external id to a catalog brand: fetch the
// product, read its brand reference, look the brand up locally. Absence at any
// step yields nil, never an error; the same contract applies everywhere a
// brand is resolved.
func (s *Service) resolveBrand(ctx context.Context, pass *syncPass, productExternalID int64) *domain.Brand {
	if brand, seen := pass.brandByProduct[productExternalID]; seen {
		return brand
	}

	brandExternalID, found, err := s.source.FetchProductBrand(ctx, productExternalID)
	if err != nil {
		// Degraded catalog access: treat the brand as unresolvable for this
		// line but do not poison the cache, a later pass may succeed.
		s.logger.WarnContext(ctx, "product detail unavailable",
			"operation", "fetch_product",
			"product_id", productExternalID,
			"error", err.Error(),
		)
		return nil
	}
	if !found {
		pass.brandByProduct[productExternalID] = nil
		return nil
	}

	if brand, seen := pass.brandByExternal[brandExternalID]; seen {
		pass.brandByProduct[productExternalID] = brand
		return brand
	}

	var resolved *domain.Brand
	brand, err := s.brands.GetByExternalID(ctx, brandExternalID)
	switch {
	case err == nil:
		resolved = &brand
	case errors.Is(err, domain.ErrNotFound):
		resolved = nil
	default:
		s.logger.ErrorContext(ctx, "brand lookup failed",
			"operation", "resolve_brand",
			"brand_external_id", brandExternalID,
			"error", err.Error(),
		)
		return nil
	}
	pass.brandByExternal[brandExternalID] = resolved
	pass.brandByProduct[productExternalID] = resolved
	return resolved
}
