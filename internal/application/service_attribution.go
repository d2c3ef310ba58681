package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"github.com/tonycardosa/afiliados-rst/internal/ports"
)

// resolveAffiliate decides which affiliate an order is credited to. Discount
// codes outrank purchase history: the affiliate whose code was used this time
// is more authoritative than whoever the customer bought through before.
// References are checked in source order; the first one that resolves wins.
// The error return is reserved for store failures; missing upstream evidence
// is never an error here, it just narrows the search.
func (s *Service) resolveAffiliate(ctx context.Context, order ports.SourceOrder, cartRules []ports.CartRuleRef) (uuid.UUID, bool, error) {
	for _, ref := range cartRules {
		code, err := s.source.FetchCartRuleCode(ctx, ref.CartRuleID)
		if err != nil {
			// One unreadable cart rule must not sink the order; keep checking
			// the remaining references.
			s.logger.WarnContext(ctx, "cart rule detail unavailable",
				"operation", "fetch_cart_rule",
				"order_id", order.ExternalID,
				"cart_rule_id", ref.CartRuleID,
				"error", err.Error(),
			)
			continue
		}
		if code == "" {
			continue
		}
		dc, err := s.codes.GetByCode(ctx, code)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return uuid.Nil, false, err
		}
		return dc.AffiliateID, true, nil
	}

	customer, err := s.customers.GetByExternalID(ctx, order.ExternalCustomerID)
	if errors.Is(err, domain.ErrNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return customer.CurrentAffiliateID, true, nil
}
