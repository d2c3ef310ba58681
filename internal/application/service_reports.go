package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ListCommissions returns recorded commissions newest-first, optionally scoped
// to one affiliate, decorated with the affiliate display name. A missing
// affiliate row does not fail the listing; the name is just left empty.
func (s *Service) ListCommissions(ctx context.Context, affiliateID *uuid.UUID, limit int) ([]CommissionItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	commissions, err := s.commissions.List(ctx, affiliateID, limit)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}

	names := map[uuid.UUID]string{}
	items := make([]CommissionItem, 0, len(commissions))
	for _, c := range commissions {
		name, seen := names[c.AffiliateID]
		if !seen {
			affiliate, err := s.affiliates.GetByID(ctx, c.AffiliateID)
			switch {
			case err == nil:
				name = affiliate.Name
			case errors.Is(err, domain.ErrNotFound):
				name = ""
			default:
				return nil, fmt.Errorf("resolve affiliate %s: %w", c.AffiliateID, err)
			}
			names[c.AffiliateID] = name
		}
		items = append(items, CommissionItem{
			CommissionID:         c.CommissionID,
			ExternalOrderID:      c.ExternalOrderID,
			CustomerID:           c.CustomerID,
			AffiliateID:          c.AffiliateID,
			AffiliateName:        name,
			OrderTotalWithVAT:    c.OrderTotalWithVAT,
			OrderTotalWithoutVAT: c.OrderTotalWithoutVAT,
			CommissionEarned:     c.CommissionEarned,
			IsFirstPurchase:      c.IsFirstPurchase,
			Status:               string(c.Status),
			OrderCreatedAt:       c.OrderCreatedAt,
			PaidAt:               c.PaidAt,
			CreatedAt:            c.CreatedAt,
		})
	}
	return items, nil
}

// GetCommissionTotals aggregates earned amounts by status, optionally scoped
// to one affiliate.
func (s *Service) GetCommissionTotals(ctx context.Context, affiliateID *uuid.UUID) (CommissionTotals, error) {
	pending, paid, err := s.commissions.Totals(ctx, affiliateID)
	if err != nil {
		return CommissionTotals{}, fmt.Errorf("commission totals: %w", err)
	}
	return CommissionTotals{
		TotalPending: round2(pending),
		TotalPaid:    round2(paid),
	}, nil
}

// DeleteCommission removes one recorded commission. The external order becomes
// importable again on the next pass; first-purchase flags already written for
// the same customer are left as they were.
func (s *Service) DeleteCommission(ctx context.Context, commissionID uuid.UUID) error {
	if err := s.commissions.DeleteByID(ctx, commissionID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "commission deleted",
		"operation", "delete_commission",
		"outcome", "success",
		"commission_id", commissionID.String(),
	)
	return nil
}
