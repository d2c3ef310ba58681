package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"github.com/tonycardosa/afiliados-rst/internal/ports"
)

// RunSync drives one end-to-end sync pass: list recent upstream orders, skip
// the already-imported ones, attribute and price the rest, and persist one
// commission per order that earns anything. The pass is strictly sequential:
// attribution of a later order can depend on customer state written by an
// earlier order in the same pass.
func (s *Service) RunSync(ctx context.Context) (SyncReport, error) {
	if s.cfg.SourceAPIURL == "" || s.cfg.SourceAPIKey == "" {
		return SyncReport{}, domain.ErrConfiguration
	}

	acquired, err := s.lock.Acquire(ctx, s.cfg.PassBudget)
	switch {
	case err != nil:
		// A broken lock store must not block imports entirely; the uniqueness
		// constraint on external order id still prevents double-import.
		s.logger.WarnContext(ctx, "sync lock unavailable, proceeding unguarded",
			"operation", "run_sync",
			"error", err.Error(),
		)
	case !acquired:
		return SyncReport{}, domain.ErrSyncInProgress
	default:
		defer func() { _ = s.lock.Release(context.WithoutCancel(ctx)) }()
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.PassBudget)
	defer cancel()

	orders, err := s.source.ListRecentOrders(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("list recent orders: %w", err)
	}

	pass := newSyncPass()
	var report SyncReport
	for _, order := range orders {
		outcome, err := s.importOrder(ctx, pass, order)
		fields := []any{
			"operation", "import_order",
			"order_id", order.ExternalID,
			"outcome", string(outcome),
		}
		switch outcome {
		case outcomeImported:
			report.ImportedCount++
			s.logger.InfoContext(ctx, "order imported", fields...)
		case outcomeDuplicate:
			report.DuplicateCount++
			s.logger.DebugContext(ctx, "order already imported", fields...)
		case outcomeUnattributed:
			report.UnattributedCount++
			s.logger.InfoContext(ctx, "order not attributable", fields...)
		case outcomeZeroCommission:
			report.ZeroCommissionCount++
			s.logger.InfoContext(ctx, "order earned no commission", fields...)
		case outcomeFailed:
			report.FailedCount++
			fields = append(fields, "error", err.Error())
			s.logger.ErrorContext(ctx, "order import failed", fields...)
		}
		// A failed or skipped order never aborts the pass.
	}

	s.logger.InfoContext(ctx, "sync pass completed",
		"operation", "run_sync",
		"outcome", "success",
		"order_count", len(orders),
		"imported_count", report.ImportedCount,
		"duplicate_count", report.DuplicateCount,
		"unattributed_count", report.UnattributedCount,
		"zero_commission_count", report.ZeroCommissionCount,
		"failed_count", report.FailedCount,
	)
	return report, nil
}

func (s *Service) importOrder(ctx context.Context, pass *syncPass, order ports.SourceOrder) (orderOutcome, error) {
	exists, err := s.commissions.ExistsByExternalOrderID(ctx, order.ExternalID)
	if err != nil {
		return outcomeFailed, fmt.Errorf("check existing commission: %w", err)
	}
	if exists {
		return outcomeDuplicate, nil
	}

	cartRules, err := s.source.FetchCartRules(ctx, order.ExternalID)
	if err != nil {
		// Missing cart-rule evidence degrades attribution to the
		// customer-history path instead of aborting the order.
		s.logger.WarnContext(ctx, "cart rule listing unavailable",
			"operation", "fetch_cart_rules",
			"order_id", order.ExternalID,
			"error", err.Error(),
		)
		cartRules = nil
	}

	affiliateID, attributed, err := s.resolveAffiliate(ctx, order, cartRules)
	if err != nil {
		return outcomeFailed, err
	}
	if !attributed {
		return outcomeUnattributed, nil
	}

	customer, err := s.upsertCustomer(ctx, order, affiliateID)
	if err != nil {
		return outcomeFailed, fmt.Errorf("upsert customer: %w", err)
	}

	// Counted before the new row is inserted so the order never counts itself.
	prior, err := s.commissions.CountByCustomer(ctx, customer.CustomerID)
	if err != nil {
		return outcomeFailed, fmt.Errorf("count customer commissions: %w", err)
	}
	isFirst := prior == 0

	items, err := s.source.FetchLineItems(ctx, order.ExternalID)
	if err != nil {
		s.logger.WarnContext(ctx, "line items unavailable",
			"operation", "fetch_line_items",
			"order_id", order.ExternalID,
			"error", err.Error(),
		)
		items = nil
	}

	totals := s.calculateCommission(ctx, pass, items, affiliateID, isFirst)
	if totals.Commission == 0 {
		// No row for zero-commission orders: the order stays eligible for a
		// later pass in case rules change.
		return outcomeZeroCommission, nil
	}

	now := s.nowFn()
	commission := domain.Commission{
		CommissionID:         uuid.New(),
		ExternalOrderID:      order.ExternalID,
		CustomerID:           customer.CustomerID,
		AffiliateID:          affiliateID,
		OrderTotalWithVAT:    totals.WithVAT,
		OrderTotalWithoutVAT: totals.WithoutVAT,
		CommissionEarned:     totals.Commission,
		IsFirstPurchase:      isFirst,
		Status:               domain.CommissionPending,
		OrderCreatedAt:       order.CreatedAt,
		CreatedAt:            now,
	}
	event, err := s.commissionCreatedEvent(commission, now)
	if err != nil {
		return outcomeFailed, fmt.Errorf("build commission event: %w", err)
	}
	if _, err := s.commissions.CreateWithOutboxTx(ctx, commission, event); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Another pass inserted this order between the duplicate check and
			// now; the constraint did its job.
			return outcomeDuplicate, nil
		}
		return outcomeFailed, fmt.Errorf("insert commission: %w", err)
	}
	return outcomeImported, nil
}

// upsertCustomer finds or creates the customer for an order and re-points its
// current affiliate when attribution shifted. The read-then-write is explicit
// so the re-pointing rule stays testable on its own.
func (s *Service) upsertCustomer(ctx context.Context, order ports.SourceOrder, affiliateID uuid.UUID) (domain.Customer, error) {
	existing, err := s.customers.GetByExternalID(ctx, order.ExternalCustomerID)
	if err == nil {
		if existing.CurrentAffiliateID != affiliateID {
			if err := s.customers.SetCurrentAffiliate(ctx, existing.CustomerID, affiliateID); err != nil {
				return domain.Customer{}, err
			}
			existing.CurrentAffiliateID = affiliateID
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Customer{}, err
	}
	return s.customers.Create(ctx, domain.Customer{
		CustomerID:         uuid.New(),
		ExternalID:         order.ExternalCustomerID,
		Email:              order.Email,
		CurrentAffiliateID: affiliateID,
	})
}
