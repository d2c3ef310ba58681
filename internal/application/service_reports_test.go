package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/application"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"github.com/tonycardosa/afiliados-rst/internal/ports"
)

func seedCommission(f *fixture, affiliateID uuid.UUID, orderID int64, earned float64, status domain.CommissionStatus) uuid.UUID {
	id := uuid.New()
	f.commissions.rows = append(f.commissions.rows, domain.Commission{
		CommissionID:     id,
		ExternalOrderID:  orderID,
		CustomerID:       uuid.New(),
		AffiliateID:      affiliateID,
		CommissionEarned: earned,
		Status:           status,
		OrderCreatedAt:   time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		CreatedAt:        time.Now().UTC(),
	})
	return id
}

func TestListCommissionsDecoratesAffiliateName(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	ana := f.seedAffiliate("ana")
	bruno := f.seedAffiliate("bruno")
	seedCommission(f, ana, 1, 10, domain.CommissionPending)
	seedCommission(f, bruno, 2, 20, domain.CommissionPending)

	items, err := f.service.ListCommissions(ctx, nil, 0)
	if err != nil {
		t.Fatalf("list commissions failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	names := map[uuid.UUID]string{}
	for _, item := range items {
		names[item.AffiliateID] = item.AffiliateName
	}
	if names[ana] != "ana" || names[bruno] != "bruno" {
		t.Fatalf("expected affiliate names resolved, got %v", names)
	}

	scoped, err := f.service.ListCommissions(ctx, &ana, 0)
	if err != nil {
		t.Fatalf("scoped list failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].AffiliateID != ana {
		t.Fatalf("expected affiliate-scoped listing, got %d items", len(scoped))
	}
}

func TestListCommissionsToleratesMissingAffiliate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ghost := uuid.New()
	seedCommission(f, ghost, 1, 10, domain.CommissionPending)

	items, err := f.service.ListCommissions(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("list commissions failed: %v", err)
	}
	if len(items) != 1 || items[0].AffiliateName != "" {
		t.Fatalf("expected empty name for missing affiliate")
	}
}

func TestCommissionTotalsGroupByStatus(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	ana := f.seedAffiliate("ana")
	bruno := f.seedAffiliate("bruno")
	seedCommission(f, ana, 1, 10.10, domain.CommissionPending)
	seedCommission(f, ana, 2, 5.05, domain.CommissionPaid)
	seedCommission(f, bruno, 3, 7.50, domain.CommissionPending)

	totals, err := f.service.GetCommissionTotals(ctx, nil)
	if err != nil {
		t.Fatalf("totals failed: %v", err)
	}
	if totals.TotalPending != 17.60 || totals.TotalPaid != 5.05 {
		t.Fatalf("unexpected totals: %+v", totals)
	}

	scoped, err := f.service.GetCommissionTotals(ctx, &ana)
	if err != nil {
		t.Fatalf("scoped totals failed: %v", err)
	}
	if scoped.TotalPending != 10.10 || scoped.TotalPaid != 5.05 {
		t.Fatalf("unexpected scoped totals: %+v", scoped)
	}
}

func TestDeleteCommissionMakesOrderImportableAgain(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	affiliate := f.seedAffiliate("ana")
	f.seedCode(affiliate, "ANA10")
	f.seedDefaultRule(affiliate, 10, 5)
	f.singleItemOrder(1001, 42, 100.0, "ANA10")

	if _, err := f.service.RunSync(ctx); err != nil {
		t.Fatalf("initial sync failed: %v", err)
	}
	commissionID := f.commissions.rows[0].CommissionID

	if err := f.service.DeleteCommission(ctx, commissionID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(f.commissions.rows) != 0 {
		t.Fatalf("expected row removed")
	}

	report, err := f.service.RunSync(ctx)
	if err != nil {
		t.Fatalf("re-sync failed: %v", err)
	}
	if report.ImportedCount != 1 {
		t.Fatalf("expected the order re-imported after deletion, got %+v", report)
	}
}

func TestDeleteCommissionUnknownID(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if err := f.service.DeleteCommission(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSyncBrandsUpserts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	f.source.brandList = []ports.SourceBrand{
		{ExternalID: 1, Name: "acme"},
		{ExternalID: 2, Name: "globex"},
	}

	report, err := f.service.SyncBrands(ctx)
	if err != nil {
		t.Fatalf("sync brands failed: %v", err)
	}
	if report.SyncedCount != 2 {
		t.Fatalf("expected 2 brands synced, got %+v", report)
	}
	brand, err := f.brands.GetByExternalID(ctx, 1)
	if err != nil || brand.Name != "acme" {
		t.Fatalf("expected acme upserted, got %+v err %v", brand, err)
	}

	// A repeat pass converges instead of duplicating.
	f.source.brandList[0].Name = "acme renamed"
	if _, err := f.service.SyncBrands(ctx); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	renamed, _ := f.brands.GetByExternalID(ctx, 1)
	if renamed.Name != "acme renamed" || renamed.BrandID != brand.BrandID {
		t.Fatalf("expected in-place rename, got %+v", renamed)
	}
}

func TestSyncBrandsRequiresConfiguration(t *testing.T) {
	t.Parallel()

	f := newFixtureWithConfig(application.Config{})
	if _, err := f.service.SyncBrands(context.Background()); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
