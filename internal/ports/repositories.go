package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
)

// AffiliateRepository provides read access to affiliate identities.
// Affiliate lifecycle (creation, removal) is owned by the admin surface of a
// separate service; the engine only references existing rows.
type AffiliateRepository interface {
	GetByID(ctx context.Context, affiliateID uuid.UUID) (domain.Affiliate, error)
	List(ctx context.Context) ([]domain.Affiliate, error)
}

// BrandRepository stores the upstream manufacturer catalog. Upsert is keyed by
// the external id so repeated catalog syncs converge instead of duplicating.
type BrandRepository interface {
	GetByExternalID(ctx context.Context, externalID int64) (domain.Brand, error)
	Upsert(ctx context.Context, externalID int64, name string) (domain.Brand, error)
}

// DiscountCodeRepository resolves voucher codes to their owning affiliate.
// Read-only here; code assignment is an admin concern.
type DiscountCodeRepository interface {
	GetByCode(ctx context.Context, code string) (domain.DiscountCode, error)
}

// CommissionRuleRepository looks up the rate pair for an (affiliate, brand)
// key. A nil brandID selects the affiliate's default rule. At most one row can
// match a given key; that invariant is enforced by unique indexes.
type CommissionRuleRepository interface {
	Find(ctx context.Context, affiliateID uuid.UUID, brandID *uuid.UUID) (domain.CommissionRule, error)
}

// CustomerRepository manages upstream-shopper records and their
// current-affiliate pointer.
type CustomerRepository interface {
	GetByExternalID(ctx context.Context, externalID int64) (domain.Customer, error)
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	SetCurrentAffiliate(ctx context.Context, customerID, affiliateID uuid.UUID) error
}

// CommissionRepository owns the engine's output rows. The transactional create
// method exists to enforce commission+outbox consistency: the event for a new
// commission is durable exactly when the commission row is.
type CommissionRepository interface {
	ExistsByExternalOrderID(ctx context.Context, externalOrderID int64) (bool, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int, error)
	CreateWithOutboxTx(ctx context.Context, commission domain.Commission, event OutboxEvent) (domain.Commission, error)
	List(ctx context.Context, affiliateID *uuid.UUID, limit int) ([]domain.Commission, error)
	Totals(ctx context.Context, affiliateID *uuid.UUID) (pending, paid float64, err error)
	DeleteByID(ctx context.Context, commissionID uuid.UUID) error
}

// OutboxEvent is the write-side event payload prior to storage.
// It is adapter-neutral to keep application code independent of broker specifics.
type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

// OutboxRecord represents durable outbox state, including retry/error metadata.
type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	LastError    *string
	CreatedAt    time.Time
	PublishedAt  *time.Time
	LastErrorAt  *time.Time
}

// OutboxRepository controls the publish-retry workflow for domain events.
type OutboxRepository interface {
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}
