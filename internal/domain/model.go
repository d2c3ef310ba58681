package domain

import (
	"time"

	"github.com/google/uuid"
)

// Affiliate is the referrer identity that commissions are credited to.
// Account management (roles, login) lives outside this service; only the
// fields the attribution and read paths need are modeled here.
type Affiliate struct {
	AffiliateID uuid.UUID
	Name        string
	Email       string
	CreatedAt   time.Time
}

// Brand mirrors one upstream manufacturer. Rows are keyed by the upstream
// identifier so catalog re-syncs are idempotent.
type Brand struct {
	BrandID    uuid.UUID
	ExternalID int64
	Name       string
}

// DiscountCode maps one upstream voucher code to its owning affiliate.
// Code usage on an order is the strongest attribution signal.
type DiscountCode struct {
	CodeID      uuid.UUID
	AffiliateID uuid.UUID
	Code        string
}

// CommissionRule is a rate pair scoped to an affiliate and optionally a brand.
// BrandID nil denotes the affiliate's default rule, used when a line item's
// brand has no dedicated rule or cannot be resolved at all.
type CommissionRule struct {
	RuleID         uuid.UUID
	AffiliateID    uuid.UUID
	BrandID        *uuid.UUID
	FirstRate      float64
	SubsequentRate float64
}

// Customer tracks one upstream shopper and the affiliate currently credited
// for them. CurrentAffiliateID reflects the most recent attribution, not the
// original one: a later order placed with a different affiliate's code
// re-points the customer.
type Customer struct {
	CustomerID         uuid.UUID
	ExternalID         int64
	Email              string
	CurrentAffiliateID uuid.UUID
}

type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionPaid    CommissionStatus = "paid"
)

// Commission is the engine's output: one row per successfully imported
// upstream order. ExternalOrderID is unique, which is what makes repeated
// sync passes safe. The paid transition is owned by the payout flow and is
// read-only here.
type Commission struct {
	CommissionID         uuid.UUID
	ExternalOrderID      int64
	CustomerID           uuid.UUID
	AffiliateID          uuid.UUID
	OrderTotalWithVAT    float64
	OrderTotalWithoutVAT float64
	CommissionEarned     float64
	IsFirstPurchase      bool
	Status               CommissionStatus
	OrderCreatedAt       time.Time
	PaidAt               *time.Time
	CreatedAt            time.Time
}
