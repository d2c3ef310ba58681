package application

import (
	"time"

	"github.com/google/uuid"
)

// SyncReport is the outcome of one sync pass. ImportedCount is the caller
// contract; the remaining counters exist for structured logging and tests so
// "nothing new" and "everything skipped" are distinguishable.
type SyncReport struct {
	ImportedCount       int `json:"imported_count"`
	DuplicateCount      int `json:"duplicate_count"`
	UnattributedCount   int `json:"unattributed_count"`
	ZeroCommissionCount int `json:"zero_commission_count"`
	FailedCount         int `json:"failed_count"`
}

// BrandSyncReport summarizes one catalog sync.
type BrandSyncReport struct {
	SyncedCount int `json:"synced_count"`
}

// CommissionItem is the read-model row returned by ListCommissions: the
// persisted commission decorated with the affiliate's display name.
type CommissionItem struct {
	CommissionID         uuid.UUID  `json:"commission_id"`
	ExternalOrderID      int64      `json:"external_order_id"`
	CustomerID           uuid.UUID  `json:"customer_id"`
	AffiliateID          uuid.UUID  `json:"affiliate_id"`
	AffiliateName        string     `json:"affiliate_name"`
	OrderTotalWithVAT    float64    `json:"order_total_with_vat"`
	OrderTotalWithoutVAT float64    `json:"order_total_without_vat"`
	CommissionEarned     float64    `json:"commission_earned"`
	IsFirstPurchase      bool       `json:"is_first_purchase"`
	Status               string     `json:"status"`
	OrderCreatedAt       time.Time  `json:"order_created_at"`
	PaidAt               *time.Time `json:"paid_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// CommissionTotals aggregates earned amounts by lifecycle status, optionally
// scoped to a single affiliate.
type CommissionTotals struct {
	TotalPending float64 `json:"total_pending"`
	TotalPaid    float64 `json:"total_paid"`
}

// orderOutcome labels how one order left the sync pipeline. Values are logged
// per order so operators can tell skips apart without changing the caller
// contract (which remains a bare imported count).
type orderOutcome string

const (
	outcomeImported       orderOutcome = "imported"
	outcomeDuplicate      orderOutcome = "duplicate"
	outcomeUnattributed   orderOutcome = "unattributed"
	outcomeZeroCommission orderOutcome = "zero_commission"
	outcomeFailed         orderOutcome = "failed"
)
