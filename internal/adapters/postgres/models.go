package postgres

import (
	"time"

	"github.com/google/uuid"
)

type affiliateModel struct {
	AffiliateID uuid.UUID `gorm:"column:affiliate_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name"`
	Email       string    `gorm:"column:email"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (affiliateModel) TableName() string { return "affiliates" }

type brandModel struct {
	BrandID    uuid.UUID `gorm:"column:brand_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ExternalID int64     `gorm:"column:external_id"`
	Name       string    `gorm:"column:name"`
}

func (brandModel) TableName() string { return "brands" }

type discountCodeModel struct {
	CodeID      uuid.UUID `gorm:"column:code_id;type:uuid;default:gen_random_uuid();primaryKey"`
	AffiliateID uuid.UUID `gorm:"column:affiliate_id"`
	Code        string    `gorm:"column:code"`
}

func (discountCodeModel) TableName() string { return "discount_codes" }

type commissionRuleModel struct {
	RuleID         uuid.UUID  `gorm:"column:rule_id;type:uuid;default:gen_random_uuid();primaryKey"`
	AffiliateID    uuid.UUID  `gorm:"column:affiliate_id"`
	BrandID        *uuid.UUID `gorm:"column:brand_id"`
	FirstRate      float64    `gorm:"column:first_rate"`
	SubsequentRate float64    `gorm:"column:subsequent_rate"`
}

func (commissionRuleModel) TableName() string { return "commission_rules" }

type customerModel struct {
	CustomerID         uuid.UUID `gorm:"column:customer_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ExternalID         int64     `gorm:"column:external_id"`
	Email              string    `gorm:"column:email"`
	CurrentAffiliateID uuid.UUID `gorm:"column:current_affiliate_id"`
}

func (customerModel) TableName() string { return "customers" }

type commissionModel struct {
	CommissionID         uuid.UUID  `gorm:"column:commission_id;type:uuid;primaryKey"`
	ExternalOrderID      int64      `gorm:"column:external_order_id"`
	CustomerID           uuid.UUID  `gorm:"column:customer_id"`
	AffiliateID          uuid.UUID  `gorm:"column:affiliate_id"`
	OrderTotalWithVAT    float64    `gorm:"column:order_total_with_vat"`
	OrderTotalWithoutVAT float64    `gorm:"column:order_total_without_vat"`
	CommissionEarned     float64    `gorm:"column:commission_earned"`
	IsFirstPurchase      bool       `gorm:"column:is_first_purchase"`
	Status               string     `gorm:"column:status"`
	OrderCreatedAt       time.Time  `gorm:"column:order_created_at"`
	PaidAt               *time.Time `gorm:"column:paid_at"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
}

func (commissionModel) TableName() string { return "commissions" }

type commissionOutboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      string     `gorm:"column:payload;type:jsonb"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	RetryCount   int        `gorm:"column:retry_count"`
	LastError    *string    `gorm:"column:last_error"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
}

func (commissionOutboxModel) TableName() string { return "commission_outbox" }
