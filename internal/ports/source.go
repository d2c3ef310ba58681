package ports

import (
	"context"
	"time"
)

// SourceOrder is one upstream order as seen by the engine: a read-only
// snapshot carrying only the fields the attribution and calculation paths use.
type SourceOrder struct {
	ExternalID         int64
	ExternalCustomerID int64
	Email              string
	CreatedAt          time.Time
}

// SourceLineItem is one order row. Upstream sometimes omits the line total, in
// which case consumers fall back to unit price times quantity.
type SourceLineItem struct {
	ProductExternalID int64
	ProductName       string
	Quantity          int
	UnitPriceTaxIncl  float64
	UnitPriceTaxExcl  float64
	TotalTaxIncl      float64
	TotalTaxExcl      float64
}

// CartRuleRef is a discount/cart-rule reference attached to an order. The
// reference alone carries no code; the detail must be fetched separately.
type CartRuleRef struct {
	CartRuleID int64
}

// SourceBrand is one upstream manufacturer row.
type SourceBrand struct {
	ExternalID int64
	Name       string
}

// OrderSource is the stable contract over the upstream commerce API. It hides
// pagination and response-shape quirks: collections always come back as
// slices, missing records come back as absent values, and transport or HTTP
// failures come back wrapped in domain.ErrSourceUnavailable.
type OrderSource interface {
	// ListRecentOrders returns the recent-order window filtered to active
	// statuses, oldest first, so import order stays close to chronological.
	ListRecentOrders(ctx context.Context) ([]SourceOrder, error)
	FetchLineItems(ctx context.Context, orderID int64) ([]SourceLineItem, error)
	FetchCartRules(ctx context.Context, orderID int64) ([]CartRuleRef, error)
	// FetchCartRuleCode resolves a cart-rule reference to its voucher code.
	// An empty string means the upstream has no such rule or the rule has no code.
	FetchCartRuleCode(ctx context.Context, cartRuleID int64) (string, error)
	// FetchProductBrand returns the brand external id for a product. The
	// boolean is false when the product or its brand reference is absent.
	FetchProductBrand(ctx context.Context, productID int64) (int64, bool, error)
	FetchBrands(ctx context.Context) ([]SourceBrand, error)
}
