package prestashop

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tonycardosa/afiliados-rst/internal/ports"
)

const upstreamTimeLayout = "2006-01-02 15:04:05"

// ListRecentOrders fetches the latest window of orders in importable states.
// The upstream sorts newest-first; the result is reversed so callers process
// oldest-first and customer state evolves in order.
func (c *Client) ListRecentOrders(ctx context.Context) ([]ports.SourceOrder, error) {
	query := url.Values{}
	query.Set("display", "full")
	query.Set("filter[current_state]", activeOrderStates)
	query.Set("sort", "[id_DESC]")
	query.Set("limit", strconv.Itoa(orderPageSize))

	body, err := c.get(ctx, "orders", query)
	if err != nil {
		if errors.Is(err, errAbsent) {
			return nil, nil
		}
		return nil, err
	}
	rows, err := decodeCollection[wireOrder](body, "orders", "order")
	if err != nil {
		return nil, err
	}

	emailByCustomer := map[int64]string{}
	orders := make([]ports.SourceOrder, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		createdAt, err := time.Parse(upstreamTimeLayout, row.DateAdd)
		if err != nil {
			c.logger.WarnContext(ctx, "unparseable order date",
				"operation", "list_orders",
				"order_id", int64(row.ID),
				"date_add", row.DateAdd,
			)
			createdAt = time.Time{}
		}
		customerID := int64(row.CustomerID)
		email, seen := emailByCustomer[customerID]
		if !seen {
			email = c.fetchCustomerEmail(ctx, customerID)
			emailByCustomer[customerID] = email
		}
		orders = append(orders, ports.SourceOrder{
			ExternalID:         int64(row.ID),
			ExternalCustomerID: customerID,
			Email:              email,
			CreatedAt:          createdAt,
		})
	}
	return orders, nil
}

// fetchCustomerEmail is best effort: the email only annotates the local
// customer row, so lookup failures degrade to an empty string.
func (c *Client) fetchCustomerEmail(ctx context.Context, customerID int64) string {
	var payload struct {
		Customer wireCustomer `json:"customer"`
	}
	err := c.getJSON(ctx, fmt.Sprintf("customers/%d", customerID), nil, &payload)
	if err != nil {
		if !errors.Is(err, errAbsent) {
			c.logger.WarnContext(ctx, "customer lookup failed",
				"operation", "fetch_customer",
				"customer_id", customerID,
				"error", err.Error(),
			)
		}
		return ""
	}
	return payload.Customer.Email
}

func (c *Client) FetchLineItems(ctx context.Context, orderID int64) ([]ports.SourceLineItem, error) {
	query := url.Values{}
	query.Set("display", "full")
	query.Set("filter[id_order]", strconv.FormatInt(orderID, 10))

	body, err := c.get(ctx, "order_details", query)
	if err != nil {
		if errors.Is(err, errAbsent) {
			return nil, nil
		}
		return nil, err
	}
	rows, err := decodeCollection[wireOrderDetail](body, "order_details", "order_detail")
	if err != nil {
		return nil, err
	}

	items := make([]ports.SourceLineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.SourceLineItem{
			ProductExternalID: int64(row.ProductID),
			ProductName:       row.ProductName,
			Quantity:          int(row.ProductQuantity),
			UnitPriceTaxIncl:  float64(row.UnitPriceTaxIncl),
			UnitPriceTaxExcl:  float64(row.UnitPriceTaxExcl),
			TotalTaxIncl:      float64(row.TotalPriceTaxIncl),
			TotalTaxExcl:      float64(row.TotalPriceTaxExcl),
		})
	}
	return items, nil
}

func (c *Client) FetchCartRules(ctx context.Context, orderID int64) ([]ports.CartRuleRef, error) {
	query := url.Values{}
	query.Set("display", "full")
	query.Set("filter[id_order]", strconv.FormatInt(orderID, 10))

	body, err := c.get(ctx, "order_cart_rules", query)
	if err != nil {
		if errors.Is(err, errAbsent) {
			return nil, nil
		}
		return nil, err
	}
	rows, err := decodeCollection[wireOrderCartRule](body, "order_cart_rules", "order_cart_rule")
	if err != nil {
		return nil, err
	}

	refs := make([]ports.CartRuleRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, ports.CartRuleRef{CartRuleID: int64(row.CartRuleID)})
	}
	return refs, nil
}

// FetchCartRuleCode returns "" for rules that no longer exist or carry no
// voucher code; only transport-level failures surface as errors.
func (c *Client) FetchCartRuleCode(ctx context.Context, cartRuleID int64) (string, error) {
	var payload struct {
		CartRule wireCartRule `json:"cart_rule"`
	}
	err := c.getJSON(ctx, fmt.Sprintf("cart_rules/%d", cartRuleID), nil, &payload)
	if err != nil {
		if errors.Is(err, errAbsent) {
			return "", nil
		}
		return "", err
	}
	return payload.CartRule.Code, nil
}

// FetchProductBrand returns the manufacturer external id for a product. The
// boolean is false when the product is gone or has no manufacturer set.
func (c *Client) FetchProductBrand(ctx context.Context, productID int64) (int64, bool, error) {
	var payload struct {
		Product wireProduct `json:"product"`
	}
	err := c.getJSON(ctx, fmt.Sprintf("products/%d", productID), nil, &payload)
	if err != nil {
		if errors.Is(err, errAbsent) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if payload.Product.ManufacturerID == 0 {
		return 0, false, nil
	}
	return int64(payload.Product.ManufacturerID), true, nil
}

func (c *Client) FetchBrands(ctx context.Context) ([]ports.SourceBrand, error) {
	query := url.Values{}
	query.Set("display", "full")

	body, err := c.get(ctx, "manufacturers", query)
	if err != nil {
		if errors.Is(err, errAbsent) {
			return nil, nil
		}
		return nil, err
	}
	rows, err := decodeCollection[wireManufacturer](body, "manufacturers", "manufacturer")
	if err != nil {
		return nil, err
	}

	brands := make([]ports.SourceBrand, 0, len(rows))
	for _, row := range rows {
		brands = append(brands, ports.SourceBrand{
			ExternalID: int64(row.ID),
			Name:       row.Name,
		})
	}
	return brands, nil
}

var _ ports.OrderSource = (*Client)(nil)
