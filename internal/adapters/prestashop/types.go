package prestashop

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexInt64 decodes upstream numeric fields that arrive either as JSON
// numbers or as quoted strings ("152").
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse int %q: %w", s, err)
	}
	*f = flexInt64(v)
	return nil
}

// flexFloat is flexInt64's decimal counterpart ("149.90").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse float %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

// decodeCollection normalizes the shapes a webservice collection can take:
// {"plural": [ ... ]} for many rows, {"plural": {"singular": {...}}} for
// exactly one, {"plural": {"singular": [ ... ]}} on installations that nest
// the rows under the singular key, and a bare array (usually []) for none.
func decodeCollection[T any](body []byte, plural, singular string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		return decodeRows[T](trimmed, plural)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s envelope: %w", plural, err)
	}
	inner, ok := envelope[plural]
	if !ok {
		return nil, nil
	}

	inner = bytes.TrimSpace(inner)
	if len(inner) > 0 && inner[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(inner, &wrapped); err != nil {
			return nil, fmt.Errorf("decode %s wrapper: %w", plural, err)
		}
		if single, ok := wrapped[singular]; ok {
			inner = bytes.TrimSpace(single)
		}
		if len(inner) > 0 && inner[0] == '[' {
			return decodeRows[T](inner, plural)
		}
		var one T
		if err := json.Unmarshal(inner, &one); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", singular, err)
		}
		return []T{one}, nil
	}

	return decodeRows[T](inner, plural)
}

func decodeRows[T any](raw []byte, plural string) ([]T, error) {
	var many []T
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", plural, err)
	}
	return many, nil
}

type wireOrder struct {
	ID         flexInt64 `json:"id"`
	CustomerID flexInt64 `json:"id_customer"`
	DateAdd    string    `json:"date_add"`
}

type wireOrderDetail struct {
	ProductID         flexInt64 `json:"product_id"`
	ProductName       string    `json:"product_name"`
	ProductQuantity   flexInt64 `json:"product_quantity"`
	UnitPriceTaxIncl  flexFloat `json:"unit_price_tax_incl"`
	UnitPriceTaxExcl  flexFloat `json:"unit_price_tax_excl"`
	TotalPriceTaxIncl flexFloat `json:"total_price_tax_incl"`
	TotalPriceTaxExcl flexFloat `json:"total_price_tax_excl"`
}

type wireOrderCartRule struct {
	CartRuleID flexInt64 `json:"id_cart_rule"`
}

type wireCartRule struct {
	Code string `json:"code"`
}

type wireCustomer struct {
	Email string `json:"email"`
}

type wireProduct struct {
	ManufacturerID flexInt64 `json:"id_manufacturer"`
}

type wireManufacturer struct {
	ID   flexInt64 `json:"id"`
	Name string    `json:"name"`
}
