package application

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"github.com/tonycardosa/afiliados-rst/internal/ports"
)

const eventTypeCommissionCreated = "commission.created"

// commissionCreatedPayload is the published shape of a new commission.
// Consumers key on affiliate_id, hence the partition key below.
type commissionCreatedPayload struct {
	CommissionID      string    `json:"commission_id"`
	ExternalOrderID   int64     `json:"external_order_id"`
	AffiliateID       string    `json:"affiliate_id"`
	CustomerID        string    `json:"customer_id"`
	OrderTotalWithVAT float64   `json:"order_total_with_vat"`
	CommissionEarned  float64   `json:"commission_earned"`
	IsFirstPurchase   bool      `json:"is_first_purchase"`
	OrderCreatedAt    time.Time `json:"order_created_at"`
	OccurredAt        time.Time `json:"occurred_at"`
}

func (s *Service) commissionCreatedEvent(commission domain.Commission, now time.Time) (ports.OutboxEvent, error) {
	payload, err := json.Marshal(commissionCreatedPayload{
		CommissionID:      commission.CommissionID.String(),
		ExternalOrderID:   commission.ExternalOrderID,
		AffiliateID:       commission.AffiliateID.String(),
		CustomerID:        commission.CustomerID.String(),
		OrderTotalWithVAT: commission.OrderTotalWithVAT,
		CommissionEarned:  commission.CommissionEarned,
		IsFirstPurchase:   commission.IsFirstPurchase,
		OrderCreatedAt:    commission.OrderCreatedAt,
		OccurredAt:        now,
	})
	if err != nil {
		return ports.OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventTypeCommissionCreated, err)
	}
	return ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventTypeCommissionCreated,
		PartitionKey: commission.AffiliateID.String(),
		Payload:      payload,
		OccurredAt:   now,
	}, nil
}
