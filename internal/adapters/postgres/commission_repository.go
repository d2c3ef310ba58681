package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"github.com/tonycardosa/afiliados-rst/internal/ports"
	"gorm.io/gorm"
)

type commissionRepository struct {
	db *gorm.DB
}

func (r *commissionRepository) ExistsByExternalOrderID(ctx context.Context, externalOrderID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&commissionModel{}).
		Where("external_order_id = ?", externalOrderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *commissionRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&commissionModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// CreateWithOutboxTx inserts the commission row and its outbox event in one
// transaction, so the event is durable exactly when the commission is. A
// unique violation on external_order_id maps to domain.ErrConflict, which the
// sync path treats as an ordinary duplicate.
func (r *commissionRepository) CreateWithOutboxTx(ctx context.Context, commission domain.Commission, event ports.OutboxEvent) (domain.Commission, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := toCommissionModel(commission)
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return err
		}

		payload := event.Payload
		if len(payload) == 0 {
			payload = []byte(`{}`)
		}
		outbox := commissionOutboxModel{
			OutboxID:     event.EventID,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      string(payload),
			CreatedAt:    event.OccurredAt,
		}
		return tx.Create(&outbox).Error
	})
	if err != nil {
		return domain.Commission{}, err
	}
	return commission, nil
}

func (r *commissionRepository) List(ctx context.Context, affiliateID *uuid.UUID, limit int) ([]domain.Commission, error) {
	query := r.db.WithContext(ctx).
		Model(&commissionModel{}).
		Order("order_created_at DESC, commission_id DESC").
		Limit(limit)
	if affiliateID != nil {
		query = query.Where("affiliate_id = ?", *affiliateID)
	}

	var rows []commissionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Commission, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainCommission(row))
	}
	return result, nil
}

func (r *commissionRepository) Totals(ctx context.Context, affiliateID *uuid.UUID) (pending, paid float64, err error) {
	type totalsRow struct {
		Status string  `gorm:"column:status"`
		Total  float64 `gorm:"column:total"`
	}

	query := r.db.WithContext(ctx).
		Model(&commissionModel{}).
		Select("status, COALESCE(SUM(commission_earned), 0) AS total").
		Group("status")
	if affiliateID != nil {
		query = query.Where("affiliate_id = ?", *affiliateID)
	}

	var rows []totalsRow
	if err := query.Find(&rows).Error; err != nil {
		return 0, 0, err
	}
	for _, row := range rows {
		switch domain.CommissionStatus(row.Status) {
		case domain.CommissionPending:
			pending = row.Total
		case domain.CommissionPaid:
			paid = row.Total
		}
	}
	return pending, paid, nil
}

func (r *commissionRepository) DeleteByID(ctx context.Context, commissionID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("commission_id = ?", commissionID).
		Delete(&commissionModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toCommissionModel(c domain.Commission) commissionModel {
	return commissionModel{
		CommissionID:         c.CommissionID,
		ExternalOrderID:      c.ExternalOrderID,
		CustomerID:           c.CustomerID,
		AffiliateID:          c.AffiliateID,
		OrderTotalWithVAT:    c.OrderTotalWithVAT,
		OrderTotalWithoutVAT: c.OrderTotalWithoutVAT,
		CommissionEarned:     c.CommissionEarned,
		IsFirstPurchase:      c.IsFirstPurchase,
		Status:               string(c.Status),
		OrderCreatedAt:       c.OrderCreatedAt,
		PaidAt:               c.PaidAt,
		CreatedAt:            c.CreatedAt,
	}
}

func toDomainCommission(row commissionModel) domain.Commission {
	return domain.Commission{
		CommissionID:         row.CommissionID,
		ExternalOrderID:      row.ExternalOrderID,
		CustomerID:           row.CustomerID,
		AffiliateID:          row.AffiliateID,
		OrderTotalWithVAT:    row.OrderTotalWithVAT,
		OrderTotalWithoutVAT: row.OrderTotalWithoutVAT,
		CommissionEarned:     row.CommissionEarned,
		IsFirstPurchase:      row.IsFirstPurchase,
		Status:               domain.CommissionStatus(row.Status),
		OrderCreatedAt:       row.OrderCreatedAt,
		PaidAt:               row.PaidAt,
		CreatedAt:            row.CreatedAt,
	}
}
