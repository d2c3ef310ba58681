package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

func (r *customerRepository) GetByExternalID(ctx context.Context, externalID int64) (domain.Customer, error) {
	var rec customerModel
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Customer{}, domain.ErrNotFound
		}
		return domain.Customer{}, err
	}
	return toDomainCustomer(rec), nil
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	rec := customerModel{
		CustomerID:         customer.CustomerID,
		ExternalID:         customer.ExternalID,
		Email:              customer.Email,
		CurrentAffiliateID: customer.CurrentAffiliateID,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, domain.ErrConflict
		}
		return domain.Customer{}, err
	}
	return toDomainCustomer(rec), nil
}

func (r *customerRepository) SetCurrentAffiliate(ctx context.Context, customerID, affiliateID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&customerModel{}).
		Where("customer_id = ?", customerID).
		Update("current_affiliate_id", affiliateID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDomainCustomer(row customerModel) domain.Customer {
	return domain.Customer{
		CustomerID:         row.CustomerID,
		ExternalID:         row.ExternalID,
		Email:              row.Email,
		CurrentAffiliateID: row.CurrentAffiliateID,
	}
}
