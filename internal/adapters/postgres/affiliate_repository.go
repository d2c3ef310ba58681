package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"gorm.io/gorm"
)

type affiliateRepository struct {
	db *gorm.DB
}

func (r *affiliateRepository) GetByID(ctx context.Context, affiliateID uuid.UUID) (domain.Affiliate, error) {
	var rec affiliateModel
	if err := r.db.WithContext(ctx).Where("affiliate_id = ?", affiliateID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Affiliate{}, domain.ErrNotFound
		}
		return domain.Affiliate{}, err
	}
	return toDomainAffiliate(rec), nil
}

func (r *affiliateRepository) List(ctx context.Context) ([]domain.Affiliate, error) {
	var rows []affiliateModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Affiliate, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainAffiliate(row))
	}
	return result, nil
}

func toDomainAffiliate(row affiliateModel) domain.Affiliate {
	return domain.Affiliate{
		AffiliateID: row.AffiliateID,
		Name:        row.Name,
		Email:       row.Email,
		CreatedAt:   row.CreatedAt,
	}
}
