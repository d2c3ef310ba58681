package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type brandRepository struct {
	db *gorm.DB
}

func (r *brandRepository) GetByExternalID(ctx context.Context, externalID int64) (domain.Brand, error) {
	var rec brandModel
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Brand{}, domain.ErrNotFound
		}
		return domain.Brand{}, err
	}
	return toDomainBrand(rec), nil
}

func (r *brandRepository) Upsert(ctx context.Context, externalID int64, name string) (domain.Brand, error) {
	rec := brandModel{
		ExternalID: externalID,
		Name:       name,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name": rec.Name,
		}),
	}).Create(&rec).Error; err != nil {
		return domain.Brand{}, err
	}
	// The returning clause is not guaranteed through the upsert path, so
	// re-read to get the stable row id.
	return r.GetByExternalID(ctx, externalID)
}

func toDomainBrand(row brandModel) domain.Brand {
	return domain.Brand{
		BrandID:    row.BrandID,
		ExternalID: row.ExternalID,
		Name:       row.Name,
	}
}

type discountCodeRepository struct {
	db *gorm.DB
}

func (r *discountCodeRepository) GetByCode(ctx context.Context, code string) (domain.DiscountCode, error) {
	var rec discountCodeModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DiscountCode{}, domain.ErrNotFound
		}
		return domain.DiscountCode{}, err
	}
	return domain.DiscountCode{
		CodeID:      rec.CodeID,
		AffiliateID: rec.AffiliateID,
		Code:        rec.Code,
	}, nil
}

type commissionRuleRepository struct {
	db *gorm.DB
}

func (r *commissionRuleRepository) Find(ctx context.Context, affiliateID uuid.UUID, brandID *uuid.UUID) (domain.CommissionRule, error) {
	query := r.db.WithContext(ctx).Where("affiliate_id = ?", affiliateID)
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	} else {
		query = query.Where("brand_id IS NULL")
	}

	var rec commissionRuleModel
	if err := query.Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CommissionRule{}, domain.ErrNotFound
		}
		return domain.CommissionRule{}, err
	}
	return domain.CommissionRule{
		RuleID:         rec.RuleID,
		AffiliateID:    rec.AffiliateID,
		BrandID:        rec.BrandID,
		FirstRate:      rec.FirstRate,
		SubsequentRate: rec.SubsequentRate,
	}, nil
}
