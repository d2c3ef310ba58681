package postgres

import (
	"errors"

	"github.com/tonycardosa/afiliados-rst/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Affiliates  ports.AffiliateRepository
	Brands      ports.BrandRepository
	Codes       ports.DiscountCodeRepository
	Rules       ports.CommissionRuleRepository
	Customers   ports.CustomerRepository
	Commissions ports.CommissionRepository
	Outbox      ports.OutboxRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Affiliates:  &affiliateRepository{db: db},
		Brands:      &brandRepository{db: db},
		Codes:       &discountCodeRepository{db: db},
		Rules:       &commissionRuleRepository{db: db},
		Customers:   &customerRepository{db: db},
		Commissions: &commissionRepository{db: db},
		Outbox:      &outboxRepository{db: db},
	}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
