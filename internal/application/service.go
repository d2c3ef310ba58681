package application

import (
	"log/slog"
	"math"
	"time"

	"github.com/tonycardosa/afiliados-rst/internal/ports"
)

// Config carries the sync-relevant runtime settings. The upstream credentials
// are duplicated here (the source adapter also holds them) so RunSync can fail
// fast on missing configuration before any upstream or store work happens.
type Config struct {
	SourceAPIURL string
	SourceAPIKey string
	PassBudget   time.Duration
}

type Service struct {
	cfg         Config
	source      ports.OrderSource
	affiliates  ports.AffiliateRepository
	brands      ports.BrandRepository
	codes       ports.DiscountCodeRepository
	rules       ports.CommissionRuleRepository
	customers   ports.CustomerRepository
	commissions ports.CommissionRepository
	lock        ports.SyncLock
	logger      *slog.Logger
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Source      ports.OrderSource
	Affiliates  ports.AffiliateRepository
	Brands      ports.BrandRepository
	Codes       ports.DiscountCodeRepository
	Rules       ports.CommissionRuleRepository
	Customers   ports.CustomerRepository
	Commissions ports.CommissionRepository
	Lock        ports.SyncLock
	Logger      *slog.Logger
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Config.PassBudget <= 0 {
		deps.Config.PassBudget = 5 * time.Minute
	}
	return &Service{
		cfg:         deps.Config,
		source:      deps.Source,
		affiliates:  deps.Affiliates,
		brands:      deps.Brands,
		codes:       deps.Codes,
		rules:       deps.Rules,
		customers:   deps.Customers,
		commissions: deps.Commissions,
		lock:        deps.Lock,
		logger:      logger.With("module", "sync", "layer", "application"),
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// round2 keeps monetary accumulation at two-decimal precision, matching the
// numeric(10,2) columns the results are persisted into.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
