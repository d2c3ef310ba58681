package application_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tonycardosa/afiliados-rst/internal/application"
	"github.com/tonycardosa/afiliados-rst/internal/domain"
	"github.com/tonycardosa/afiliados-rst/internal/ports"
)

type fixture struct {
	service     *application.Service
	source      *fakeSource
	affiliates  *fakeAffiliates
	brands      *fakeBrands
	codes       *fakeCodes
	rules       *fakeRules
	customers   *fakeCustomers
	commissions *fakeCommissions
	lock        *fakeLock
}

func newFixture() *fixture {
	return newFixtureWithConfig(defaultTestConfig())
}

func defaultTestConfig() application.Config {
	return application.Config{
		SourceAPIURL: "https://shop.example.com",
		SourceAPIKey: "test-api-key",
		PassBudget:   time.Minute,
	}
}

func newFixtureWithConfig(cfg application.Config) *fixture {
	source := &fakeSource{
		lineItems:        map[int64][]ports.SourceLineItem{},
		cartRules:        map[int64][]ports.CartRuleRef{},
		cartRuleCodes:    map[int64]string{},
		productBrands:    map[int64]int64{},
		lineItemErrs:     map[int64]error{},
		cartRuleErrs:     map[int64]error{},
		cartRuleCodeErrs: map[int64]error{},
	}
	affiliates := &fakeAffiliates{byID: map[uuid.UUID]domain.Affiliate{}}
	brands := &fakeBrands{byExternal: map[int64]domain.Brand{}}
	codes := &fakeCodes{byCode: map[string]domain.DiscountCode{}}
	rules := &fakeRules{}
	customers := &fakeCustomers{byExternal: map[int64]domain.Customer{}}
	commissions := &fakeCommissions{}
	lock := &fakeLock{}

	svc := application.NewService(application.Dependencies{
		Config:      cfg,
		Source:      source,
		Affiliates:  affiliates,
		Brands:      brands,
		Codes:       codes,
		Rules:       rules,
		Customers:   customers,
		Commissions: commissions,
		Lock:        lock,
	})

	return &fixture{
		service:     svc,
		source:      source,
		affiliates:  affiliates,
		brands:      brands,
		codes:       codes,
		rules:       rules,
		customers:   customers,
		commissions: commissions,
		lock:        lock,
	}
}

func (f *fixture) seedAffiliate(name string) uuid.UUID {
	id := uuid.New()
	f.affiliates.byID[id] = domain.Affiliate{
		AffiliateID: id,
		Name:        name,
		Email:       name + "@example.com",
		CreatedAt:   time.Now().UTC(),
	}
	return id
}

func (f *fixture) seedCode(affiliateID uuid.UUID, code string) {
	f.codes.byCode[code] = domain.DiscountCode{
		CodeID:      uuid.New(),
		AffiliateID: affiliateID,
		Code:        code,
	}
}

func (f *fixture) seedDefaultRule(affiliateID uuid.UUID, firstRate, subsequentRate float64) {
	f.rules.items = append(f.rules.items, domain.CommissionRule{
		RuleID:         uuid.New(),
		AffiliateID:    affiliateID,
		BrandID:        nil,
		FirstRate:      firstRate,
		SubsequentRate: subsequentRate,
	})
}

func (f *fixture) seedBrandRule(affiliateID, brandID uuid.UUID, firstRate, subsequentRate float64) {
	id := brandID
	f.rules.items = append(f.rules.items, domain.CommissionRule{
		RuleID:         uuid.New(),
		AffiliateID:    affiliateID,
		BrandID:        &id,
		FirstRate:      firstRate,
		SubsequentRate: subsequentRate,
	})
}

func (f *fixture) seedBrand(externalID int64, name string) uuid.UUID {
	id := uuid.New()
	f.brands.byExternal[externalID] = domain.Brand{
		BrandID:    id,
		ExternalID: externalID,
		Name:       name,
	}
	return id
}

// singleItemOrder wires one order with one line item and optionally one cart
// rule code into the fake source.
func (f *fixture) singleItemOrder(orderID, customerID int64, totalTaxIncl float64, code string) {
	f.source.orders = append(f.source.orders, ports.SourceOrder{
		ExternalID:         orderID,
		ExternalCustomerID: customerID,
		Email:              "customer@example.com",
		CreatedAt:          time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	f.source.lineItems[orderID] = []ports.SourceLineItem{{
		ProductExternalID: 900 + orderID,
		ProductName:       "product",
		Quantity:          1,
		UnitPriceTaxIncl:  totalTaxIncl,
		UnitPriceTaxExcl:  totalTaxIncl / 1.23,
		TotalTaxIncl:      totalTaxIncl,
		TotalTaxExcl:      totalTaxIncl / 1.23,
	}}
	if code != "" {
		ruleID := 500 + orderID
		f.source.cartRules[orderID] = []ports.CartRuleRef{{CartRuleID: ruleID}}
		f.source.cartRuleCodes[ruleID] = code
	}
}

// prependCartRule inserts a cart-rule reference ahead of any the order already
// carries, so tests can control which reference is checked first.
func (f *fixture) prependCartRule(orderID, cartRuleID int64) {
	f.source.cartRules[orderID] = append(
		[]ports.CartRuleRef{{CartRuleID: cartRuleID}},
		f.source.cartRules[orderID]...,
	)
}

type fakeSource struct {
	mu            sync.Mutex
	orders        []ports.SourceOrder
	lineItems     map[int64][]ports.SourceLineItem
	cartRules     map[int64][]ports.CartRuleRef
	cartRuleCodes map[int64]string
	productBrands map[int64]int64
	brandList     []ports.SourceBrand

	listErr          error
	brandsErr        error
	lineItemErrs     map[int64]error
	cartRuleErrs     map[int64]error
	cartRuleCodeErrs map[int64]error
}

func (s *fakeSource) ListRecentOrders(_ context.Context) ([]ports.SourceOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]ports.SourceOrder(nil), s.orders...), nil
}

func (s *fakeSource) FetchLineItems(_ context.Context, orderID int64) ([]ports.SourceLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lineItemErrs[orderID]; err != nil {
		return nil, err
	}
	return s.lineItems[orderID], nil
}

func (s *fakeSource) FetchCartRules(_ context.Context, orderID int64) ([]ports.CartRuleRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cartRuleErrs[orderID]; err != nil {
		return nil, err
	}
	return s.cartRules[orderID], nil
}

func (s *fakeSource) FetchCartRuleCode(_ context.Context, cartRuleID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cartRuleCodeErrs[cartRuleID]; err != nil {
		return "", err
	}
	return s.cartRuleCodes[cartRuleID], nil
}

func (s *fakeSource) FetchProductBrand(_ context.Context, productID int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	brandID, ok := s.productBrands[productID]
	return brandID, ok, nil
}

func (s *fakeSource) FetchBrands(_ context.Context) ([]ports.SourceBrand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.brandsErr != nil {
		return nil, s.brandsErr
	}
	return append([]ports.SourceBrand(nil), s.brandList...), nil
}

type fakeAffiliates struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.Affiliate
}

func (r *fakeAffiliates) GetByID(_ context.Context, affiliateID uuid.UUID) (domain.Affiliate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[affiliateID]
	if !ok {
		return domain.Affiliate{}, domain.ErrNotFound
	}
	return a, nil
}

func (r *fakeAffiliates) List(_ context.Context) ([]domain.Affiliate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Affiliate, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

type fakeBrands struct {
	mu         sync.Mutex
	byExternal map[int64]domain.Brand
}

func (r *fakeBrands) GetByExternalID(_ context.Context, externalID int64) (domain.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byExternal[externalID]
	if !ok {
		return domain.Brand{}, domain.ErrNotFound
	}
	return b, nil
}

func (r *fakeBrands) Upsert(_ context.Context, externalID int64, name string) (domain.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byExternal[externalID]
	if !ok {
		b = domain.Brand{BrandID: uuid.New(), ExternalID: externalID}
	}
	b.Name = name
	r.byExternal[externalID] = b
	return b, nil
}

type fakeCodes struct {
	mu     sync.Mutex
	byCode map[string]domain.DiscountCode
}

func (r *fakeCodes) GetByCode(_ context.Context, code string) (domain.DiscountCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dc, ok := r.byCode[code]
	if !ok {
		return domain.DiscountCode{}, domain.ErrNotFound
	}
	return dc, nil
}

type fakeRules struct {
	mu    sync.Mutex
	items []domain.CommissionRule
}

func (r *fakeRules) Find(_ context.Context, affiliateID uuid.UUID, brandID *uuid.UUID) (domain.CommissionRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.items {
		if rule.AffiliateID != affiliateID {
			continue
		}
		if brandID == nil && rule.BrandID == nil {
			return rule, nil
		}
		if brandID != nil && rule.BrandID != nil && *rule.BrandID == *brandID {
			return rule, nil
		}
	}
	return domain.CommissionRule{}, domain.ErrNotFound
}

type fakeCustomers struct {
	mu         sync.Mutex
	byExternal map[int64]domain.Customer
}

func (r *fakeCustomers) GetByExternalID(_ context.Context, externalID int64) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byExternal[externalID]
	if !ok {
		return domain.Customer{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCustomers) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byExternal[customer.ExternalID]; ok {
		return domain.Customer{}, domain.ErrConflict
	}
	r.byExternal[customer.ExternalID] = customer
	return customer, nil
}

func (r *fakeCustomers) SetCurrentAffiliate(_ context.Context, customerID, affiliateID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ext, c := range r.byExternal {
		if c.CustomerID == customerID {
			c.CurrentAffiliateID = affiliateID
			r.byExternal[ext] = c
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeCommissions struct {
	mu     sync.Mutex
	rows   []domain.Commission
	events []ports.OutboxEvent
}

func (r *fakeCommissions) ExistsByExternalOrderID(_ context.Context, externalOrderID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ExternalOrderID == externalOrderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCommissions) CountByCustomer(_ context.Context, customerID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, row := range r.rows {
		if row.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCommissions) CreateWithOutboxTx(_ context.Context, commission domain.Commission, event ports.OutboxEvent) (domain.Commission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ExternalOrderID == commission.ExternalOrderID {
			return domain.Commission{}, domain.ErrConflict
		}
	}
	r.rows = append(r.rows, commission)
	r.events = append(r.events, event)
	return commission, nil
}

func (r *fakeCommissions) List(_ context.Context, affiliateID *uuid.UUID, limit int) ([]domain.Commission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Commission, 0, len(r.rows))
	for i := len(r.rows) - 1; i >= 0; i-- {
		row := r.rows[i]
		if affiliateID != nil && row.AffiliateID != *affiliateID {
			continue
		}
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeCommissions) Totals(_ context.Context, affiliateID *uuid.UUID) (pending, paid float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if affiliateID != nil && row.AffiliateID != *affiliateID {
			continue
		}
		switch row.Status {
		case domain.CommissionPending:
			pending += row.CommissionEarned
		case domain.CommissionPaid:
			paid += row.CommissionEarned
		}
	}
	return pending, paid, nil
}

func (r *fakeCommissions) DeleteByID(_ context.Context, commissionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.CommissionID == commissionID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeLock struct {
	mu         sync.Mutex
	held       bool
	acquireErr error
	acquires   int
	releases   int
}

func (l *fakeLock) Acquire(_ context.Context, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquires++
	if l.acquireErr != nil {
		return false, l.acquireErr
	}
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *fakeLock) Release(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releases++
	l.held = false
	return nil
}
