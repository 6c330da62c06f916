package payout

import (
	"context"
	"sync"
	"time"

	"rentme/internal/models"
	"rentme/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// fakeVendorStore is an in-memory VendorStore that counts writes.
type fakeVendorStore struct {
	mu             sync.Mutex
	vendors        map[string]*models.Vendor
	getErr         error
	linkErr        error
	accountWrites  int
	completeWrites int

	// raceAccountID simulates a concurrent writer linking first.
	raceAccountID string
}

func newFakeStore(vendors ...*models.Vendor) *fakeVendorStore {
	s := &fakeVendorStore{vendors: make(map[string]*models.Vendor)}
	for _, v := range vendors {
		s.vendors[v.ID] = v
	}
	return s
}

func (f *fakeVendorStore) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.vendors[id]
	if !ok {
		return nil, repositories.ErrVendorNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVendorStore) SetStripeAccountIfAbsent(ctx context.Context, id, accountID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.linkErr != nil {
		return false, f.linkErr
	}
	v, ok := f.vendors[id]
	if !ok {
		return false, nil
	}
	if f.raceAccountID != "" {
		winner := f.raceAccountID
		v.StripeAccountID = &winner
	}
	if v.HasStripeAccount() {
		return false, nil
	}
	v.StripeAccountID = &accountID
	v.StripeOnboardingComplete = false
	f.accountWrites++
	return true, nil
}

func (f *fakeVendorStore) MarkOnboardingComplete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vendors[id]
	if !ok || v.StripeOnboardingComplete {
		return false, nil
	}
	v.StripeOnboardingComplete = true
	now := time.Now()
	v.OnboardingCompletedAt = &now
	f.completeWrites++
	return true, nil
}

func (f *fakeVendorStore) vendor(id string) *models.Vendor {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.vendors[id]
	return &cp
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateAccount(ctx context.Context, params CreateAccountParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) CreateOnboardingLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	args := m.Called(ctx, accountID, refreshURL, returnURL)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) CreateLoginLink(ctx context.Context, accountID string) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) RetrieveAccount(ctx context.Context, accountID string) (*Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockProvider) RetrieveBalance(ctx context.Context, accountID string) (*BalanceSnapshot, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BalanceSnapshot), args.Error(1)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	args := m.Called(ctx, key, ttl)
	release, _ := args.Get(0).(func())
	return release, args.Bool(1), args.Error(2)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OnboardingCompleted(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

// countingMetrics records only the lifecycle events.
type countingMetrics struct {
	NoopMetricsCollector
	mu        sync.Mutex
	created   int
	completed int
	errors    map[string]int
}

func (c *countingMetrics) RecordAccountCreated(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created++
}

func (c *countingMetrics) RecordOnboardingCompleted(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed++
}

func (c *countingMetrics) RecordError(op, errType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errors == nil {
		c.errors = make(map[string]int)
	}
	c.errors[op+":"+errType]++
}
