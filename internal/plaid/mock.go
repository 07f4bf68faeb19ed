package plaid

import (
	"context"
	"sync"
	"time"

	"github.com/Veraticus/erpdash/internal/model"
)

// MockClient is a Fetcher for tests.
type MockClient struct {
	GetCashFlowFn func(ctx context.Context, start, end time.Time) ([]model.CashFlowEntry, error)
	GetAccountsFn func(ctx context.Context) ([]string, error)

	GetCashFlowCalls []GetCashFlowCall
	GetAccountsCalls int
	mu               sync.Mutex
}

// GetCashFlowCall records the parameters of a GetCashFlow call.
type GetCashFlowCall struct {
	Start time.Time
	End   time.Time
}

var _ Fetcher = (*MockClient)(nil)

// NewMockClient creates a new mock Plaid client.
func NewMockClient() *MockClient {
	return &MockClient{GetCashFlowCalls: []GetCashFlowCall{}}
}

// GetCashFlow records the call and returns GetCashFlowFn's result, or nothing.
func (m *MockClient) GetCashFlow(ctx context.Context, start, end time.Time) ([]model.CashFlowEntry, error) {
	m.mu.Lock()
	m.GetCashFlowCalls = append(m.GetCashFlowCalls, GetCashFlowCall{Start: start, End: end})
	fn := m.GetCashFlowFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, start, end)
	}
	return []model.CashFlowEntry{}, nil
}

// GetAccounts records the call and returns GetAccountsFn's result, or nothing.
func (m *MockClient) GetAccounts(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.GetAccountsCalls++
	fn := m.GetAccountsFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return []string{}, nil
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCashFlowCalls = []GetCashFlowCall{}
	m.GetAccountsCalls = 0
}
