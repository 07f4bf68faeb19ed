package plaid

import (
	"context"
	"time"

	"github.com/Veraticus/erpdash/internal/model"
)

// Fetcher is a remote source of cash flow entries.
type Fetcher interface {
	GetCashFlow(ctx context.Context, start, end time.Time) ([]model.CashFlowEntry, error)
	GetAccounts(ctx context.Context) ([]string, error)
}
