// Package service defines the interfaces shared by the dashboard's components.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/erpdash/internal/model"
	"github.com/shopspring/decimal"
)

// RecordFilter narrows record queries. Empty fields match everything.
type RecordFilter struct {
	Domain string
	Module string
	Limit  int
	Offset int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Record operations
	SaveRecords(ctx context.Context, records []model.Record) error
	GetRecords(ctx context.Context, filter RecordFilter) ([]model.Record, error)
	GetRecord(ctx context.Context, id string) (*model.Record, error)
	DeleteRecords(ctx context.Context, domain string) (int64, error)
	CountRecords(ctx context.Context) (map[string]int, error)

	// Cash flow operations
	SaveCashFlow(ctx context.Context, entries []model.CashFlowEntry) (int, error)
	GetCashFlow(ctx context.Context, start, end time.Time) ([]model.CashFlowEntry, error)
	GetCashFlowSummary(ctx context.Context, start, end time.Time) (*CashFlowSummary, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// CategorySummary contains aggregated statistics for a category.
type CategorySummary struct {
	Amount decimal.Decimal
	Count  int
}

// CashFlowSummary contains inflow, outflow, and net flow totals.
type CashFlowSummary struct {
	DateRange  DateRange
	ByCategory map[string]CategorySummary
	Inflow     decimal.Decimal
	Outflow    decimal.Decimal
	Net        decimal.Decimal
	Count      int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// ReportWriter publishes a status report somewhere outside the terminal.
type ReportWriter interface {
	Write(ctx context.Context, report *model.Report) error
}
