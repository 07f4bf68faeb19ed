// Package storage provides the data persistence layer for the dashboard.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/service"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrInvalidCashFlow  = errors.New("invalid cash flow entry")
	ErrInvalidFilter    = errors.New("invalid record filter")
	ErrRecordNotFound   = errors.New("record not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecords validates a slice of records.
func validateRecords(records []model.Record) error {
	if records == nil {
		return fmt.Errorf("%w: records", ErrNilParameter)
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: records", ErrEmptySlice)
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidRecord, i, err)
		}
	}
	return nil
}

// validateCashFlow validates a slice of cash flow entries.
func validateCashFlow(entries []model.CashFlowEntry) error {
	if entries == nil {
		return fmt.Errorf("%w: entries", ErrNilParameter)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: entries", ErrEmptySlice)
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidCashFlow, i, err)
		}
	}
	return nil
}

func validateFilter(f service.RecordFilter) error {
	if f.Limit < 0 || f.Offset < 0 {
		return fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidFilter)
	}
	if f.Offset > 0 && f.Limit == 0 {
		return fmt.Errorf("%w: offset requires a limit", ErrInvalidFilter)
	}
	return nil
}

func validateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, end, start)
	}
	return nil
}
