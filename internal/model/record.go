// Package model defines the ERP records the dashboard classifies and renders.
package model

import (
	"fmt"
	"time"

	"github.com/Veraticus/erpdash/internal/status"
	"github.com/shopspring/decimal"
)

// Fraction is a done/total pair rendered as a ratio and a progress bar.
type Fraction struct {
	Done  float64 `json:"done"`
	Total float64 `json:"total"`
}

// Record is the stored, domain-agnostic form of any ERP row.
type Record struct {
	UpdatedAt   time.Time           `json:"updated_at"`
	Stock       *status.StockLevel  `json:"stock,omitempty"`
	DaysPastDue *int                `json:"days_past_due,omitempty"`
	Progress    *Fraction           `json:"progress,omitempty"`
	Attributes  map[string]string   `json:"attributes,omitempty"`
	Amount      decimal.NullDecimal `json:"amount"`
	ID          string              `json:"id"`
	Domain      string              `json:"domain"`
	Module      string              `json:"module"`
	Name        string              `json:"name"`
	RawStatus   string              `json:"raw_status"`
}

// StatusRecord returns the fields the classifier reads.
func (r Record) StatusRecord() status.Record {
	return status.Record{
		RawStatus:   r.RawStatus,
		Stock:       r.Stock,
		DaysPastDue: r.DaysPastDue,
	}
}

// Validate ensures the record has the fields every view needs.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if r.Domain == "" {
		return fmt.Errorf("record %s: domain is required", r.ID)
	}
	if r.Name == "" {
		return fmt.Errorf("record %s: name is required", r.ID)
	}
	if r.Progress != nil && r.Progress.Total < 0 {
		return fmt.Errorf("record %s: progress total must not be negative, got %v", r.ID, r.Progress.Total)
	}
	return nil
}

// Attr returns an attribute or the empty string.
func (r Record) Attr(key string) string {
	if r.Attributes == nil {
		return ""
	}
	return r.Attributes[key]
}

// Money is a helper for building valid NullDecimal amounts.
func Money(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(value))
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
