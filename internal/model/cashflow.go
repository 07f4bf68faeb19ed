package model

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"time"

	"github.com/Veraticus/erpdash/internal/format"
	"github.com/shopspring/decimal"
)

// CashFlowEntry is one movement of the cash-flow view, from any source.
type CashFlowEntry struct {
	Date        time.Time
	Balance     decimal.NullDecimal
	ID          string
	Description string
	Category    string
	AccountID   string
	Source      string // "ofx", "plaid" or "seed"
	Hash        string
	Type        string // Source transaction type, e.g. DEBIT, CHECK
	CheckNumber string
	Amount      decimal.Decimal // Always non-negative; Direction carries the sign
	Direction   format.Direction
}

// Signed returns the amount with the direction applied.
func (e CashFlowEntry) Signed() decimal.Decimal {
	if e.Direction == format.Outflow {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Validate ensures the entry is storable.
func (e *CashFlowEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("cash flow entry id is required")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("cash flow entry %s: date is required", e.ID)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("cash flow entry %s: amount must not be negative, got %s", e.ID, e.Amount)
	}
	if e.Direction != format.Inflow && e.Direction != format.Outflow {
		return fmt.Errorf("cash flow entry %s: invalid direction %v", e.ID, e.Direction)
	}
	return nil
}

// GenerateHash creates a unique hash for duplicate detection.
func (e *CashFlowEntry) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s",
		e.Date.Format(time.DateOnly),
		e.Signed().StringFixed(2),
		e.Description,
		e.AccountID,
		e.ID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ApplyRunningBalance orders entries by date and sets each entry's balance,
// starting from opening. It returns the closing balance.
func ApplyRunningBalance(opening decimal.Decimal, entries []CashFlowEntry) decimal.Decimal {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	balance := opening
	for i := range entries {
		balance = balance.Add(entries[i].Signed())
		entries[i].Balance = decimal.NewNullDecimal(balance)
	}
	return balance
}
