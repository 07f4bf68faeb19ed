package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/erpdash/internal/format"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/shopspring/decimal"
)

// SaveCashFlow stores entries, skipping any whose hash is already present.
// It returns the number of entries actually inserted.
func (s *SQLiteStorage) SaveCashFlow(ctx context.Context, entries []model.CashFlowEntry) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateCashFlow(entries); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO cash_flow (
			id, hash, date, description, category, account_id,
			source, transaction_type, check_number, amount, direction
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, e := range entries {
		hash := e.Hash
		if hash == "" {
			hash = e.GenerateHash()
		}
		res, execErr := stmt.ExecContext(ctx,
			e.ID, hash, e.Date.UTC(), e.Description, e.Category, e.AccountID,
			e.Source, e.Type, e.CheckNumber, e.Amount.String(), e.Direction.String(),
		)
		if execErr != nil {
			return 0, fmt.Errorf("failed to save cash flow entry %s: %w", e.ID, execErr)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit cash flow: %w", err)
	}
	return inserted, nil
}

// GetCashFlow returns entries dated within [start, end], oldest first.
// Balances are left unset; callers apply their own opening balance.
func (s *SQLiteStorage) GetCashFlow(ctx context.Context, start, end time.Time) ([]model.CashFlowEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash, date, description, category, account_id,
			source, transaction_type, check_number, amount, direction
		FROM cash_flow
		WHERE date >= ? AND date <= ?
		ORDER BY date, id
	`, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query cash flow: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.CashFlowEntry
	for rows.Next() {
		var (
			e         model.CashFlowEntry
			amount    string
			direction string
		)
		if err := rows.Scan(
			&e.ID, &e.Hash, &e.Date, &e.Description, &e.Category, &e.AccountID,
			&e.Source, &e.Type, &e.CheckNumber, &amount, &direction,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cash flow entry: %w", err)
		}

		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q for %s: %w", amount, e.ID, err)
		}
		if direction == format.Outflow.String() {
			e.Direction = format.Outflow
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash flow: %w", err)
	}
	return entries, nil
}

// GetCashFlowSummary totals inflows and outflows within [start, end].
func (s *SQLiteStorage) GetCashFlowSummary(ctx context.Context, start, end time.Time) (*service.CashFlowSummary, error) {
	entries, err := s.GetCashFlow(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := &service.CashFlowSummary{
		DateRange:  service.DateRange{Start: start, End: end},
		ByCategory: make(map[string]service.CategorySummary),
		Count:      len(entries),
	}
	for _, e := range entries {
		if e.Direction == format.Outflow {
			summary.Outflow = summary.Outflow.Add(e.Amount)
		} else {
			summary.Inflow = summary.Inflow.Add(e.Amount)
		}

		cat := e.Category
		if cat == "" {
			cat = "Sem categoria"
		}
		cs := summary.ByCategory[cat]
		cs.Count++
		cs.Amount = cs.Amount.Add(e.Signed())
		summary.ByCategory[cat] = cs
	}
	summary.Net = summary.Inflow.Sub(summary.Outflow)
	return summary, nil
}
