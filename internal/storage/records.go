package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/Veraticus/erpdash/internal/status"
)

const recordColumns = `id, domain, module, name, raw_status,
	stock_current, stock_min, stock_max, days_past_due,
	amount, progress_done, progress_total, attributes, updated_at`

// SaveRecords inserts records, replacing any stored record with the same ID.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			domain = excluded.domain,
			module = excluded.module,
			name = excluded.name,
			raw_status = excluded.raw_status,
			stock_current = excluded.stock_current,
			stock_min = excluded.stock_min,
			stock_max = excluded.stock_max,
			days_past_due = excluded.days_past_due,
			amount = excluded.amount,
			progress_done = excluded.progress_done,
			progress_total = excluded.progress_total,
			attributes = excluded.attributes,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, r := range records {
		var stockCurrent, stockMin, stockMax, daysPastDue sql.NullInt64
		if r.Stock != nil {
			stockCurrent = sql.NullInt64{Int64: int64(r.Stock.Current), Valid: true}
			stockMin = sql.NullInt64{Int64: int64(r.Stock.Min), Valid: true}
			stockMax = sql.NullInt64{Int64: int64(r.Stock.Max), Valid: true}
		}
		if r.DaysPastDue != nil {
			daysPastDue = sql.NullInt64{Int64: int64(*r.DaysPastDue), Valid: true}
		}

		var done, total sql.NullFloat64
		if r.Progress != nil {
			done = sql.NullFloat64{Float64: r.Progress.Done, Valid: true}
			total = sql.NullFloat64{Float64: r.Progress.Total, Valid: true}
		}

		var attrs sql.NullString
		if len(r.Attributes) > 0 {
			data, jsonErr := json.Marshal(r.Attributes)
			if jsonErr != nil {
				return fmt.Errorf("failed to marshal attributes of %s: %w", r.ID, jsonErr)
			}
			attrs = sql.NullString{String: string(data), Valid: true}
		}

		updated := r.UpdatedAt
		if updated.IsZero() {
			updated = now
		}

		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Domain, r.Module, r.Name, r.RawStatus,
			stockCurrent, stockMin, stockMax, daysPastDue,
			r.Amount, done, total, attrs, updated,
		); err != nil {
			return fmt.Errorf("failed to save record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// GetRecords returns records matching the filter, ordered by module, domain and ID.
func (s *SQLiteStorage) GetRecords(ctx context.Context, filter service.RecordFilter) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if filter.Domain != "" {
		where = append(where, "domain = ?")
		args = append(args, filter.Domain)
	}
	if filter.Module != "" {
		where = append(where, "module = ?")
		args = append(args, filter.Module)
	}

	query := "SELECT " + recordColumns + " FROM records"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY module, domain, id"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		r, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

// GetRecord returns a single record or ErrRecordNotFound.
func (s *SQLiteStorage) GetRecord(ctx context.Context, id string) (*model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRecords removes every record of a domain and reports how many were removed.
func (s *SQLiteStorage) DeleteRecords(ctx context.Context, domain string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(domain, "domain"); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE domain = ?", domain)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted records: %w", err)
	}
	return n, nil
}

// CountRecords returns the number of stored records per domain.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (map[string]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT domain, COUNT(*) FROM records GROUP BY domain")
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			domain string
			n      int
		)
		if err := rows.Scan(&domain, &n); err != nil {
			return nil, fmt.Errorf("failed to scan record count: %w", err)
		}
		counts[domain] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (model.Record, error) {
	var (
		r                                             model.Record
		stockCurrent, stockMin, stockMax, daysPastDue sql.NullInt64
		done, total                                   sql.NullFloat64
		attrs                                         sql.NullString
	)

	err := row.Scan(
		&r.ID, &r.Domain, &r.Module, &r.Name, &r.RawStatus,
		&stockCurrent, &stockMin, &stockMax, &daysPastDue,
		&r.Amount, &done, &total, &attrs, &r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("failed to scan record: %w", err)
	}

	if stockCurrent.Valid {
		r.Stock = &status.StockLevel{
			Current: int(stockCurrent.Int64),
			Min:     int(stockMin.Int64),
			Max:     int(stockMax.Int64),
		}
	}
	if daysPastDue.Valid {
		days := int(daysPastDue.Int64)
		r.DaysPastDue = &days
	}
	if done.Valid && total.Valid {
		r.Progress = &model.Fraction{Done: done.Float64, Total: total.Float64}
	}
	if attrs.Valid && attrs.String != "" {
		if err := json.Unmarshal([]byte(attrs.String), &r.Attributes); err != nil {
			return r, fmt.Errorf("failed to unmarshal attributes of %s: %w", r.ID, err)
		}
	}
	return r, nil
}
