// Package testutil provides test databases for the dashboard's commands and views.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/erpdash/internal/mockdata"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/Veraticus/erpdash/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Records        []model.Record
	CashFlow       []model.CashFlowEntry
	SkipMigrations bool
}

// SetupTestDB creates an empty, migrated in-memory database closed at test cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupSeededDB creates an in-memory database holding the demo data set.
//
// Example:
//
//	db := testutil.SetupSeededDB(t)
//	records := db.MustGetRecords(service.RecordFilter{Module: "inventory"})
func SetupSeededDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{
		Records:  mockdata.Records(),
		CashFlow: mockdata.CashFlow(),
	})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	// Run migrations unless skipped
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if len(opts.Records) > 0 {
		if err := store.SaveRecords(ctx, opts.Records); err != nil {
			t.Fatalf("failed to seed records: %v", err)
		}
	}
	if len(opts.CashFlow) > 0 {
		if _, err := store.SaveCashFlow(ctx, opts.CashFlow); err != nil {
			t.Fatalf("failed to seed cash flow: %v", err)
		}
	}

	// Run custom setup
	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// MustGetRecords returns the stored records matching filter or fails the test.
func (db *TestDB) MustGetRecords(filter service.RecordFilter) []model.Record {
	db.t.Helper()
	records, err := db.Storage.GetRecords(context.Background(), filter)
	if err != nil {
		db.t.Fatalf("failed to get records: %v", err)
	}
	return records
}
