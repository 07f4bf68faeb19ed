package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Sequential(t *testing.T) {
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, "migration %q", m.Description)
		assert.NotEmpty(t, m.Description)
	}
	assert.Equal(t, len(migrations), ExpectedSchemaVersion)
}

func TestMigrate_CreatesSchema(t *testing.T) {
	store := createTestStorage(t)

	tests := []struct {
		kind string
		name string
	}{
		{kind: "table", name: "records"},
		{kind: "table", name: "cash_flow"},
		{kind: "index", name: "idx_records_domain"},
		{kind: "index", name: "idx_records_module"},
		{kind: "index", name: "idx_cash_flow_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var count int
			err := store.db.QueryRow(
				`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`,
				tt.kind, tt.name,
			).Scan(&count)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}

	var columns int
	err := store.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('records') WHERE name IN ('progress_done', 'progress_total')`).Scan(&columns)
	require.NoError(t, err)
	assert.Equal(t, 2, columns)
}

func TestMigrate_NilContext(t *testing.T) {
	store := createTestStorage(t)
	//nolint:staticcheck // nil context is the case under test
	err := store.Migrate(nil)
	assert.ErrorIs(t, err, ErrNilContext)

	_, err = store.SchemaVersion(context.Background())
	assert.NoError(t, err)
}
