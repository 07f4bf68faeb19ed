package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/erpdash/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("ERPDASH_TEST_DIR", "/srv/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/db/erp.db", want: filepath.Join(home, "db", "erp.db")},
		{in: "$ERPDASH_TEST_DIR/erp.db", want: "/srv/data/erp.db"},
		{in: "/abs/path", want: "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/erpdash", Dir())
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "pt-BR", s.Locale)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Equal(t, 0, s.Workers)
	assert.True(t, s.OpeningBalance.IsZero())
	assert.Equal(t, "sandbox", s.Plaid.Environment)
	assert.Equal(t, 30*time.Second, s.Plaid.Timeout)
	assert.Equal(t, "erpdash.db", filepath.Base(s.DatabasePath))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ERPDASH_FORMAT_LOCALE", "en-US")
	t.Setenv("ERPDASH_BATCH_WORKERS", "4")
	t.Setenv("ERPDASH_CASHFLOW_OPENING_BALANCE", "187540.00")

	v := newViper()
	BindEnv(v)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "en-US", s.Locale)
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, "187540", s.OpeningBalance.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		wantErr error
		key     string
		value   any
		name    string
	}{
		{name: "unsupported locale", key: KeyLocale, value: "fr-FR", wantErr: common.ErrInvalidConfig},
		{name: "negative workers", key: KeyWorkers, value: -1, wantErr: common.ErrInvalidConfig},
		{name: "bad log level", key: KeyLogLevel, value: "loud", wantErr: common.ErrInvalidConfig},
		{name: "bad balance", key: KeyOpeningBalance, value: "lots", wantErr: common.ErrInvalidConfig},
		{name: "empty database", key: KeyDatabasePath, value: "", wantErr: common.ErrMissingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	v := newViper()
	v.Set("sheets.service_account_path", "/keys/sa.json")
	v.Set("sheets.spreadsheet_id", "sheet-123")

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
	assert.Equal(t, "sheet-123", cfg.SpreadsheetID)

	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	_, err = LoadSheetsConfig(newViper())
	assert.Error(t, err, "no credentials configured")
}
