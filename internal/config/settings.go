package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/erpdash/internal/common"
	"github.com/Veraticus/erpdash/internal/format"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath   = "database.path"
	KeyLocale         = "format.locale"
	KeyWorkers        = "batch.workers"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyOpeningBalance = "cashflow.opening_balance"
	KeyPlaidClientID  = "plaid.client_id"
	KeyPlaidSecret    = "plaid.secret"
	KeyPlaidEnv       = "plaid.environment"
	KeyPlaidToken     = "plaid.access_token"
	KeyPlaidTimeout   = "plaid.timeout"
)

// Settings is the typed view of the configuration.
type Settings struct {
	OpeningBalance decimal.Decimal
	DatabasePath   string
	Locale         string
	LogLevel       string
	LogFormat      string
	Plaid          PlaidSettings
	Workers        int
}

// PlaidSettings holds Plaid credentials.
type PlaidSettings struct {
	ClientID    string
	Secret      string
	Environment string
	AccessToken string
	Timeout     time.Duration
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, filepath.Join(Dir(), AppName+".db"))
	v.SetDefault(KeyLocale, format.DefaultLocale)
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyOpeningBalance, "0")
	v.SetDefault(KeyPlaidEnv, "sandbox")
	v.SetDefault(KeyPlaidTimeout, 30*time.Second)
}

// BindEnv makes every key readable from ERPDASH_ variables, e.g. ERPDASH_DATABASE_PATH.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		Locale:       v.GetString(KeyLocale),
		Workers:      v.GetInt(KeyWorkers),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		Plaid: PlaidSettings{
			ClientID:    v.GetString(KeyPlaidClientID),
			Secret:      v.GetString(KeyPlaidSecret),
			Environment: v.GetString(KeyPlaidEnv),
			AccessToken: v.GetString(KeyPlaidToken),
			Timeout:     v.GetDuration(KeyPlaidTimeout),
		},
	}

	if s.DatabasePath == "" {
		return s, fmt.Errorf("%w: %s is empty", common.ErrMissingConfig, KeyDatabasePath)
	}
	if _, err := format.Lookup(s.Locale); err != nil {
		return s, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyLocale, err)
	}
	if s.Workers < 0 {
		return s, fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyWorkers)
	}
	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return s, err
	}

	balance, err := decimal.NewFromString(v.GetString(KeyOpeningBalance))
	if err != nil {
		return s, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyOpeningBalance, err)
	}
	s.OpeningBalance = balance

	return s, nil
}
