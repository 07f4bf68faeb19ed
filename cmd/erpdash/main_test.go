package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/erpdash/internal/catalog"
	"github.com/Veraticus/erpdash/internal/common"
	"github.com/Veraticus/erpdash/internal/config"
	"github.com/Veraticus/erpdash/internal/format"
	"github.com/Veraticus/erpdash/internal/mockdata"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/plaid"
	"github.com/Veraticus/erpdash/internal/report"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/Veraticus/erpdash/internal/sheets"
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/Veraticus/erpdash/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTest points the global configuration at a fresh temp directory.
func setupTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", dir)
	viper.Set(config.KeyDatabasePath, filepath.Join(dir, "erpdash.db"))
	viper.Set(config.KeyLogLevel, "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_Structure(t *testing.T) {
	cmd := newRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{
		"auth", "cashflow", "classify", "dashboard", "domains",
		"export", "format", "import", "seed", "status", "version",
	} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "log-level", "log-format", "locale"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	setupTest(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "erpdash dev\n", out)
}

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		want    string
		args    []string
	}{
		{
			name: "stock level overrides raw status",
			args: []string{"--domain", "stock", "--status", "active", "--level", "5", "--min", "15"},
			want: "Estoque Baixo",
		},
		{
			name: "empty stock",
			args: []string{"--domain", "stock", "--status", "active", "--level", "0", "--min", "10"},
			want: "Sem Estoque",
		},
		{
			name: "pending title past due",
			args: []string{"--domain", "payable", "--status", "pending", "--days-past-due", "3"},
			want: "Vencido",
		},
		{
			name: "paid title stays paid",
			args: []string{"--domain", "receivable", "--status", "paid", "--days-past-due", "3"},
			want: "Pago",
		},
		{
			name: "raw status is normalized",
			args: []string{"--domain", "machine", "--status", "Operating"},
			want: "Operando",
		},
		{
			name:    "unknown status",
			args:    []string{"--domain", "machine", "--status", "exploded"},
			want:    "Não classificável",
			wantErr: status.ErrUnknownStatus,
		},
		{
			name:    "unknown domain",
			args:    []string{"--domain", "warehouse", "--status", "open"},
			wantErr: catalog.ErrUnknownDomain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTest(t)
			out, err := execute(t, append([]string{"classify"}, tt.args...)...)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestClassifyCommand_RequiresDomain(t *testing.T) {
	setupTest(t)
	_, err := execute(t, "classify", "--status", "active")
	assert.Error(t, err)
}

func TestDomainsCommand(t *testing.T) {
	setupTest(t)

	out, err := execute(t, "domains", "stock")
	require.NoError(t, err)
	for _, want := range []string{"stock", "Estoque", "derivado", "in_stock", "Em Estoque", "low_stock", "out_of_stock", "critical"} {
		assert.Contains(t, out, want)
	}

	out, err = execute(t, "domains")
	require.NoError(t, err)
	for _, d := range catalog.All() {
		assert.Contains(t, out, d.Name())
	}

	_, err = execute(t, "domains", "warehouse")
	assert.ErrorIs(t, err, catalog.ErrUnknownDomain)
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		want    string
		args    []string
	}{
		{name: "currency", args: []string{"currency", "1234.5"}, want: "R$ 1.234,50\n"},
		{name: "outflow", args: []string{"currency", "85000", "--direction", "outflow"}, want: "-R$ 85.000,00\n"},
		{name: "inflow", args: []string{"currency", "22890", "--direction", "inflow"}, want: "+R$ 22.890,00\n"},
		{name: "en-US", args: []string{"currency", "1234.5", "--locale", "en-US"}, want: "$1,234.50\n"},
		{name: "ratio", args: []string{"ratio", "45", "100"}, want: "45%\n"},
		{name: "change", args: []string{"change", "5.2"}, want: "+5,2%\n"},
		{name: "zero total", args: []string{"ratio", "1", "0"}, wantErr: format.ErrDivisionByZero},
		{name: "not a number", args: []string{"currency", "abc"}, wantErr: format.ErrInvalidNumber},
		{name: "bad locale", args: []string{"currency", "1", "--locale", "xx-YY"}, wantErr: format.ErrUnsupportedLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTest(t)
			out, err := execute(t, append([]string{"format"}, tt.args...)...)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatCommand_Progress(t *testing.T) {
	setupTest(t)
	out, err := execute(t, "format", "progress", "45", "100", "--width", "10")
	require.NoError(t, err)
	assert.Equal(t, "████░░░░░░ 45%\n", out)
}

func TestSeedAndStatus(t *testing.T) {
	setupTest(t)

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Dados de demonstração carregados")

	// Seeding again replaces records and skips known movements.
	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Movimentos de caixa novos: 0")

	out, err = execute(t, "status", "--module", "inventory")
	require.NoError(t, err)
	for _, want := range []string{
		"PRD-001", "Em Estoque", "R$ 890,00", "45%",
		"PRD-002", "Estoque Baixo",
		"PRD-004", "Sem Estoque",
		"Resumo por módulo", "Estoque", "Crítico",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "CLI-1", "other modules are filtered out")

	out, err = execute(t, "status", "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Vendas")
	assert.Contains(t, out, "Produção")
	assert.NotContains(t, out, "PRD-001")
}

func TestSeedCommand_Reset(t *testing.T) {
	setupTest(t)

	_, err := execute(t, "seed")
	require.NoError(t, err)

	out, err := execute(t, "seed", "--reset")
	require.NoError(t, err)
	assert.Contains(t, out, "registros removidos")
}

func TestStatusCommand_Errors(t *testing.T) {
	setupTest(t)

	_, err := execute(t, "status")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoRecords)
	assert.Contains(t, common.UserMessage(err), "erpdash seed")

	_, err = execute(t, "status", "--module", "warehouse")
	assert.ErrorIs(t, err, catalog.ErrUnknownModule)
}

func TestCashFlowCommand(t *testing.T) {
	setupTest(t)
	viper.Set(config.KeyOpeningBalance, mockdata.OpeningBalance.String())

	_, err := execute(t, "seed")
	require.NoError(t, err)

	out, err := execute(t, "cashflow")
	require.NoError(t, err)
	for _, want := range []string{
		"Pagamento salários", "-R$ 85.000,00", "R$ 102.540,00",
		"Venda - Pedido #PV-001", "+R$ 15.430,00",
		"Resumo do caixa", "Vendas", "Pessoal",
		"Saldo inicial: R$ 187.540,00",
		"R$ 94.970,00",
	} {
		assert.Contains(t, out, want)
	}

	// The balance carries the movements before --start.
	out, err = execute(t, "cashflow", "--start", "2024-01-15", "--end", "2024-01-15", "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Saldo inicial: R$ 125.430,00")
	assert.Contains(t, out, "R$ 94.970,00")
	assert.NotContains(t, out, "Pagamento salários")
}

func TestCashFlowCommand_Empty(t *testing.T) {
	setupTest(t)

	_, err := execute(t, "cashflow", "--start", "2024-01-01", "--end", "2024-01-31")
	assert.ErrorIs(t, err, common.ErrNoEntries)

	_, err = execute(t, "cashflow", "--start", "2024-02-01", "--end", "2024-01-01")
	assert.Error(t, err)

	_, err = execute(t, "cashflow", "--start", "01/02/2024")
	assert.Error(t, err)
}

func TestImportPlaidCommand(t *testing.T) {
	setupTest(t)

	mock := plaid.NewMockClient()
	mock.GetCashFlowFn = func(_ context.Context, _, _ time.Time) ([]model.CashFlowEntry, error) {
		return []model.CashFlowEntry{
			{ID: "pl-1", Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), Description: "Energia Elétrica SP", Category: "Utilidades", Amount: decimal.RequireFromString("3240"), Direction: format.Outflow, Source: "plaid"},
			{ID: "pl-2", Date: time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), Description: "Recebimento NF-12345", Category: "Vendas", Amount: decimal.RequireFromString("15430"), Direction: format.Inflow, Source: "plaid"},
		}, nil
	}
	orig := newPlaidFetcher
	newPlaidFetcher = func(plaid.Config) (plaid.Fetcher, error) { return mock, nil }
	t.Cleanup(func() { newPlaidFetcher = orig })

	out, err := execute(t, "import", "plaid", "--start", "2024-01-01", "--end", "2024-01-31", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Energia Elétrica SP")
	assert.Contains(t, out, "-R$ 3.240,00")
	assert.Contains(t, out, "Simulação: 2 movimentos")

	require.Len(t, mock.GetCashFlowCalls, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), mock.GetCashFlowCalls[0].Start)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), mock.GetCashFlowCalls[0].End)

	out, err = execute(t, "import", "plaid", "--start", "2024-01-01", "--end", "2024-01-31")
	require.NoError(t, err)
	assert.Contains(t, out, "2 movimentos importados")

	out, err = execute(t, "import", "plaid", "--start", "2024-01-01", "--end", "2024-01-31")
	require.NoError(t, err)
	assert.Contains(t, out, "0 movimentos importados")
	assert.Contains(t, out, "2 já existiam")
}

func TestImportPlaidCommand_FetchError(t *testing.T) {
	setupTest(t)

	mock := plaid.NewMockClient()
	mock.GetCashFlowFn = func(context.Context, time.Time, time.Time) ([]model.CashFlowEntry, error) {
		return nil, common.ErrPlaidConnection
	}
	orig := newPlaidFetcher
	newPlaidFetcher = func(plaid.Config) (plaid.Fetcher, error) { return mock, nil }
	t.Cleanup(func() { newPlaidFetcher = orig })

	_, err := execute(t, "import", "plaid")
	assert.ErrorIs(t, err, common.ErrPlaidConnection)
}

func TestImportPlaidCommand_MissingCredentials(t *testing.T) {
	setupTest(t)
	_, err := execute(t, "import", "plaid")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

const testOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>POR
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>BRL
<BANKACCTFROM>
<BANKID>341
<ACCTID>12345-6
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-459.90
<FITID>OFX2024011001
<NAME>MATERIAL ESCRITORIO SA
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240112120000[0:GMT]
<TRNAMT>8250.00
<FITID>OFX2024011201
<NAME>RECEBIMENTO NF-12346
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>7790.10
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

func TestImportOFXCommand(t *testing.T) {
	dir := setupTest(t)

	path := filepath.Join(dir, "extrato.ofx")
	require.NoError(t, os.WriteFile(path, []byte(testOFX), 0o600))

	out, err := execute(t, "import", "ofx", filepath.Join(dir, "*.ofx"))
	require.NoError(t, err)
	assert.Contains(t, out, "2 movimentos importados")

	// The same file twice in one run is deduplicated.
	out, err = execute(t, "import", "ofx", path, path)
	require.NoError(t, err)
	assert.Contains(t, out, "0 movimentos importados")

	out, err = execute(t, "cashflow", "--start", "2024-01-01", "--end", "2024-01-31")
	require.NoError(t, err)
	assert.Contains(t, out, "-R$ 459,90")
	assert.Contains(t, out, "+R$ 8.250,00")
}

func TestImportOFXCommand_NoFiles(t *testing.T) {
	dir := setupTest(t)
	_, err := execute(t, "import", "ofx", filepath.Join(dir, "*.qfx"))
	assert.Error(t, err)
}

func TestExportSheetsCommand(t *testing.T) {
	setupTest(t)

	mock := sheets.NewMockWriter()
	orig := newReportWriter
	newReportWriter = func(context.Context, *viper.Viper) (service.ReportWriter, error) { return mock, nil }
	t.Cleanup(func() { newReportWriter = orig })

	_, err := execute(t, "export", "sheets")
	assert.ErrorIs(t, err, common.ErrNoRecords)

	_, err = execute(t, "seed")
	require.NoError(t, err)

	out, err := execute(t, "export", "sheets", "--module", "financial")
	require.NoError(t, err)
	assert.Contains(t, out, "6 registros exportados")

	require.NotNil(t, mock.LastReport)
	assert.Len(t, mock.LastReport.Rows, len(mockdata.Titles()))
	for _, row := range mock.LastReport.Rows {
		assert.Equal(t, "financial", row.Module)
	}
}

func TestExportSheetsCommand_WriteError(t *testing.T) {
	setupTest(t)

	mock := sheets.NewMockWriter()
	mock.SetWriteError(common.ErrRateLimit)
	orig := newReportWriter
	newReportWriter = func(context.Context, *viper.Viper) (service.ReportWriter, error) { return mock, nil }
	t.Cleanup(func() { newReportWriter = orig })

	_, err := execute(t, "seed")
	require.NoError(t, err)

	_, err = execute(t, "export", "sheets")
	assert.ErrorIs(t, err, common.ErrRateLimit)
}

func TestStoreLoader(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSeededDB(t)

	var evaluated atomic.Int64
	loader := storeLoader(db.Storage, report.Options{Locale: "pt-BR", Workers: 4})

	rep, err := loader(ctx, func() { evaluated.Add(1) })
	require.NoError(t, err)
	assert.Len(t, rep.Rows, len(mockdata.Records()))
	assert.Equal(t, int64(len(mockdata.Records())), evaluated.Load())

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = loader(canceled, func() {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExpandFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.ofx")
	b := filepath.Join(dir, "b.ofx")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("x"), 0o600))

	files, err := expandFiles([]string{filepath.Join(dir, "*.ofx"), filepath.Join(dir, "missing.ofx")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, files)

	_, err = expandFiles([]string{"[invalid"})
	assert.Error(t, err)
}
