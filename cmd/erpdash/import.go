package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/erpdash/internal/cli"
	"github.com/Veraticus/erpdash/internal/format"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/ofx"
	"github.com/Veraticus/erpdash/internal/plaid"
	"github.com/spf13/cobra"
)

// newPlaidFetcher is swapped in tests.
var newPlaidFetcher = func(cfg plaid.Config) (plaid.Fetcher, error) {
	return plaid.NewClient(cfg)
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import cash movements into the cash flow",
		Long:  `Import bank movements from OFX/QFX files or from Plaid into the cash flow view.`,
	}

	cmd.PersistentFlags().BoolP("dry-run", "n", false, "preview the import without saving")

	cmd.AddCommand(importOFXCmd())
	cmd.AddCommand(importPlaidCmd())

	return cmd
}

func importOFXCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ofx [files...]",
		Short: "Import movements from OFX/QFX files",
		Long: `Import movements from OFX or QFX files exported from your bank.

Examples:
  # Import single file
  erpdash import ofx ~/Downloads/extrato_jan_2024.ofx

  # Import every file of a directory
  erpdash import ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	files, err := expandFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

	parser := ofx.NewParser()
	seen := make(map[string]bool)
	var entries []model.CashFlowEntry

	for _, path := range files {
		found, err := parseOFXFile(ctx, parser, path)
		if err != nil {
			slog.Error("Failed to import file", "file", path, "error", err)
			continue
		}

		added := 0
		for _, e := range found {
			if !seen[e.Hash] {
				seen[e.Hash] = true
				entries = append(entries, e)
				added++
			}
		}
		slog.Info("Processed file",
			"file", filepath.Base(path),
			"entries_found", len(found),
			"added", added,
			"duplicates", len(found)-added)
	}

	return saveImported(cmd, entries, dryRun)
}

func parseOFXFile(ctx context.Context, parser *ofx.Parser, path string) ([]model.CashFlowEntry, error) {
	f, err := os.Open(path) //nolint:gosec // user-selected import file
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(ctx, f)
}

func importPlaidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plaid",
		Short: "Fetch movements from Plaid",
		Long: `Fetch the movements of the linked Plaid item within a date range.

Credentials come from plaid.client_id, plaid.secret and plaid.access_token
(or ERPDASH_PLAID_* variables).

Examples:
  erpdash import plaid --start 2024-01-01 --end 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: runImportPlaid,
	}

	cmd.Flags().String("start", "", "first day to fetch (YYYY-MM-DD, default: 30 days ago)")
	cmd.Flags().String("end", "", "last day to fetch (YYYY-MM-DD, default: today)")

	return cmd
}

func runImportPlaid(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	start, end, err := dateRange(cmd, func(end time.Time) time.Time {
		return end.AddDate(0, 0, -30)
	})
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	fetcher, err := newPlaidFetcher(plaid.Config{
		ClientID:    settings.Plaid.ClientID,
		Secret:      settings.Plaid.Secret,
		Environment: settings.Plaid.Environment,
		AccessToken: settings.Plaid.AccessToken,
		Timeout:     settings.Plaid.Timeout,
	})
	if err != nil {
		return err
	}

	slog.Info("Fetching Plaid movements", "start", start.Format(time.DateOnly), "end", end.Format(time.DateOnly))
	entries, err := fetcher.GetCashFlow(ctx, start, end)
	if err != nil {
		return err
	}

	return saveImported(cmd, entries, dryRun)
}

// saveImported previews or stores imported entries and prints the outcome.
func saveImported(cmd *cobra.Command, entries []model.CashFlowEntry, dryRun bool) error {
	out := cmd.OutOrStdout()

	if len(entries) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("Nenhum movimento encontrado"))
		return nil
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	if dryRun {
		printEntries(out, entries, settings.Locale)
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Simulação: %d movimentos não foram salvos", len(entries))))
		return nil
	}

	store, err := initStorage(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	inserted, err := store.SaveCashFlow(cmd.Context(), entries)
	if err != nil {
		return fmt.Errorf("failed to save movements: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d movimentos importados", inserted)))
	if dup := len(entries) - inserted; dup > 0 {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d já existiam", dup)))
	}
	return nil
}

func printEntries(w io.Writer, entries []model.CashFlowEntry, locale string) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		amount, err := format.SignedCurrency(e.Amount, e.Direction, locale)
		if err != nil {
			amount = e.Signed().String()
		}
		rows = append(rows, []string{e.Date.Format("02/01/2006"), e.Description, e.Category, amount})
	}
	fmt.Fprintln(w, cli.RenderTable([]string{"Data", "Descrição", "Categoria", "Valor"}, rows))
}

// dateRange reads --start and --end. End defaults to today and start to defaultStart(end).
func dateRange(cmd *cobra.Command, defaultStart func(end time.Time) time.Time) (time.Time, time.Time, error) {
	startFlag, _ := cmd.Flags().GetString("start")
	endFlag, _ := cmd.Flags().GetString("end")

	end := time.Now().UTC().Truncate(24 * time.Hour)
	if endFlag != "" {
		t, err := parseDate("end", endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
	}

	start := defaultStart(end)
	if startFlag != "" {
		t, err := parseDate("start", startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("--start %s is after --end %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return start, end, nil
}
