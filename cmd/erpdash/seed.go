package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Veraticus/erpdash/internal/cli"
	"github.com/Veraticus/erpdash/internal/mockdata"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo data set into the database",
		Long: `Load the demo ERP data set (sales, inventory, purchasing, finance, HR,
production and the cash flow) into the database.

Seeding is idempotent: records are replaced by ID and cash movements are
deduplicated by hash. Use --reset to drop every stored record first.`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}

	cmd.Flags().Bool("reset", false, "delete every stored record before seeding")
	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	reset, _ := cmd.Flags().GetBool("reset")

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	if reset {
		counts, err := store.CountRecords(ctx)
		if err != nil {
			return err
		}
		domains := make([]string, 0, len(counts))
		for d := range counts {
			domains = append(domains, d)
		}
		sort.Strings(domains)

		var deleted int64
		for _, d := range domains {
			n, err := store.DeleteRecords(ctx, d)
			if err != nil {
				return fmt.Errorf("failed to reset domain %s: %w", d, err)
			}
			deleted += n
		}
		slog.Info("Reset stored records", "deleted", deleted, "domains", len(domains))
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d registros removidos", deleted)))
	}

	records := mockdata.Records()
	if err := store.SaveRecords(ctx, records); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	inserted, err := store.SaveCashFlow(ctx, mockdata.CashFlow())
	if err != nil {
		return fmt.Errorf("failed to save cash flow: %w", err)
	}

	slog.Info("Seeded database", "path", settings.DatabasePath, "records", len(records), "cash_flow", inserted)
	fmt.Fprintln(out, cli.FormatSuccess("Dados de demonstração carregados"))
	fmt.Fprintln(out, cli.FormatCount("Registros", len(records)))
	fmt.Fprintln(out, cli.FormatCount("Movimentos de caixa novos", inserted))
	return nil
}
