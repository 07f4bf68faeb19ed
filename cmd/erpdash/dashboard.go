package main

import (
	"context"

	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/report"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/Veraticus/erpdash/internal/tui"
	"github.com/Veraticus/erpdash/internal/tui/themes"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"tui"},
		Short:   "Browse the status report in an interactive dashboard",
		Long: `Open the interactive dashboard: one tab per ERP module, each listing its
records with their status badges, amounts and progress. Press r to reload
from the database and ? for help.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}

	cmd.Flags().String("theme", "default", "colour theme (default, catppuccin-mocha)")
	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	theme, _ := cmd.Flags().GetString("theme")

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	return tui.Run(ctx,
		tui.WithLoader(storeLoader(store, report.Options{Locale: settings.Locale, Workers: settings.Workers})),
		tui.WithTheme(themes.GetTheme(theme)),
	)
}

// storeLoader evaluates every stored record each time the dashboard (re)loads.
func storeLoader(store service.Storage, opts report.Options) tui.Loader {
	return func(ctx context.Context, onEvaluated func()) (*model.Report, error) {
		records, err := store.GetRecords(ctx, service.RecordFilter{})
		if err != nil {
			return nil, err
		}
		opts.OnEvaluated = onEvaluated
		return report.Build(ctx, records, opts)
	}
}
