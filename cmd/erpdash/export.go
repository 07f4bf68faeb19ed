package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/erpdash/internal/cli"
	"github.com/Veraticus/erpdash/internal/common"
	"github.com/Veraticus/erpdash/internal/config"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/Veraticus/erpdash/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newReportWriter is swapped in tests.
var newReportWriter = func(ctx context.Context, v *viper.Viper) (service.ReportWriter, error) {
	cfg, err := config.LoadSheetsConfig(v)
	if err != nil {
		return nil, err
	}
	return sheets.NewWriter(ctx, *cfg, common.Component("sheets"))
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish the status report outside the terminal",
	}

	cmd.AddCommand(exportSheetsCmd())
	return cmd
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write the status report to a Google spreadsheet",
		Long: `Evaluate the stored records and replace the dashboard tab of the configured
Google spreadsheet with the result, one colour-coded row per record.

Run 'erpdash auth sheets' first, or set sheets.service_account_path.`,
		Args: cobra.NoArgs,
		RunE: runExportSheets,
	}

	cmd.Flags().StringP("module", "m", "", "only records of this dashboard module")
	cmd.Flags().BoolP("quiet", "q", false, "hide the progress bar")
	return cmd
}

func runExportSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	module, _ := cmd.Flags().GetString("module")
	quiet, _ := cmd.Flags().GetBool("quiet")

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	writer, err := newReportWriter(ctx, viper.GetViper())
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	records, err := store.GetRecords(ctx, service.RecordFilter{Module: module})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return common.NewUserError("Nenhum registro para exportar; rode 'erpdash seed' primeiro", common.ErrNoRecords)
	}

	rep, err := buildReport(ctx, cmd.ErrOrStderr(), records, settings, quiet)
	if err != nil {
		return err
	}

	if err := writer.Write(ctx, rep); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	slog.Info("Exported report", "run_id", rep.RunID, "rows", len(rep.Rows))
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d registros exportados para o Google Sheets", len(rep.Rows))))
	return nil
}
