package main

import (
	"fmt"

	"github.com/Veraticus/erpdash/internal/catalog"
	"github.com/Veraticus/erpdash/internal/cli"
	"github.com/Veraticus/erpdash/internal/common"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/report"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Classify stored records and print their badges",
		Long: `Evaluate every stored record against its status domain and print a table
of badges, amounts and progress, followed by a per-module summary.

Examples:
  erpdash status
  erpdash status --module inventory
  erpdash status --domain payable`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}

	cmd.Flags().StringP("module", "m", "", "only records of this dashboard module")
	cmd.Flags().StringP("domain", "d", "", "only records of this status domain")
	cmd.Flags().BoolP("quiet", "q", false, "hide the progress bar")
	cmd.Flags().Bool("summary", false, "print only the module summary")

	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	module, _ := cmd.Flags().GetString("module")
	domain, _ := cmd.Flags().GetString("domain")
	quiet, _ := cmd.Flags().GetBool("quiet")
	summaryOnly, _ := cmd.Flags().GetBool("summary")

	if module != "" {
		if _, err := catalog.LookupModule(module); err != nil {
			return err
		}
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	records, err := store.GetRecords(ctx, service.RecordFilter{Domain: domain, Module: module})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return common.NewUserError("Nenhum registro encontrado; rode 'erpdash seed' para carregar os dados de demonstração", common.ErrNoRecords)
	}

	rep, err := buildReport(ctx, cmd.ErrOrStderr(), records, settings, quiet)
	if err != nil {
		return err
	}

	if !summaryOnly {
		fmt.Fprintln(out, cli.RenderTable([]string{"ID", "Nome", "Status", "Valor", "Progresso"}, statusRows(rep.Rows)))
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, cli.FormatTitle("Resumo por módulo"))
	fmt.Fprintln(out, cli.RenderTable([]string{"Módulo", "Registros", "Pior", "Críticos", "Atenção", "Não classificáveis"}, summaryRows(rep.Modules)))
	return nil
}

func statusRows(rows []model.ReportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		progress := ""
		if row.Progress != "" {
			progress = cli.ProgressBar(row.Percent, 10) + " " + row.Progress
		}
		out = append(out, []string{
			row.ID,
			row.Name,
			cli.Badge(status.Display{Label: row.Label, Severity: row.Severity}),
			row.Amount,
			progress,
		})
	}
	return out
}

func summaryRows(modules []model.ModuleSummary) [][]string {
	out := make([][]string, 0, len(modules))
	for _, m := range modules {
		if m.Total == 0 {
			continue
		}
		out = append(out, []string{
			m.Title,
			fmt.Sprint(m.Total),
			cli.SeverityStyle(m.Worst).Render(" " + report.SeverityLabel(m.Worst) + " "),
			fmt.Sprint(m.BySeverity[status.Critical]),
			fmt.Sprint(m.BySeverity[status.Caution]),
			fmt.Sprint(m.Unclassifiable),
		})
	}
	return out
}
