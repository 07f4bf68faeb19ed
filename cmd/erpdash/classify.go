package main

import (
	"fmt"

	"github.com/Veraticus/erpdash/internal/catalog"
	"github.com/Veraticus/erpdash/internal/cli"
	"github.com/Veraticus/erpdash/internal/common"
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one record and show its badge",
		Long: `Classify a single record of a domain: its raw status, optionally overridden
by stock levels or days past due, becomes a canonical status with a label and severity.

Examples:
  erpdash classify --domain stock --status active --level 5 --min 15
  erpdash classify --domain payable --status pending --days-past-due 3
  erpdash classify --domain machine --status Operating`,
		Args: cobra.NoArgs,
		RunE: runClassify,
	}

	cmd.Flags().StringP("domain", "d", "", "status domain (see 'erpdash domains')")
	cmd.Flags().StringP("status", "s", "", "raw status as stored")
	cmd.Flags().Int("level", 0, "current stock level")
	cmd.Flags().Int("min", 0, "minimum stock level")
	cmd.Flags().Int("max", 0, "maximum stock level")
	cmd.Flags().Int("days-past-due", 0, "days past the due date (negative = days until due)")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("domain")
	raw, _ := cmd.Flags().GetString("status")

	d, err := catalog.Lookup(name)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Domínio desconhecido %q; veja 'erpdash domains'", name), err)
	}

	rec := status.Record{RawStatus: raw}
	if cmd.Flags().Changed("level") {
		level, _ := cmd.Flags().GetInt("level")
		minLevel, _ := cmd.Flags().GetInt("min")
		maxLevel, _ := cmd.Flags().GetInt("max")
		rec.Stock = &status.StockLevel{Current: level, Min: minLevel, Max: maxLevel}
	}
	if cmd.Flags().Changed("days-past-due") {
		days, _ := cmd.Flags().GetInt("days-past-due")
		rec.DaysPastDue = &days
	}

	canonical, display, err := status.Evaluate(d, rec)
	if err != nil {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s\n", cli.Badge(status.Unclassifiable), cli.SubtleStyle.Render(err.Error()))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
		cli.Badge(display),
		cli.BoldStyle.Render(canonical.String()),
		cli.SubtleStyle.Render(display.Severity.String()))
	return nil
}
