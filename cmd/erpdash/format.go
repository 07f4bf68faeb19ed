package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/erpdash/internal/cli"
	"github.com/Veraticus/erpdash/internal/config"
	"github.com/Veraticus/erpdash/internal/format"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func formatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format numbers the way the dashboard shows them",
		Long: `Format currency amounts, ratios and progress values.

Examples:
  erpdash format currency 1234.5
  erpdash format currency 85000 --direction outflow
  erpdash format currency 1234.5 --locale en-US
  erpdash format ratio 45 100
  erpdash format progress 45 100
  erpdash format change -- -3.2`,
	}

	cmd.AddCommand(formatCurrencyCmd())
	cmd.AddCommand(formatRatioCmd())
	cmd.AddCommand(formatProgressCmd())
	cmd.AddCommand(formatChangeCmd())

	return cmd
}

func formatCurrencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency <amount>",
		Short: "Format an amount in the locale's currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", format.ErrInvalidNumber, args[0])
			}
			locale := viper.GetString(config.KeyLocale)

			dirName, _ := cmd.Flags().GetString("direction")
			var out string
			switch strings.ToLower(dirName) {
			case "":
				out, err = format.Currency(amount, locale)
			case "inflow", "in":
				out, err = format.SignedCurrency(amount, format.Inflow, locale)
			case "outflow", "out":
				out, err = format.SignedCurrency(amount, format.Outflow, locale)
			default:
				return fmt.Errorf("invalid --direction %q: expected inflow or outflow", dirName)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("direction", "", "prefix the amount with the sign of a cash movement (inflow, outflow)")
	return cmd
}

func formatRatioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ratio <current> <total>",
		Short: "Format current/total as a whole percentage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, total, err := parsePair(args)
			if err != nil {
				return err
			}
			out, err := format.Ratio(current, total)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func formatProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <current> <total>",
		Short: "Draw a progress bar for current/total",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, total, err := parsePair(args)
			if err != nil {
				return err
			}
			pct, err := format.Progress(current, total)
			if err != nil {
				return err
			}
			width, _ := cmd.Flags().GetInt("width")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				cli.ProgressBar(pct, width),
				strconv.FormatFloat(pct, 'f', -1, 64)+"%")
			return nil
		},
	}

	cmd.Flags().Int("width", 20, "bar width in cells")
	return cmd
}

func formatChangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change <percent>",
		Short: "Format a signed percentage change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: %q", format.ErrInvalidNumber, args[0])
			}
			out, err := format.Change(pct, viper.GetString(config.KeyLocale))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func parsePair(args []string) (float64, float64, error) {
	current, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", format.ErrInvalidNumber, args[0])
	}
	total, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", format.ErrInvalidNumber, args[1])
	}
	return current, total, nil
}
