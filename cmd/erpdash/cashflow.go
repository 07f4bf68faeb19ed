package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/Veraticus/erpdash/internal/cli"
	"github.com/Veraticus/erpdash/internal/common"
	"github.com/Veraticus/erpdash/internal/format"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// beginning is the default start of the cash flow window.
var beginning = time.Unix(0, 0).UTC()

func cashflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cashflow",
		Aliases: []string{"flow"},
		Short:   "Show cash movements with their running balance",
		Long: `Show the cash movements of a date range, oldest first, each with the running
balance after it, followed by totals per category.

The balance starts from cashflow.opening_balance plus every movement dated
before --start.

Examples:
  erpdash cashflow
  erpdash cashflow --start 2024-01-15 --end 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: runCashFlow,
	}

	cmd.Flags().String("start", "", "first day (YYYY-MM-DD, default: all history)")
	cmd.Flags().String("end", "", "last day (YYYY-MM-DD, default: today)")
	cmd.Flags().Bool("summary", false, "print only the totals")

	return cmd
}

func runCashFlow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	summaryOnly, _ := cmd.Flags().GetBool("summary")

	start, end, err := dateRange(cmd, func(time.Time) time.Time { return beginning })
	if err != nil {
		return err
	}
	end = endOfDay(end)

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	locale := settings.Locale

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	opening := settings.OpeningBalance
	if start.After(beginning) {
		before, err := store.GetCashFlowSummary(ctx, beginning, start.Add(-time.Nanosecond))
		if err != nil {
			return err
		}
		opening = opening.Add(before.Net)
	}

	entries, err := store.GetCashFlow(ctx, start, end)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return common.NewUserError("Nenhum movimento de caixa no período", common.ErrNoEntries)
	}
	closing := model.ApplyRunningBalance(opening, entries)

	summary, err := store.GetCashFlowSummary(ctx, start, end)
	if err != nil {
		return err
	}

	if !summaryOnly {
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			amount, err := format.SignedCurrency(e.Amount, e.Direction, locale)
			if err != nil {
				return err
			}
			balance, err := signedBalance(e.Balance.Decimal, locale)
			if err != nil {
				return err
			}
			if e.Direction == format.Outflow {
				amount = cli.StyleError(amount)
			} else {
				amount = cli.StyleSuccess(amount)
			}
			rows = append(rows, []string{e.Date.Format("02/01/2006"), e.Description, e.Category, amount, balance})
		}
		fmt.Fprintln(out, cli.RenderTable([]string{"Data", "Descrição", "Categoria", "Valor", "Saldo"}, rows))
		fmt.Fprintln(out)
	}

	return printCashFlowSummary(cmd, summary, opening, closing, locale)
}

func printCashFlowSummary(cmd *cobra.Command, summary *service.CashFlowSummary, opening, closing decimal.Decimal, locale string) error {
	out := cmd.OutOrStdout()

	money := func(d decimal.Decimal) string {
		s, err := signedBalance(d, locale)
		if err != nil {
			return d.String()
		}
		return s
	}

	cats := make([]string, 0, len(summary.ByCategory))
	for c := range summary.ByCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		cs := summary.ByCategory[c]
		rows = append(rows, []string{c, fmt.Sprint(cs.Count), money(cs.Amount)})
	}

	inflow, err := format.SignedCurrency(summary.Inflow, format.Inflow, locale)
	if err != nil {
		return err
	}
	outflow, err := format.SignedCurrency(summary.Outflow, format.Outflow, locale)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatTitle("Resumo do caixa"))
	fmt.Fprintln(out, cli.RenderTable([]string{"Categoria", "Movimentos", "Total"}, rows))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Saldo inicial: %s\n", money(opening))
	fmt.Fprintf(out, "Entradas:      %s\n", cli.StyleSuccess(inflow))
	fmt.Fprintf(out, "Saídas:        %s\n", cli.StyleError(outflow))
	fmt.Fprintf(out, "Líquido:       %s\n", money(summary.Net))
	fmt.Fprintf(out, "Saldo final:   %s\n", cli.BoldStyle.Render(money(closing)))
	return nil
}

// signedBalance renders a balance with a minus sign only when negative.
func signedBalance(d decimal.Decimal, locale string) (string, error) {
	s, err := format.Currency(d, locale)
	if err != nil {
		return "", err
	}
	if d.IsNegative() {
		return "-" + s, nil
	}
	return s, nil
}

func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Nanosecond)
}
