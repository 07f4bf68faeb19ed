package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/erpdash/internal/catalog"
	"github.com/Veraticus/erpdash/internal/cli"
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/spf13/cobra"
)

func domainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains [domain]",
		Short: "List status domains and their presentation tables",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDomains,
	}
	return cmd
}

func runDomains(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	domains := catalog.All()
	if len(args) == 1 {
		d, err := catalog.Lookup(args[0])
		if err != nil {
			return err
		}
		domains = []*status.Domain{d}
	}

	for i, d := range domains {
		if i > 0 {
			fmt.Fprintln(out)
		}

		title := d.Name()
		if m, ok := catalog.ModuleOf(d.Name()); ok {
			title += cli.SubtleStyle.Render(" · " + m.Title)
		}
		if d.HasDeriver() {
			title += cli.SubtleStyle.Render(" · derivado")
		}
		fmt.Fprintln(out, cli.BoldStyle.Render(title))

		rows := make([][]string, 0, len(d.Entries()))
		for _, e := range d.Entries() {
			rows = append(rows, []string{
				string(e.Status),
				cli.Badge(status.Display{Label: e.Label, Severity: e.Severity}),
				e.Severity.String(),
			})
		}
		fmt.Fprintln(out, indent(cli.RenderTable([]string{"Status", "Rótulo", "Severidade"}, rows), "  "))
	}
	return nil
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
