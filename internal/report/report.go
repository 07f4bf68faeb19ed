// Package report evaluates stored records into a classified, formatted snapshot.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Veraticus/erpdash/internal/catalog"
	"github.com/Veraticus/erpdash/internal/format"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/google/uuid"
)

// Options tune Build.
type Options struct {
	Now         func() time.Time
	OnEvaluated func() // Called once per record, possibly concurrently
	Locale      string
	RunID       string
	Workers     int
}

// Build evaluates every record against its domain and formats its numbers.
// Rows keep the order of records. A record whose domain is not declared, or whose
// status cannot be classified, becomes an unclassifiable row rather than an error.
func Build(ctx context.Context, records []model.Record, opts Options) (*model.Report, error) {
	if _, err := format.Lookup(opts.Locale); err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	logger := slog.Default().With("component", "report", "run_id", opts.RunID)

	rows := make([]model.ReportRow, len(records))
	for i, r := range records {
		rows[i] = model.ReportRow{ID: r.ID, Module: r.Module, Domain: r.Domain, Name: r.Name}
		formatNumbers(&rows[i], r, opts.Locale)
	}

	byDomain := make(map[string][]int)
	for i, r := range records {
		byDomain[r.Domain] = append(byDomain[r.Domain], i)
	}
	domains := make([]string, 0, len(byDomain))
	for name := range byDomain {
		domains = append(domains, name)
	}
	sort.Strings(domains)

	hook := func(status.Result) {
		if opts.OnEvaluated != nil {
			opts.OnEvaluated()
		}
	}

	for _, name := range domains {
		idx := byDomain[name]

		d, err := catalog.Lookup(name)
		if err != nil {
			logger.Warn("records of unknown domain", "domain", name, "count", len(idx))
			for _, i := range idx {
				setUnclassifiable(&rows[i], err)
				hook(status.Result{})
			}
			continue
		}

		input := make([]status.Record, len(idx))
		for j, i := range idx {
			input[j] = records[i].StatusRecord()
		}

		results, err := status.EvaluateAll(ctx, d, input,
			status.WithWorkers(opts.Workers),
			status.WithResultHook(hook),
		)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", name, err)
		}

		for j, res := range results {
			row := &rows[idx[j]]
			if !res.Classified() {
				setUnclassifiable(row, res.Err)
				continue
			}
			row.Status = string(res.Status)
			row.Label = res.Display.Label
			row.Severity = res.Display.Severity
		}
	}

	rep := &model.Report{
		GeneratedAt: opts.Now(),
		RunID:       opts.RunID,
		Locale:      opts.Locale,
		Rows:        rows,
		Modules:     Summarize(rows),
	}
	logger.Debug("report built", "rows", len(rows))
	return rep, nil
}

func setUnclassifiable(row *model.ReportRow, err error) {
	row.Status = ""
	row.Label = status.Unclassifiable.Label
	row.Severity = status.Unclassifiable.Severity
	row.Error = err.Error()
}

func formatNumbers(row *model.ReportRow, r model.Record, locale string) {
	if r.Amount.Valid {
		// The locale was validated by Build.
		row.Amount, _ = format.Currency(r.Amount.Decimal, locale)
	}
	if r.Progress != nil {
		// Zero totals have no defined ratio and render empty.
		if s, err := format.Ratio(r.Progress.Done, r.Progress.Total); err == nil {
			row.Progress = s
			row.Percent, _ = format.Progress(r.Progress.Done, r.Progress.Total)
		}
	}
}

// Summarize aggregates rows per module, in dashboard tab order. Modules with no
// rows are included with zero counts; rows of unlisted modules are appended.
func Summarize(rows []model.ReportRow) []model.ModuleSummary {
	index := make(map[string]int, len(catalog.Modules))
	out := make([]model.ModuleSummary, 0, len(catalog.Modules))
	for _, m := range catalog.Modules {
		index[m.Name] = len(out)
		out = append(out, model.ModuleSummary{
			Module:     m.Name,
			Title:      m.Title,
			BySeverity: make(map[status.Severity]int),
		})
	}

	for _, row := range rows {
		i, ok := index[row.Module]
		if !ok {
			index[row.Module] = len(out)
			i = len(out)
			out = append(out, model.ModuleSummary{
				Module:     row.Module,
				Title:      row.Module,
				BySeverity: make(map[status.Severity]int),
			})
		}
		s := &out[i]
		s.Total++
		s.BySeverity[row.Severity]++
		if row.Error != "" {
			s.Unclassifiable++
		}
		s.Worst = status.Worst(s.Worst, row.Severity)
	}
	return out
}

// Filter returns the rows of one module.
func Filter(rep *model.Report, module string) []model.ReportRow {
	var out []model.ReportRow
	for _, row := range rep.Rows {
		if row.Module == module {
			out = append(out, row)
		}
	}
	return out
}

// SeverityLabel names a severity tier in Portuguese.
func SeverityLabel(s status.Severity) string {
	switch s {
	case status.Critical:
		return "Crítico"
	case status.Caution:
		return "Atenção"
	case status.Positive:
		return "Positivo"
	default:
		return "Neutro"
	}
}
