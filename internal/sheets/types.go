package sheets

import (
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/report"
	"github.com/Veraticus/erpdash/internal/status"
)

// SheetTitle is the tab every export writes to.
const SheetTitle = "Painel"

// Column layout of the record detail section.
var detailHeader = []any{"Módulo", "Domínio", "ID", "Nome", "Status", "Rótulo", "Severidade", "Valor", "Progresso", "Erro"}

// Column layout of the module summary section.
var summaryHeader = []any{"Módulo", "Registros", "Pior severidade", "Crítico", "Atenção", "Positivo", "Neutro", "Não classificáveis"}

const (
	summarySeverityCol = 2
	detailSeverityCol  = 6
)

// SeverityCell locates a cell whose background reflects a severity.
type SeverityCell struct {
	Row      int
	Col      int
	Severity status.Severity
}

// Table is a report laid out as spreadsheet rows, plus the positions the
// writer formats.
type Table struct {
	Rows       [][]any
	Sections   []int // Section title rows
	Headers    []int // Column header rows
	Severities []SeverityCell
}

// Width returns the number of columns of the widest row.
func (t Table) Width() int {
	w := 0
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// NewTable lays out a report: a title row, a per-module summary, then one row
// per evaluated record. Empty cells are written as "" so every value is a
// plain string or integer.
func NewTable(rep *model.Report) Table {
	var t Table
	add := func(row ...any) int {
		t.Rows = append(t.Rows, row)
		return len(t.Rows) - 1
	}

	add("Painel ERP", rep.GeneratedAt.Format("2006-01-02 15:04"), rep.RunID)
	add()

	t.Sections = append(t.Sections, add("Resumo por módulo"))
	t.Headers = append(t.Headers, add(summaryHeader...))
	for _, m := range rep.Modules {
		row := add(
			m.Title,
			m.Total,
			report.SeverityLabel(m.Worst),
			m.BySeverity[status.Critical],
			m.BySeverity[status.Caution],
			m.BySeverity[status.Positive],
			m.BySeverity[status.Neutral],
			m.Unclassifiable,
		)
		if m.Total > 0 {
			t.Severities = append(t.Severities, SeverityCell{Row: row, Col: summarySeverityCol, Severity: m.Worst})
		}
	}
	add()

	t.Sections = append(t.Sections, add("Registros"))
	t.Headers = append(t.Headers, add(detailHeader...))
	for _, r := range rep.Rows {
		row := add(r.Module, r.Domain, r.ID, r.Name, r.Status, r.Label, report.SeverityLabel(r.Severity), r.Amount, r.Progress, r.Error)
		t.Severities = append(t.Severities, SeverityCell{Row: row, Col: detailSeverityCol, Severity: r.Severity})
	}

	return t
}

// Values returns the rows of the report layout.
func Values(rep *model.Report) [][]any {
	return NewTable(rep).Rows
}
