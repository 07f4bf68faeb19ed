package sheets

import (
	"testing"
	"time"

	"github.com/Veraticus/erpdash/internal/catalog"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/report"
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *model.Report {
	rows := []model.ReportRow{
		{ID: "PRD-001", Module: "inventory", Domain: catalog.DomainStock, Name: "Monitor", Status: "in_stock", Label: "Em Estoque", Severity: status.Positive, Amount: "R$ 890,00", Progress: "45%"},
		{ID: "PRD-004", Module: "inventory", Domain: catalog.DomainStock, Name: "Smartphone", Status: "out_of_stock", Label: "Sem Estoque", Severity: status.Critical, Amount: "R$ 2.100,00", Progress: "0%"},
		{ID: "X-1", Module: "production", Domain: "warehouse", Name: "Doca", Label: status.Unclassifiable.Label, Severity: status.Unclassifiable.Severity, Error: "unknown domain"},
	}
	return &model.Report{
		GeneratedAt: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		RunID:       "run-1",
		Locale:      "pt-BR",
		Rows:        rows,
		Modules:     report.Summarize(rows),
	}
}

func TestNewTable_Layout(t *testing.T) {
	rep := sampleReport()
	table := NewTable(rep)

	assert.Equal(t, []any{"Painel ERP", "2024-01-15 09:30", "run-1"}, table.Rows[0])
	require.Len(t, table.Sections, 2)
	require.Len(t, table.Headers, 2)

	assert.Equal(t, []any{"Resumo por módulo"}, table.Rows[table.Sections[0]])
	assert.Equal(t, summaryHeader, table.Rows[table.Headers[0]])
	assert.Equal(t, []any{"Registros"}, table.Rows[table.Sections[1]])
	assert.Equal(t, detailHeader, table.Rows[table.Headers[1]])

	// One summary row per module, then a spacer before the details.
	firstModule := table.Headers[0] + 1
	assert.Equal(t, table.Sections[1], firstModule+len(rep.Modules)+1)

	inventory := table.Rows[firstModule+2]
	assert.Equal(t, []any{"Estoque", 2, "Crítico", 1, 0, 1, 0, 0}, inventory)

	details := table.Rows[table.Headers[1]+1:]
	require.Len(t, details, len(rep.Rows))
	assert.Equal(t, []any{"inventory", "stock", "PRD-004", "Smartphone", "out_of_stock", "Sem Estoque", "Crítico", "R$ 2.100,00", "0%", ""}, details[1])
	assert.Equal(t, "unknown domain", details[2][9])

	assert.Equal(t, len(detailHeader), table.Width())
}

func TestNewTable_SeverityCells(t *testing.T) {
	table := NewTable(sampleReport())

	var summaryCells, detailCells int
	for _, cell := range table.Severities {
		switch cell.Col {
		case summarySeverityCol:
			summaryCells++
		case detailSeverityCol:
			detailCells++
		}
		assert.Equal(t, report.SeverityLabel(cell.Severity), table.Rows[cell.Row][cell.Col])
	}

	// Only modules with rows are coloured.
	assert.Equal(t, 2, summaryCells)
	assert.Equal(t, 3, detailCells)
}

func TestValues_EmptyReport(t *testing.T) {
	rep := &model.Report{RunID: "empty", Modules: report.Summarize(nil)}

	values := Values(rep)
	last := values[len(values)-1]
	assert.Equal(t, detailHeader, last)
}
