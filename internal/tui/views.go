package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/report"
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/Veraticus/erpdash/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// Column widths of the record table.
const (
	idWidth       = 10
	nameWidth     = 28
	badgeWidth    = 22
	amountWidth   = 16
	progressWidth = 10
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderTabs()}

	switch {
	case m.loading && m.report == nil:
		sections = append(sections, m.renderLoading())
	case m.lastError != nil && m.report == nil:
		sections = append(sections, m.theme.StatusError.Render("Erro ao carregar registros: "+m.lastError.Error()))
	case m.report == nil:
		sections = append(sections, m.theme.Subtitle.Render("Nenhum relatório carregado."))
	case m.ActiveModule() == reportsTab:
		sections = append(sections, m.renderModuleSummaries())
	default:
		sections = append(sections, m.renderSummaryLine(), m.renderRows())
	}

	if m.lastError != nil && m.report != nil {
		sections = append(sections, m.theme.StatusError.Render("Falha ao recarregar: "+m.lastError.Error()))
	}
	if m.loading && m.report != nil {
		sections = append(sections, m.renderLoading())
	}

	sections = append(sections, "", m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		label := themes.GetModuleIcon(t.Name) + " " + t.Title
		if i == m.active {
			tabs[i] = m.theme.ActiveTab.Render(label)
		} else {
			tabs[i] = m.theme.InactiveTab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderLoading() string {
	text := "Avaliando registros..."
	if m.evaluated > 0 {
		text = fmt.Sprintf("Avaliando registros... %d", m.evaluated)
	}
	return m.spinner.View() + " " + m.theme.Subtitle.Render(text)
}

func (m Model) summary() (model.ModuleSummary, bool) {
	name := m.ActiveModule()
	for _, s := range m.report.Modules {
		if s.Module == name {
			return s, true
		}
	}
	return model.ModuleSummary{}, false
}

// renderSummaryLine shows the worst severity and per-tier counts of the tab.
func (m Model) renderSummaryLine() string {
	s, ok := m.summary()
	if !ok || s.Total == 0 {
		return m.theme.Subtitle.Render("Nenhum registro neste módulo.")
	}
	return m.summaryText(s)
}

func (m Model) summaryText(s model.ModuleSummary) string {
	worst := m.theme.Badge(status.Display{Label: report.SeverityLabel(s.Worst), Severity: s.Worst})
	parts := []string{
		fmt.Sprintf("%d registros", s.Total),
		"pior: " + worst,
		fmt.Sprintf("críticos %d", s.BySeverity[status.Critical]),
		fmt.Sprintf("atenção %d", s.BySeverity[status.Caution]),
		fmt.Sprintf("positivos %d", s.BySeverity[status.Positive]),
		fmt.Sprintf("neutros %d", s.BySeverity[status.Neutral]),
	}
	if s.Unclassifiable > 0 {
		parts = append(parts, fmt.Sprintf("não classificáveis %d", s.Unclassifiable))
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderRows() string {
	header := m.theme.Bold.Render(
		pad("ID", idWidth) + pad("Nome", nameWidth) + pad("Status", badgeWidth) +
			pad("Valor", amountWidth) + "Progresso")
	lines := []string{header}

	end := min(len(m.rows), m.offset+m.pageSize())
	for i := m.offset; i < end; i++ {
		line := m.renderRow(m.rows[i])
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}

	if len(m.rows) > end-m.offset {
		lines = append(lines, m.theme.Subtitle.Render(
			fmt.Sprintf("%d–%d de %d", m.offset+1, end, len(m.rows))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row model.ReportRow) string {
	badge := m.theme.Badge(status.Display{Label: row.Label, Severity: row.Severity})
	progress := ""
	if row.Progress != "" {
		progress = m.progressBar(row.Percent) + " " + row.Progress
	}
	return pad(row.ID, idWidth) +
		pad(row.Name, nameWidth) +
		pad(badge, badgeWidth) +
		lipgloss.NewStyle().Width(amountWidth-2).Align(lipgloss.Right).Render(row.Amount) + "  " +
		progress
}

func (m Model) progressBar(pct float64) string {
	filled := int(pct / 100 * progressWidth)
	filled = max(0, min(filled, progressWidth))
	return m.theme.ProgressBar.Render(strings.Repeat("█", filled)) +
		m.theme.ProgressEmpty.Render(strings.Repeat("░", progressWidth-filled))
}

// renderModuleSummaries is the reports tab: one line per module.
func (m Model) renderModuleSummaries() string {
	lines := []string{m.theme.Title.Render("Resumo por módulo")}
	for _, s := range m.report.Modules {
		if s.Module == reportsTab {
			continue
		}
		title := pad(themes.GetModuleIcon(s.Module)+" "+s.Title, 16)
		if s.Total == 0 {
			lines = append(lines, title+m.theme.Subtitle.Render("sem registros"))
			continue
		}
		lines = append(lines, title+m.summaryText(s))
	}
	lines = append(lines, "", m.theme.Subtitle.Render(
		fmt.Sprintf("Gerado em %s · execução %s", m.report.GeneratedAt.Format("02/01/2006 15:04"), m.report.RunID)))
	return strings.Join(lines, "\n")
}

// pad truncates or pads s to width display cells.
func pad(s string, width int) string {
	style := lipgloss.NewStyle().Width(width).MaxWidth(width)
	if lipgloss.Width(s) >= width {
		s = truncate(s, width-1)
	}
	return style.Render(s)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
