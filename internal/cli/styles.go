// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/erpdash/internal/status"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (ERP blue).
	PrimaryColor = lipgloss.Color("#3B82F6")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#22C55E") // Green
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#EAB308") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#EF4444") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#93C5FD") // Light blue
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#6B7280") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// ProgressStyle is used for the filled part of progress bars.
	ProgressStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	// BadgeStyle is the base style of status badges.
	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)
)

// Badge colors, one per severity tier.
var severityColors = map[status.Severity]lipgloss.Color{
	status.Neutral:  SubtleColor,
	status.Positive: SuccessColor,
	status.Caution:  WarningColor,
	status.Critical: ErrorColor,
}

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	ERPIcon     = "🏭"
	ChartIcon   = "📊"
	FolderIcon  = "🗄️"
	CheckIcon   = "✅"
)

// SeverityColor returns the color for a severity. Unknown values render neutral.
func SeverityColor(s status.Severity) lipgloss.Color {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return SubtleColor
}

// SeverityStyle returns the badge style for a severity.
func SeverityStyle(s status.Severity) lipgloss.Style {
	return BadgeStyle.Foreground(lipgloss.Color("#FFFFFF")).Background(SeverityColor(s))
}

// Badge renders a display status. The color comes from the severity only.
func Badge(d status.Display) string {
	return SeverityStyle(d.Severity).Render(d.Label)
}

// ProgressBar renders a bar of width cells filled to pct percent, clamped to [0, 100].
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = max(0, min(pct, 100))
	filled := int(pct / 100 * float64(width))
	return ProgressStyle.Render(strings.Repeat("█", filled)) +
		SubtleStyle.Render(strings.Repeat("░", width-filled))
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the factory icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(ERPIcon + " " + title)
}

// FormatCount formats "label: n" with the count in bold.
func FormatCount(label string, n int) string {
	return fmt.Sprintf("%s: %s", label, BoldStyle.Render(fmt.Sprint(n)))
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// RenderTable lays out rows as padded columns under a bold header.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	lines := []string{render(headers, BoldStyle)}
	for _, row := range rows {
		lines = append(lines, render(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

// StyleTitle formats text as a title.
func StyleTitle(text string) string {
	return TitleStyle.Render(text)
}

// StyleSuccess formats text as success message.
func StyleSuccess(text string) string {
	return SuccessStyle.Render(text)
}

// StyleWarning formats text as warning message.
func StyleWarning(text string) string {
	return WarningStyle.Render(text)
}

// StyleError formats text as error message.
func StyleError(text string) string {
	return ErrorStyle.Render(text)
}

// StyleInfo formats text as info message.
func StyleInfo(text string) string {
	return InfoStyle.Render(text)
}
