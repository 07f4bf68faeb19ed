package themes

import (
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	ProgressBar   lipgloss.Style
	ProgressEmpty lipgloss.Style
	Selected      lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	BadgeBase     lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	BorderedBox   lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

// SeverityColor returns the badge color for a severity tier.
func (t Theme) SeverityColor(s status.Severity) lipgloss.Color {
	switch s {
	case status.Positive:
		return t.Success
	case status.Caution:
		return t.Warning
	case status.Critical:
		return t.Error
	default:
		return t.Muted
	}
}

// Badge renders a display status. The color comes from the severity only.
func (t Theme) Badge(d status.Display) string {
	return t.BadgeBase.Background(t.SeverityColor(d.Severity)).Render(d.Label)
}

func newTheme(primary, success, warning, errc, info, fg, border, muted, subtle lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Success:    success,
		Warning:    warning,
		Error:      errc,
		Info:       info,
		Foreground: fg,
		Border:     border,
		Muted:      muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Subtitle: lipgloss.NewStyle().
			Foreground(subtle),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(border).
			Foreground(fg).
			Bold(true),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			Background(primary).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		BadgeBase: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		ProgressBar: lipgloss.NewStyle().
			Foreground(primary),
		ProgressEmpty: lipgloss.NewStyle().
			Foreground(border),
		StatusError: lipgloss.NewStyle().
			Foreground(errc).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(info).
			Bold(true),
	}
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#2563eb"), // primary
	lipgloss.Color("#10b981"), // success
	lipgloss.Color("#f59e0b"), // warning
	lipgloss.Color("#ef4444"), // error
	lipgloss.Color("#3b82f6"), // info
	lipgloss.Color("#fafafa"), // foreground
	lipgloss.Color("#404040"), // border
	lipgloss.Color("#737373"), // muted
	lipgloss.Color("#a3a3a3"), // subtitle
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#89b4fa"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#89dceb"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#a6adc8"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// ModuleIcons maps dashboard modules to tab icons.
var ModuleIcons = map[string]string{
	"dashboard":  "🏠",
	"sales":      "🛒",
	"inventory":  "📦",
	"purchases":  "🚚",
	"financial":  "💰",
	"hr":         "👥",
	"production": "🏭",
	"reports":    "📊",
}

// GetModuleIcon returns the icon for a module.
func GetModuleIcon(module string) string {
	if icon, ok := ModuleIcons[module]; ok {
		return icon
	}
	return "📁"
}
