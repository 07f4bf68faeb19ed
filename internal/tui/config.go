package tui

import (
	"context"

	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/tui/themes"
)

// Loader builds the report shown by the dashboard. onEvaluated is called once
// per evaluated record and may be called concurrently.
type Loader func(ctx context.Context, onEvaluated func()) (*model.Report, error)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Loader   Loader
	Report   *model.Report
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  100,
		Height: 30,
	}
}

// WithLoader sets the function that builds (and rebuilds) the report.
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.Loader = loader
	}
}

// WithReport starts the dashboard on an already built report.
func WithReport(report *model.Report) Option {
	return func(c *Config) {
		c.Report = report
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp starts with the full help expanded.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
