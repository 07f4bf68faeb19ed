// Package tui is the terminal dashboard: one tab per ERP module, each listing
// its records with a severity badge, amount and progress.
package tui

import (
	"context"

	"github.com/Veraticus/erpdash/internal/catalog"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/report"
	"github.com/Veraticus/erpdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// reportsTab is the module whose tab shows the per-module summary.
const reportsTab = "reports"

// Model holds the dashboard state.
type Model struct {
	ctx       context.Context
	lastError error
	report    *model.Report
	loader    Loader
	notify    func(tea.Msg)
	theme     themes.Theme
	keymap    KeyMap
	help      help.Model
	spinner   spinner.Model
	tabs      []catalog.Module
	rows      []model.ReportRow
	active    int
	cursor    int
	offset    int
	evaluated int
	width     int
	height    int
	loading   bool
	quitting  bool
}

// New creates a dashboard model. Run wires it into a program; tests drive it directly.
func New(ctx context.Context, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cfg.Theme.StatusInfo

	m := Model{
		ctx:     ctx,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    h,
		spinner: s,
		loader:  cfg.Loader,
		tabs:    catalog.Modules,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	if cfg.Report != nil {
		m.setReport(cfg.Report)
	} else {
		m.loading = cfg.Loader != nil
	}
	return m
}

// Init starts loading the report when none was given.
func (m Model) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadReport())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()

	case reportLoadedMsg:
		m.loading = false
		m.evaluated = 0
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.setReport(msg.report)

	case progressMsg:
		m.evaluated = max(m.evaluated, msg.evaluated)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.NextTab):
		m.selectTab((m.active + 1) % len(m.tabs))

	case key.Matches(msg, m.keymap.PrevTab):
		m.selectTab((m.active - 1 + len(m.tabs)) % len(m.tabs))

	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keymap.PageUp):
		m.moveCursor(-m.pageSize())

	case key.Matches(msg, m.keymap.PageDown):
		m.moveCursor(m.pageSize())

	case key.Matches(msg, m.keymap.Home):
		m.moveCursor(-len(m.rows))

	case key.Matches(msg, m.keymap.End):
		m.moveCursor(len(m.rows))

	case key.Matches(msg, m.keymap.Refresh):
		if m.loading || m.loader == nil {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadReport())
	}

	return m, nil
}

// ActiveModule returns the module of the selected tab.
func (m Model) ActiveModule() string {
	return m.tabs[m.active].Name
}

// Report returns the report on screen, nil before the first load.
func (m Model) Report() *model.Report {
	return m.report
}

func (m *Model) setReport(rep *model.Report) {
	m.report = rep
	m.selectTab(m.active)
}

func (m *Model) selectTab(i int) {
	m.active = i
	m.cursor = 0
	m.offset = 0
	m.rows = nil
	if m.report != nil && m.tabs[i].Name != reportsTab {
		m.rows = report.Filter(m.report, m.tabs[i].Name)
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// clampCursor keeps the cursor on a row and the row inside the visible window.
func (m *Model) clampCursor() {
	m.cursor = max(0, min(m.cursor, len(m.rows)-1))
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = max(0, m.offset)
}

// pageSize is the number of record rows that fit between the header and help.
func (m Model) pageSize() int {
	// Tabs, summary, table header, blank line, help and border.
	return max(1, m.height-9)
}
