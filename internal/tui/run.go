package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	m := New(ctx, opts...)
	if m.loader == nil && m.report == nil {
		return fmt.Errorf("dashboard needs a report or a loader")
	}

	var p *tea.Program
	m.notify = func(msg tea.Msg) { p.Send(msg) }
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
