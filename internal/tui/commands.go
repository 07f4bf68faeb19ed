package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// loadTimeout bounds one report build.
const loadTimeout = 30 * time.Second

// loadReport builds the report in the background. Progress is forwarded through
// notify when the model runs inside a program.
func (m Model) loadReport() tea.Cmd {
	loader, notify, parent := m.loader, m.notify, m.ctx
	return func() tea.Msg {
		if loader == nil {
			return reportLoadedMsg{err: fmt.Errorf("no report loader configured")}
		}

		ctx, cancel := context.WithTimeout(parent, loadTimeout)
		defer cancel()

		var evaluated atomic.Int64
		report, err := loader(ctx, func() {
			if notify == nil {
				return
			}
			// The hook may run on several workers.
			notify(progressMsg{evaluated: int(evaluated.Add(1))})
		})
		return reportLoadedMsg{report: report, err: err}
	}
}
