package tui

import "github.com/Veraticus/erpdash/internal/model"

// reportLoadedMsg carries a freshly built report or the error that prevented it.
type reportLoadedMsg struct {
	err    error
	report *model.Report
}

// progressMsg reports how many records the loader has evaluated.
type progressMsg struct {
	evaluated int
}
