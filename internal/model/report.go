package model

import (
	"time"

	"github.com/Veraticus/erpdash/internal/status"
)

// ReportRow is one evaluated record as it appears in an exported report.
type ReportRow struct {
	ID       string
	Module   string
	Domain   string
	Name     string
	Status   string // Canonical status, empty when unclassifiable
	Label    string
	Amount   string // Formatted, empty when the record carries no amount
	Progress string // Formatted ratio, empty when the record carries no progress
	Error    string
	Percent  float64 // Bar fill in [0, 100]; meaningful only when Progress is set
	Severity status.Severity
}

// ModuleSummary aggregates the rows of one module.
type ModuleSummary struct {
	BySeverity     map[status.Severity]int
	Module         string
	Title          string
	Total          int
	Unclassifiable int
	Worst          status.Severity
}

// Report is a classified snapshot of the stored records.
type Report struct {
	GeneratedAt time.Time
	RunID       string
	Locale      string
	Modules     []ModuleSummary
	Rows        []ReportRow
}
