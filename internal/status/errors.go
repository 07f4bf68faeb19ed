// Package status derives canonical statuses from ERP records and maps them to
// display statuses (label and severity tier).
//
// A Domain is a declarative description of one family of records: its closed set
// of canonical statuses, the label/severity table for each of them, optional
// aliases for legacy raw codes and an optional deriver that computes the status
// from auxiliary numeric fields. Tables are checked for exhaustiveness when the
// domain is built, so a broken table fails at start-up rather than at render time.
package status

import (
	"errors"
	"fmt"
)

// Status errors.
var (
	// ErrUnknownStatus is returned when a raw or canonical status does not belong
	// to the domain's enumeration and no auxiliary override resolves it.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrIncompleteTable is returned when a domain's presentation table is invalid.
	ErrIncompleteTable = errors.New("incomplete status table")

	// ErrInvalidSeverity is returned for severities outside the declared tiers.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrNilDomain is returned when a nil domain is passed to an operation.
	ErrNilDomain = errors.New("domain cannot be nil")
)

// UnknownStatusError carries the offending status and its domain.
type UnknownStatusError struct {
	Domain string
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("%s %q in domain %s", ErrUnknownStatus, e.Status, e.Domain)
}

// Is matches ErrUnknownStatus.
func (e *UnknownStatusError) Is(target error) bool {
	return target == ErrUnknownStatus
}

// TableError describes why a domain table could not be built.
type TableError struct {
	Domain string
	Reason string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("%s for domain %s: %s", ErrIncompleteTable, e.Domain, e.Reason)
}

// Is matches ErrIncompleteTable.
func (e *TableError) Is(target error) bool {
	return target == ErrIncompleteTable
}
