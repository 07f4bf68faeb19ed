package status

import (
	"fmt"
	"sort"
)

// Band assigns a severity to values at or above Min.
type Band struct {
	Min      float64
	Severity Severity
}

// Bands maps a percentage to a severity. The band with the highest Min not
// above the value wins; values below every band get Floor.
type Bands struct {
	bands []Band
	floor Severity
}

// NewBands validates and sorts the bands.
func NewBands(floor Severity, bands ...Band) (Bands, error) {
	if !floor.Valid() {
		return Bands{}, fmt.Errorf("%w: floor %d", ErrInvalidSeverity, int(floor))
	}
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min > sorted[j].Min })
	for i, b := range sorted {
		if !b.Severity.Valid() {
			return Bands{}, fmt.Errorf("%w: band %.2f", ErrInvalidSeverity, b.Min)
		}
		if i > 0 && sorted[i-1].Min == b.Min {
			return Bands{}, fmt.Errorf("duplicate band threshold %.2f", b.Min)
		}
	}
	return Bands{bands: sorted, floor: floor}, nil
}

// MustBands is like NewBands but panics on invalid input.
func MustBands(floor Severity, bands ...Band) Bands {
	b, err := NewBands(floor, bands...)
	if err != nil {
		panic(err)
	}
	return b
}

// Severity returns the severity for pct.
func (b Bands) Severity(pct float64) Severity {
	for _, band := range b.bands {
		if pct >= band.Min {
			return band.Severity
		}
	}
	return b.floor
}

// EfficiencyBands is the machine-efficiency colouring: 80%+ is healthy,
// 60%+ needs attention, anything lower is critical.
var EfficiencyBands = MustBands(Critical,
	Band{Min: 80, Severity: Positive},
	Band{Min: 60, Severity: Caution},
)

// TrendSeverity colours a KPI change: growth is positive, decline critical,
// no change neutral. invert flips the meaning for metrics where lower is better
// (absenteeism, turnover, average lead time).
func TrendSeverity(change float64, invert bool) Severity {
	switch {
	case change == 0:
		return Neutral
	case (change > 0) != invert:
		return Positive
	default:
		return Critical
	}
}
