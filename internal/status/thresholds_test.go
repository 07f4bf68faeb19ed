package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEfficiencyBands(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want Severity
	}{
		{name: "high efficiency", pct: 92, want: Positive},
		{name: "boundary 80", pct: 80, want: Positive},
		{name: "just below 80", pct: 79.9, want: Caution},
		{name: "boundary 60", pct: 60, want: Caution},
		{name: "idle machine", pct: 0, want: Critical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EfficiencyBands.Severity(tt.pct))
		})
	}
}

func TestNewBands_Invalid(t *testing.T) {
	_, err := NewBands(Severity(10))
	assert.ErrorIs(t, err, ErrInvalidSeverity)

	_, err = NewBands(Neutral, Band{Min: 10, Severity: Severity(-2)})
	assert.ErrorIs(t, err, ErrInvalidSeverity)

	_, err = NewBands(Neutral, Band{Min: 10, Severity: Positive}, Band{Min: 10, Severity: Caution})
	assert.Error(t, err)

	assert.Panics(t, func() { MustBands(Severity(10)) })
}

func TestNewBands_UnsortedInput(t *testing.T) {
	b := MustBands(Neutral, Band{Min: 50, Severity: Caution}, Band{Min: 90, Severity: Critical})
	assert.Equal(t, Neutral, b.Severity(10))
	assert.Equal(t, Caution, b.Severity(75))
	assert.Equal(t, Critical, b.Severity(95))
}

func TestTrendSeverity(t *testing.T) {
	assert.Equal(t, Positive, TrendSeverity(12.5, false))
	assert.Equal(t, Critical, TrendSeverity(-5.2, false))
	assert.Equal(t, Neutral, TrendSeverity(0, false))
	assert.Equal(t, Positive, TrendSeverity(-0.5, true))
	assert.Equal(t, Critical, TrendSeverity(1.2, true))
}
