package status

import (
	"fmt"
	"strings"
)

// Severity is the coarse visual-urgency bucket of a display status.
// Values are ordered: Neutral < Positive < Caution < Critical.
type Severity int

// Severity tiers.
const (
	Neutral Severity = iota
	Positive
	Caution
	Critical
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case Neutral:
		return "neutral"
	case Positive:
		return "positive"
	case Caution:
		return "caution"
	case Critical:
		return "critical"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Valid reports whether s is one of the four declared tiers.
func (s Severity) Valid() bool {
	return s >= Neutral && s <= Critical
}

// ParseSeverity parses a severity name, case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neutral":
		return Neutral, nil
	case "positive":
		return Positive, nil
	case "caution":
		return Caution, nil
	case "critical":
		return Critical, nil
	default:
		return Neutral, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeverity, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Worst returns the most urgent severity in the list, or Neutral when empty.
func Worst(severities ...Severity) Severity {
	worst := Neutral
	for _, s := range severities {
		if s > worst {
			worst = s
		}
	}
	return worst
}
