package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Direction is the sign of a cash movement, chosen by the caller.
type Direction int

// Directions.
const (
	Inflow Direction = iota
	Outflow
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Inflow:
		return "inflow"
	case Outflow:
		return "outflow"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// Prefix returns "+" for inflows and "-" for outflows.
func (d Direction) Prefix() string {
	if d == Outflow {
		return "-"
	}
	return "+"
}

// Currency renders the absolute value of an amount in the locale's currency,
// rounded half away from zero to the currency's minor unit.
func Currency(value decimal.Decimal, locale string) (string, error) {
	loc, err := Lookup(locale)
	if err != nil {
		return "", err
	}
	scale := loc.MinorUnits()
	number := groupDigits(value.Abs().Round(scale).StringFixed(scale), loc)

	switch {
	case loc.SymbolFirst && loc.SymbolSpaced:
		return loc.Symbol + " " + number, nil
	case loc.SymbolFirst:
		return loc.Symbol + number, nil
	case loc.SymbolSpaced:
		return number + " " + loc.Symbol, nil
	default:
		return number + loc.Symbol, nil
	}
}

// CurrencyFloat is Currency for float64 amounts.
func CurrencyFloat(value float64, locale string) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidNumber, value)
	}
	return Currency(decimal.NewFromFloat(value), locale)
}

// SignedCurrency renders an amount with the sign of its direction, e.g. "+R$ 15.430,00".
func SignedCurrency(value decimal.Decimal, dir Direction, locale string) (string, error) {
	s, err := Currency(value, locale)
	if err != nil {
		return "", err
	}
	return dir.Prefix() + s, nil
}

// Integer renders a whole number with the locale's digit grouping, e.g. "1.247".
func Integer(n int64, locale string) (string, error) {
	loc, err := Lookup(locale)
	if err != nil {
		return "", err
	}
	return groupDigits(strconv.FormatInt(n, 10), loc), nil
}

// Ratio renders round(current / total * 100) as a percentage, e.g. "25%".
// A zero total is undefined progress, not 0%, and fails with ErrDivisionByZero.
func Ratio(current, total float64) (string, error) {
	pct, err := percent(current, total)
	if err != nil {
		return "", err
	}
	rounded := math.Round(pct)
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return strconv.FormatFloat(rounded, 'f', 0, 64) + "%", nil
}

// Progress returns current / total * 100 clamped to [0, 100] for bar widths.
func Progress(current, total float64) (float64, error) {
	pct, err := percent(current, total)
	if err != nil {
		return 0, err
	}
	return math.Max(0, math.Min(100, pct)), nil
}

// Change renders a signed percentage change with one decimal, e.g. "+5,2%".
func Change(pct float64, locale string) (string, error) {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidNumber, pct)
	}
	loc, err := Lookup(locale)
	if err != nil {
		return "", err
	}
	d := decimal.NewFromFloat(pct).Round(1)
	sign := "+"
	if d.IsNegative() {
		sign = "-"
	} else if d.IsZero() {
		sign = ""
	}
	return sign + groupDigits(d.Abs().StringFixed(1), loc) + "%", nil
}

func percent(current, total float64) (float64, error) {
	for _, v := range []float64{current, total} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, v)
		}
	}
	if total == 0 {
		return 0, ErrDivisionByZero
	}
	return current / total * 100, nil
}

// groupDigits rewrites a plain "1234.50" into the locale's separators.
func groupDigits(plain string, loc Locale) string {
	neg := strings.HasPrefix(plain, "-")
	plain = strings.TrimPrefix(plain, "-")

	intPart, fracPart, hasFrac := strings.Cut(plain, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(loc.Group)
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteString(loc.Decimal)
		b.WriteString(fracPart)
	}
	return b.String()
}
