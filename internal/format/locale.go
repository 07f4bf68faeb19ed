// Package format renders money, ratios and progress values for display.
package format

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Format errors.
var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrUnsupportedLocale = errors.New("unsupported locale")
	ErrInvalidNumber     = errors.New("invalid number")
)

// DefaultLocale is the locale of the dashboard.
const DefaultLocale = "pt-BR"

// Locale describes how a locale writes numbers and its currency.
type Locale struct {
	Currency     currency.Unit
	Symbol       string
	Group        string
	Decimal      string
	SymbolFirst  bool
	SymbolSpaced bool
}

// MinorUnits returns the number of decimal places of the locale's currency.
func (l Locale) MinorUnits() int32 {
	scale, _ := currency.Standard.Rounding(l.Currency)
	return int32(scale)
}

var locales = map[string]Locale{
	"pt-BR": {Currency: currency.BRL, Symbol: "R$", Group: ".", Decimal: ",", SymbolFirst: true, SymbolSpaced: true},
	"en-US": {Currency: currency.USD, Symbol: "$", Group: ",", Decimal: ".", SymbolFirst: true},
	"en-GB": {Currency: currency.GBP, Symbol: "£", Group: ",", Decimal: ".", SymbolFirst: true},
	"de-DE": {Currency: currency.EUR, Symbol: "€", Group: ".", Decimal: ",", SymbolSpaced: true},
	"ja-JP": {Currency: currency.JPY, Symbol: "¥", Group: ",", Decimal: ".", SymbolFirst: true},
}

// Lookup resolves a BCP 47 locale string. A bare language resolves to its most
// likely region, so "pt" is pt-BR and "de" is de-DE.
func Lookup(locale string) (Locale, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, locale, err)
	}
	base, _ := tag.Base()
	region, _ := tag.Region()
	key := base.String() + "-" + region.String()

	loc, ok := locales[key]
	if !ok {
		return Locale{}, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}
	return loc, nil
}

// Supported lists the supported locale identifiers.
func Supported() []string {
	out := make([]string, 0, len(locales))
	for k := range locales {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
