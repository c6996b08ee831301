package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Direction is the text direction of a locale.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// SymbolPosition places the currency symbol relative to the amount.
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// Entry holds the attributes shared by every catalog entity.
type Entry struct {
	Code      string `json:"code" yaml:"code"`
	Name      string `json:"name,omitempty" yaml:"name"`
	ID        int64  `json:"id" yaml:"id"`
	Position  int    `json:"position" yaml:"position"`
	IsActive  bool   `json:"is_active" yaml:"is_active"`
	IsDefault bool   `json:"is_default" yaml:"is_default"`
}

func (e Entry) entry() Entry { return e }

// Entity is implemented by Locale and Currency.
type Entity interface {
	entry() Entry
}

// Locale is a language identity with its text direction.
type Locale struct {
	Entry     `yaml:",inline"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// IsRTL reports whether the locale is written right to left.
func (l Locale) IsRTL() bool {
	return l.Direction == RTL
}

// Format is the rule set used to render amounts of a currency.
type Format struct {
	SymbolPosition    SymbolPosition `json:"symbol_position"`
	ThousandSeparator string         `json:"thousand_separator"`
	DecimalSeparator  string         `json:"decimal_separator"`
	DecimalPlaces     int32          `json:"decimal_places"`
}

// Currency is a priced currency with its formatting rules and its exchange
// rate relative to the store's base currency.
type Currency struct {
	Entry        `yaml:",inline"`
	Symbol       string          `json:"symbol"`
	Format       Format          `json:"format"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// NormalizeLocaleCode trims and lower-cases a locale code and converts
// underscores to dashes, so "pt_BR" and "PT-br" both become "pt-br".
func NormalizeLocaleCode(code string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
}

// NormalizeCurrencyCode trims and upper-cases a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
