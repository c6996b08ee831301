package localization

import (
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/catalog"
)

// Config is the static fallback used when the catalogs cannot supply an entity.
type Config struct {
	DefaultLocale          string `env:"DEFAULT_LOCALE" envDefault:"en"`
	DefaultLocaleDirection string `env:"DEFAULT_LOCALE_DIRECTION" envDefault:"ltr"`

	DefaultCurrency   string `env:"DEFAULT_CURRENCY" envDefault:"USD"`
	CurrencySymbol    string `env:"DEFAULT_CURRENCY_SYMBOL" envDefault:"$"`
	SymbolPosition    string `env:"DEFAULT_CURRENCY_SYMBOL_POSITION" envDefault:"before"`
	ThousandSeparator string `env:"DEFAULT_CURRENCY_THOUSAND_SEPARATOR" envDefault:","`
	DecimalSeparator  string `env:"DEFAULT_CURRENCY_DECIMAL_SEPARATOR" envDefault:"."`
	DecimalPlaces     int32  `env:"DEFAULT_CURRENCY_DECIMAL_PLACES" envDefault:"2"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		DefaultLocale:          "en",
		DefaultLocaleDirection: string(catalog.LTR),
		DefaultCurrency:        "USD",
		CurrencySymbol:         "$",
		SymbolPosition:         string(catalog.SymbolBefore),
		ThousandSeparator:      ",",
		DecimalSeparator:       ".",
		DecimalPlaces:          2,
	}
}

// FallbackLocale builds the configured locale. Resolvers prefer the catalog
// entry with the same code and use this value only when there is none.
func (c Config) FallbackLocale() catalog.Locale {
	dir := catalog.LTR
	if catalog.Direction(c.DefaultLocaleDirection) == catalog.RTL {
		dir = catalog.RTL
	}
	return catalog.Locale{
		Entry: catalog.Entry{
			Code:      catalog.NormalizeLocaleCode(c.DefaultLocale),
			IsActive:  true,
			IsDefault: true,
		},
		Direction: dir,
	}
}

// FallbackCurrency builds the configured currency with an exchange rate of 1.
func (c Config) FallbackCurrency() catalog.Currency {
	pos := catalog.SymbolBefore
	if catalog.SymbolPosition(c.SymbolPosition) == catalog.SymbolAfter {
		pos = catalog.SymbolAfter
	}
	return catalog.Currency{
		Entry: catalog.Entry{
			Code:      catalog.NormalizeCurrencyCode(c.DefaultCurrency),
			IsActive:  true,
			IsDefault: true,
		},
		Symbol: c.CurrencySymbol,
		Format: catalog.Format{
			SymbolPosition:    pos,
			ThousandSeparator: c.ThousandSeparator,
			DecimalSeparator:  c.DecimalSeparator,
			DecimalPlaces:     max(c.DecimalPlaces, 0),
		},
		ExchangeRate: decimal.NewFromInt(1),
	}
}
