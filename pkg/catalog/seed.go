package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Seed is an administered catalog loaded from YAML.
type Seed struct {
	Locales    []Locale
	Currencies []Currency
}

type seedFile struct {
	Locales []struct {
		Code      string `yaml:"code"`
		Name      string `yaml:"name"`
		Direction string `yaml:"direction"`
		Active    *bool  `yaml:"active"`
		Default   bool   `yaml:"default"`
	} `yaml:"locales"`
	Currencies []struct {
		Code              string  `yaml:"code"`
		Name              string  `yaml:"name"`
		Symbol            string  `yaml:"symbol"`
		SymbolPosition    string  `yaml:"symbol_position"`
		ThousandSeparator *string `yaml:"thousand_separator"`
		DecimalSeparator  *string `yaml:"decimal_separator"`
		DecimalPlaces     *int32  `yaml:"decimal_places"`
		ExchangeRate      string  `yaml:"exchange_rate"`
		Active            *bool   `yaml:"active"`
		Default           bool    `yaml:"default"`
	} `yaml:"currencies"`
}

// LoadSeedFile reads a YAML catalog from path.
func LoadSeedFile(path string) (Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("catalog: open seed: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed parses and validates a YAML catalog:
//
//	locales:
//	  - {code: en, name: English, default: true}
//	  - {code: ar, name: العربية, direction: rtl}
//	currencies:
//	  - {code: USD, symbol: $, default: true}
//	  - {code: EUR, symbol: €, symbol_position: after, thousand_separator: ".", decimal_separator: ",", exchange_rate: "0.92"}
//
// Entities are active unless "active: false" is given. Positions follow file
// order. Locale codes must be valid BCP 47 tags and currency codes ISO 4217;
// decimal places default to the ISO minor unit of the currency.
func LoadSeed(r io.Reader) (Seed, error) {
	var raw seedFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Seed{}, errors.Join(ErrInvalidSeed, err)
	}

	var seed Seed
	seen := make(map[string]bool)
	for i, l := range raw.Locales {
		if _, err := language.Parse(l.Code); err != nil {
			return Seed{}, fmt.Errorf("%w: %q: %w", ErrInvalidLocaleCode, l.Code, err)
		}
		code := NormalizeLocaleCode(l.Code)
		if seen["l:"+code] {
			return Seed{}, fmt.Errorf("%w: locale %q", ErrDuplicateCode, code)
		}
		seen["l:"+code] = true

		dir := LTR
		switch Direction(l.Direction) {
		case "", LTR:
		case RTL:
			dir = RTL
		default:
			return Seed{}, fmt.Errorf("%w: locale %q: direction %q", ErrInvalidSeed, code, l.Direction)
		}

		seed.Locales = append(seed.Locales, Locale{
			Entry: Entry{
				Code:      code,
				Name:      l.Name,
				Position:  i,
				IsActive:  l.Active == nil || *l.Active,
				IsDefault: l.Default,
			},
			Direction: dir,
		})
	}

	for i, c := range raw.Currencies {
		unit, err := currency.ParseISO(c.Code)
		if err != nil {
			return Seed{}, fmt.Errorf("%w: %q: %w", ErrInvalidCurrencyCode, c.Code, err)
		}
		code := unit.String()
		if seen["c:"+code] {
			return Seed{}, fmt.Errorf("%w: currency %q", ErrDuplicateCode, code)
		}
		seen["c:"+code] = true

		rate := decimal.NewFromInt(1)
		if c.ExchangeRate != "" {
			if rate, err = decimal.NewFromString(c.ExchangeRate); err != nil || !rate.IsPositive() {
				return Seed{}, fmt.Errorf("%w: currency %q: %q", ErrInvalidRate, code, c.ExchangeRate)
			}
		}

		format := Format{
			SymbolPosition:    SymbolBefore,
			ThousandSeparator: ",",
			DecimalSeparator:  ".",
			DecimalPlaces:     isoPlaces(unit),
		}
		switch SymbolPosition(c.SymbolPosition) {
		case "", SymbolBefore:
		case SymbolAfter:
			format.SymbolPosition = SymbolAfter
		default:
			return Seed{}, fmt.Errorf("%w: currency %q: symbol position %q", ErrInvalidSeed, code, c.SymbolPosition)
		}
		if c.ThousandSeparator != nil {
			format.ThousandSeparator = *c.ThousandSeparator
		}
		if c.DecimalSeparator != nil {
			format.DecimalSeparator = *c.DecimalSeparator
		}
		if c.DecimalPlaces != nil {
			format.DecimalPlaces = *c.DecimalPlaces
		}

		symbol := c.Symbol
		if symbol == "" {
			symbol = code
		}

		seed.Currencies = append(seed.Currencies, Currency{
			Entry: Entry{
				Code:      code,
				Name:      c.Name,
				Position:  i,
				IsActive:  c.Active == nil || *c.Active,
				IsDefault: c.Default,
			},
			Symbol:       symbol,
			Format:       format,
			ExchangeRate: rate,
		})
	}

	return seed, nil
}

// isoPlaces returns the standard number of minor-unit digits of a currency.
func isoPlaces(unit currency.Unit) int32 {
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}
