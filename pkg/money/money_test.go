package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/money"
)

var (
	usd = catalog.Currency{
		Entry:  catalog.Entry{Code: "USD", IsActive: true, IsDefault: true},
		Symbol: "$",
		Format: catalog.Format{
			SymbolPosition:    catalog.SymbolBefore,
			ThousandSeparator: ",",
			DecimalSeparator:  ".",
			DecimalPlaces:     2,
		},
		ExchangeRate: decimal.NewFromInt(1),
	}
	eur = catalog.Currency{
		Entry:  catalog.Entry{Code: "EUR", IsActive: true},
		Symbol: "€",
		Format: catalog.Format{
			SymbolPosition:    catalog.SymbolAfter,
			ThousandSeparator: ".",
			DecimalSeparator:  ",",
			DecimalPlaces:     2,
		},
		ExchangeRate: decimal.RequireFromString("0.92"),
	}
	jpy = catalog.Currency{
		Entry:  catalog.Entry{Code: "JPY", IsActive: true},
		Symbol: "¥",
		Format: catalog.Format{
			SymbolPosition:    catalog.SymbolBefore,
			ThousandSeparator: ",",
			DecimalPlaces:     0,
		},
		ExchangeRate: decimal.RequireFromString("151.5"),
	}
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   string
		currency catalog.Currency
		want     string
	}{
		{"small", "5", usd, "$5.00"},
		{"grouping", "1234.5", usd, "$1,234.50"},
		{"millions", "1234567.891", usd, "$1,234,567.89"},
		{"rounds half away from zero", "0.005", usd, "$0.01"},
		{"negative", "-1234.5", usd, "-$1,234.50"},
		{"symbol after", "1234.5", eur, "1.234,50 €"},
		{"exact thousand", "1000", eur, "1.000,00 €"},
		{"no decimals", "1234567.5", jpy, "¥1,234,568"},
		{"zero", "0", jpy, "¥0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, money.Format(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestFormat_NoSymbolOrSeparator(t *testing.T) {
	t.Parallel()

	c := usd
	c.Symbol = ""
	c.Format.ThousandSeparator = ""
	assert.Equal(t, "1234567.00", money.Format(decimal.NewFromInt(1234567), c))
}

func TestConvert(t *testing.T) {
	t.Parallel()

	t.Run("through base rate", func(t *testing.T) {
		t.Parallel()
		got, err := money.Convert(decimal.NewFromInt(100), usd, eur)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(92)), got.String())

		got, err = money.Convert(decimal.NewFromInt(92), eur, jpy)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("15150")), got.String())
	})

	t.Run("same currency", func(t *testing.T) {
		t.Parallel()
		got, err := money.Convert(decimal.RequireFromString("1.234"), eur, eur)
		require.NoError(t, err)
		assert.Equal(t, "1.234", got.String())
	})

	t.Run("non positive rate", func(t *testing.T) {
		t.Parallel()
		broken := eur
		broken.ExchangeRate = decimal.Zero
		_, err := money.Convert(decimal.NewFromInt(1), usd, broken)
		require.ErrorIs(t, err, money.ErrInvalidRate)
		_, err = money.Convert(decimal.NewFromInt(1), broken, usd)
		require.ErrorIs(t, err, money.ErrInvalidRate)
	})
}

func TestConvert_RoundTrip(t *testing.T) {
	t.Parallel()

	unit := decimal.New(1, -usd.Format.DecimalPlaces)
	for _, raw := range []string{"0.01", "1", "19.99", "123.45", "9999.99", "100000"} {
		amount := decimal.RequireFromString(raw)

		inEUR, err := money.Convert(amount, usd, eur)
		require.NoError(t, err)
		inEUR = money.Round(inEUR, eur)

		formatted := money.Format(inEUR, eur)
		assert.Contains(t, formatted, " €")
		assert.Contains(t, formatted, ",")

		back, err := money.Convert(inEUR, eur, usd)
		require.NoError(t, err)
		assert.True(t, back.Sub(amount).Abs().LessThanOrEqual(unit), "%s -> %s -> %s", amount, inEUR, back)
	}
}
