package localization_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/localization"
	"github.com/dmitrymomot/storefront/pkg/money"
	"github.com/dmitrymomot/storefront/pkg/preference"
)

func TestRequestContext(t *testing.T) {
	t.Parallel()

	rc := localization.NewRequestContext(
		localization.Resolution[catalog.Locale]{Entity: ar, Source: preference.SourceCookie},
		localization.Resolution[catalog.Currency]{Entity: eur, Source: preference.SourceSession},
	)

	t.Run("accessors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ar, rc.Locale())
		assert.Equal(t, eur, rc.Currency())
		assert.Equal(t, preference.SourceCookie, rc.LocaleSource())
		assert.Equal(t, preference.SourceSession, rc.CurrencySource())
		assert.True(t, rc.IsRightToLeft())
		assert.Equal(t, catalog.RTL, rc.Direction())
	})

	t.Run("format price uses bound currency rules", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.234,50 €", rc.FormatPrice(decimal.RequireFromString("1234.5")))
	})

	t.Run("convert price into bound currency", func(t *testing.T) {
		t.Parallel()
		got, err := rc.ConvertPrice(decimal.RequireFromString("100"), usd)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("92").Equal(got), got.String())
		assert.Equal(t, "92,00 €", rc.FormatPrice(got))
	})

	t.Run("convert round trip stays within one unit", func(t *testing.T) {
		t.Parallel()
		amount := decimal.RequireFromString("19.99")
		inEUR, err := rc.ConvertPrice(amount, usd)
		require.NoError(t, err)

		back := localization.NewRequestContext(
			localization.Resolution[catalog.Locale]{Entity: en},
			localization.Resolution[catalog.Currency]{Entity: usd},
		)
		inUSD, err := back.ConvertPrice(inEUR, eur)
		require.NoError(t, err)
		assert.True(t, inUSD.Sub(amount).Abs().LessThanOrEqual(decimal.New(1, -2)), inUSD.String())
	})

	t.Run("invalid rate", func(t *testing.T) {
		t.Parallel()
		broken := usd
		broken.ExchangeRate = decimal.Zero
		_, err := rc.ConvertPrice(decimal.NewFromInt(1), broken)
		assert.ErrorIs(t, err, money.ErrInvalidRate)
	})
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	_, ok := localization.FromContext(context.Background())
	assert.False(t, ok)

	rc := localization.NewRequestContext(
		localization.Resolution[catalog.Locale]{Entity: en},
		localization.Resolution[catalog.Currency]{Entity: usd},
	)
	got, ok := localization.FromContext(localization.WithContext(context.Background(), rc))
	require.True(t, ok)
	assert.Same(t, rc, got)
}

func TestCatalogCheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ok := localization.CatalogCheck(catalog.NewMemory(en), catalog.NewMemory(usd))
	require.NoError(t, ok(ctx))

	inactive := eur
	inactive.IsActive = false
	empty := localization.CatalogCheck(catalog.NewMemory(en), catalog.NewMemory(inactive))
	require.ErrorIs(t, empty(ctx), localization.ErrEmptyCatalog)
}
