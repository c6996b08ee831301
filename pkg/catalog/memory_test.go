package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/catalog"
)

func locale(code string, active, def bool, dir catalog.Direction) catalog.Locale {
	return catalog.Locale{
		Entry:     catalog.Entry{Code: code, IsActive: active, IsDefault: def},
		Direction: dir,
	}
}

func currency(code string, active, def bool, rate string) catalog.Currency {
	return catalog.Currency{
		Entry:        catalog.Entry{Code: code, IsActive: active, IsDefault: def},
		Symbol:       code,
		ExchangeRate: decimal.RequireFromString(rate),
	}
}

func TestMemory_FindActive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := catalog.NewMemory(
		locale("en", true, true, catalog.LTR),
		locale("ar", true, false, catalog.RTL),
		locale("fr", false, false, catalog.LTR),
		locale("pt-BR", true, false, catalog.LTR),
	)

	t.Run("active code", func(t *testing.T) {
		t.Parallel()
		l, err := m.FindActive(ctx, "ar")
		require.NoError(t, err)
		assert.Equal(t, "ar", l.Code)
		assert.True(t, l.IsRTL())
	})

	t.Run("case and separator insensitive", func(t *testing.T) {
		t.Parallel()
		l, err := m.FindActive(ctx, " PT_br ")
		require.NoError(t, err)
		assert.Equal(t, "pt-BR", l.Code)
	})

	t.Run("inactive code is not found", func(t *testing.T) {
		t.Parallel()
		_, err := m.FindActive(ctx, "fr")
		require.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("unknown and empty codes are not found", func(t *testing.T) {
		t.Parallel()
		_, err := m.FindActive(ctx, "xx")
		require.ErrorIs(t, err, catalog.ErrNotFound)
		_, err = m.FindActive(ctx, "")
		require.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestMemory_Default(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("first active default wins", func(t *testing.T) {
		t.Parallel()
		m := catalog.NewMemory(
			currency("GBP", false, true, "0.8"),
			currency("USD", true, true, "1"),
			currency("EUR", true, true, "0.92"),
		)
		c, err := m.Default(ctx)
		require.NoError(t, err)
		assert.Equal(t, "USD", c.Code)
	})

	t.Run("no default flagged", func(t *testing.T) {
		t.Parallel()
		m := catalog.NewMemory(currency("EUR", true, false, "0.92"))
		_, err := m.Default(ctx)
		require.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.NewMemory[catalog.Locale]().Default(ctx)
		require.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestMemory_ListOrderAndIDs(t *testing.T) {
	t.Parallel()

	second := locale("ar", true, false, catalog.RTL)
	second.Position = 2
	first := locale("en", true, true, catalog.LTR)
	first.Position = 1

	m := catalog.NewMemory(second, first)
	list, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "en", list[0].Code)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "ar", list[1].Code)
	assert.Equal(t, int64(2), list[1].ID)

	list[0].Code = "mutated"
	again, err := m.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "en", again[0].Code)
}

func TestFirstActive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	c, err := catalog.FirstActive[catalog.Currency](ctx, catalog.NewMemory(
		currency("GBP", false, false, "0.8"),
		currency("EUR", true, false, "0.92"),
		currency("USD", true, false, "1"),
	))
	require.NoError(t, err)
	assert.Equal(t, "EUR", c.Code)

	_, err = catalog.FirstActive[catalog.Currency](ctx, catalog.NewMemory(currency("GBP", false, false, "0.8")))
	require.ErrorIs(t, err, catalog.ErrNotFound)
}
