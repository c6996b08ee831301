package localization_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/localization"
	"github.com/dmitrymomot/storefront/pkg/preference"
)

func newBinder(t *testing.T, opts ...localization.Option) *localization.Binder {
	t.Helper()
	cfg := localization.DefaultConfig()
	profiles := preference.NewMemoryProfiles()
	return localization.NewBinder(
		preference.NewStore(preference.WithProfiles(profiles)),
		localization.NewLocaleResolver(catalog.NewMemory(en, ar, fr), cfg.FallbackLocale(), opts...),
		localization.NewCurrencyResolver(catalog.NewMemory(usd, eur), cfg.FallbackCurrency(), opts...),
		opts...,
	)
}

func TestBinder_Bind(t *testing.T) {
	t.Parallel()

	t.Run("no signals binds defaults", func(t *testing.T) {
		t.Parallel()
		rc := newBinder(t).Bind(newRequest())
		assert.Equal(t, "en", rc.Locale().Code)
		assert.Equal(t, "USD", rc.Currency().Code)
		assert.False(t, rc.IsRightToLeft())
		assert.Equal(t, catalog.LTR, rc.Direction())
	})

	t.Run("unrecognized accept-language binds defaults", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.headers["Accept-Language"] = "de-DE,de;q=0.9"
		rc := newBinder(t).Bind(req)
		assert.Equal(t, "en", rc.Locale().Code)
		assert.Equal(t, "USD", rc.Currency().Code)
	})

	t.Run("query override selects rtl locale", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.query["lang"] = "ar"
		rc := newBinder(t).Bind(req)
		assert.Equal(t, "ar", rc.Locale().Code)
		assert.True(t, rc.IsRightToLeft())
		assert.Equal(t, preference.SourceQuery, rc.LocaleSource())
	})

	t.Run("cookie selects rtl locale", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.cookies["locale"] = "ar"
		rc := newBinder(t).Bind(req)
		assert.Equal(t, "ar", rc.Locale().Code)
		assert.Equal(t, catalog.RTL, rc.Direction())
	})

	t.Run("unknown override equals absent override", func(t *testing.T) {
		t.Parallel()
		b := newBinder(t)

		with := newRequest()
		with.query["lang"] = "xx"
		with.headers["Accept-Language"] = "ar-EG"
		without := newRequest()
		without.headers["Accept-Language"] = "ar-EG"

		got, want := b.Bind(with), b.Bind(without)
		assert.Equal(t, want.Locale(), got.Locale())
		assert.Equal(t, want.LocaleSource(), got.LocaleSource())
		assert.Equal(t, want.Currency(), got.Currency())
	})

	t.Run("inactive override is never bound", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.query["lang"] = "fr"
		rc := newBinder(t).Bind(req)
		assert.Equal(t, "en", rc.Locale().Code)
		assert.True(t, rc.Locale().IsActive)
	})
}

func TestBinder_Persistence(t *testing.T) {
	t.Parallel()

	t.Run("writes resolved codes to a new session", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.query["currency"] = "EUR"
		newBinder(t).Bind(req)

		require.NotNil(t, req.sess)
		assert.Equal(t, "en", req.sess["locale"])
		assert.Equal(t, "EUR", req.sess["currency"])
		assert.Equal(t, int64(2), req.sess["currency_id"])
	})

	t.Run("second request reproduces the result from the session", func(t *testing.T) {
		t.Parallel()
		b := newBinder(t)

		first := newRequest()
		first.query["lang"] = "ar"
		first.query["currency"] = "EUR"
		rc1 := b.Bind(first)

		second := first.next()
		rc2 := b.Bind(second)
		assert.Equal(t, rc1.Locale(), rc2.Locale())
		assert.Equal(t, rc1.Currency(), rc2.Currency())
		assert.Equal(t, preference.SourceSession, rc2.LocaleSource())
		assert.Equal(t, preference.SourceSession, rc2.CurrencySource())
	})

	t.Run("binding twice yields identical contexts", func(t *testing.T) {
		t.Parallel()
		b := newBinder(t)
		req := newRequest()
		req.query["lang"] = "ar"

		rc1 := b.Bind(req)
		rc2 := b.Bind(req)
		assert.Equal(t, rc1.Locale(), rc2.Locale())
		assert.Equal(t, rc1.Currency(), rc2.Currency())
		assert.Equal(t, preference.SourceQuery, rc2.LocaleSource())
	})

	t.Run("write failure does not change the result", func(t *testing.T) {
		t.Parallel()
		reg := prometheus.NewRegistry()
		b := newBinder(t, localization.WithMetrics(localization.NewMetrics(reg)))

		req := newRequest()
		req.query["lang"] = "ar"
		req.sess = map[string]any{}
		req.setErr = errors.New("redis: connection refused")

		rc := b.Bind(req)
		assert.Equal(t, "ar", rc.Locale().Code)
		assert.Equal(t, "USD", rc.Currency().Code)

		n, err := testutil.GatherAndCount(reg, "storefront_localization_persist_failures_total")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("profile is read but not written on passive resolution", func(t *testing.T) {
		t.Parallel()
		preferred := "ar"
		profiles := preference.NewMemoryProfiles(preference.Profile{UserID: "u1", PreferredLocale: &preferred})
		cfg := localization.DefaultConfig()
		b := localization.NewBinder(
			preference.NewStore(preference.WithProfiles(profiles)),
			localization.NewLocaleResolver(catalog.NewMemory(en, ar), cfg.FallbackLocale()),
			localization.NewCurrencyResolver(catalog.NewMemory(usd), cfg.FallbackCurrency()),
		)

		req := newRequest()
		req.userID = "u1"
		req.query["lang"] = "en"
		rc := b.Bind(req)
		assert.Equal(t, "en", rc.Locale().Code)

		p, err := profiles.Profile(context.Background(), "u1")
		require.NoError(t, err)
		require.NotNil(t, p.PreferredLocale)
		assert.Equal(t, "ar", *p.PreferredLocale)
	})
}
