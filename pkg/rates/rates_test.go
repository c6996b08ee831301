package rates_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/rates"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("same base", func(t *testing.T) {
		t.Parallel()
		got, err := rates.Parse([]byte(`{"base":"USD","rates":{"EUR":0.92,"gbp":"0.79"}}`), "rates", "base", "USD")
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("0.92").Equal(got["EUR"]))
		assert.True(t, decimal.RequireFromString("0.79").Equal(got["GBP"]))
		assert.True(t, decimal.NewFromInt(1).Equal(got["USD"]))
	})

	t.Run("rebases onto catalog currency", func(t *testing.T) {
		t.Parallel()
		got, err := rates.Parse([]byte(`{"base":"EUR","data":{"rates":{"USD":2,"GBP":1.5}}}`), "data.rates", "base", "USD")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1).Equal(got["USD"]))
		assert.True(t, decimal.RequireFromString("0.5").Equal(got["EUR"]), got["EUR"].String())
		assert.True(t, decimal.RequireFromString("0.75").Equal(got["GBP"]), got["GBP"].String())
	})

	t.Run("missing base", func(t *testing.T) {
		t.Parallel()
		_, err := rates.Parse([]byte(`{"base":"EUR","rates":{"GBP":0.85}}`), "rates", "base", "USD")
		require.ErrorIs(t, err, rates.ErrMissingBase)
	})

	t.Run("invalid documents", func(t *testing.T) {
		t.Parallel()
		for _, body := range []string{`{`, `{"rates":[1,2]}`, `{"rates":{"EUR":"n/a"}}`, `{"rates":{"EUR":0}}`, `{"rates":{"EUR":true}}`, `{"rates":{"EUR":null}}`, `{"rates":{"EUR":{"v":1}}}`} {
			_, err := rates.Parse([]byte(body), "rates", "base", "USD")
			require.ErrorIs(t, err, rates.ErrInvalidFeed, body)
		}
	})
}

type memWriter struct {
	got map[string]decimal.Decimal
	n   int64
	err error
}

func (w *memWriter) WriteRates(_ context.Context, r map[string]decimal.Decimal) (int64, error) {
	w.got = r
	return w.n, w.err
}

type countInvalidator struct{ calls int }

func (c *countInvalidator) Invalidate(context.Context) error {
	c.calls++
	return nil
}

func TestRefresher(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.91}}`))
	}))
	t.Cleanup(srv.Close)

	cfg := rates.Config{Path: "rates", BasePath: "base", Schedule: "@hourly"}

	t.Run("writes and invalidates", func(t *testing.T) {
		t.Parallel()
		w := &memWriter{n: 2}
		inv := &countInvalidator{}
		r := rates.NewRefresher(cfg, "USD", rates.NewHTTPSource(srv.Client(), srv.URL+"/latest"), w, rates.WithInvalidator(inv))

		assert.Equal(t, "refresh_exchange_rates", r.Name())
		assert.Equal(t, "@hourly", r.Schedule())
		require.NoError(t, r.Handle(context.Background()))
		assert.True(t, decimal.RequireFromString("0.91").Equal(w.got["EUR"]))
		assert.Equal(t, 1, inv.calls)
	})

	t.Run("no changes skip invalidation", func(t *testing.T) {
		t.Parallel()
		inv := &countInvalidator{}
		r := rates.NewRefresher(cfg, "USD", rates.NewHTTPSource(srv.Client(), srv.URL+"/latest"), &memWriter{}, rates.WithInvalidator(inv))
		require.NoError(t, r.Handle(context.Background()))
		assert.Zero(t, inv.calls)
	})

	t.Run("feed errors", func(t *testing.T) {
		t.Parallel()
		r := rates.NewRefresher(cfg, "USD", rates.NewHTTPSource(srv.Client(), srv.URL+"/missing"), &memWriter{})
		require.ErrorIs(t, r.Handle(context.Background()), rates.ErrFeedStatus)
	})

	t.Run("write errors", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("deadlock detected")
		r := rates.NewRefresher(cfg, "USD", rates.NewHTTPSource(srv.Client(), srv.URL+"/latest"), &memWriter{err: boom})
		require.ErrorIs(t, r.Handle(context.Background()), boom)
	})
}
