package localization_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/session"
)

var (
	en = catalog.Locale{Entry: catalog.Entry{ID: 1, Code: "en", IsActive: true, IsDefault: true}, Direction: catalog.LTR}
	ar = catalog.Locale{Entry: catalog.Entry{ID: 2, Code: "ar", IsActive: true}, Direction: catalog.RTL}
	fr = catalog.Locale{Entry: catalog.Entry{ID: 3, Code: "fr", IsActive: false}, Direction: catalog.LTR}

	usd = catalog.Currency{
		Entry:  catalog.Entry{ID: 1, Code: "USD", IsActive: true, IsDefault: true},
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
		Entry:  catalog.Entry{ID: 2, Code: "EUR", IsActive: true},
		Symbol: "€",
		Format: catalog.Format{
			SymbolPosition:    catalog.SymbolAfter,
			ThousandSeparator: ".",
			DecimalSeparator:  ",",
			DecimalPlaces:     2,
		},
		ExchangeRate: decimal.RequireFromString("0.92"),
	}
)

func nonDefault(c catalog.Currency) catalog.Currency {
	c.IsDefault = false
	return c
}

// failingLookup fails every call with err.
type failingLookup[E catalog.Entity] struct{ err error }

func (f failingLookup[E]) FindActive(context.Context, string) (E, error) {
	var zero E
	return zero, f.err
}

func (f failingLookup[E]) Default(context.Context) (E, error) {
	var zero E
	return zero, f.err
}

func (f failingLookup[E]) List(context.Context) ([]E, error) { return nil, f.err }

var errCatalogDown = errors.New("catalog down")

// fakeRequest implements preference.Request.
type fakeRequest struct {
	query   map[string]string
	cookies map[string]string
	headers map[string]string
	userID  string
	sess    map[string]any
	setErr  error
}

func newRequest() *fakeRequest {
	return &fakeRequest{
		query:   map[string]string{},
		cookies: map[string]string{},
		headers: map[string]string{},
	}
}

// next returns a request carrying only this request's session, like a
// follow-up page view without query parameters.
func (r *fakeRequest) next() *fakeRequest {
	n := newRequest()
	n.userID = r.userID
	n.sess = r.sess
	return n
}

func (r *fakeRequest) Context() context.Context { return context.Background() }
func (r *fakeRequest) Query(name string) string { return r.query[name] }
func (r *fakeRequest) Header(name string) string { return r.headers[name] }
func (r *fakeRequest) UserID() string { return r.userID }

func (r *fakeRequest) Cookie(name string) (string, error) {
	if v, ok := r.cookies[name]; ok {
		return v, nil
	}
	return "", http.ErrNoCookie
}

func (r *fakeRequest) SessionValue(key string) (any, error) {
	if r.sess == nil {
		return nil, session.ErrNotFound
	}
	return r.sess[key], nil
}

func (r *fakeRequest) SetSessionValue(key string, val any) error {
	if r.setErr != nil {
		return r.setErr
	}
	if r.sess == nil {
		return session.ErrNotFound
	}
	r.sess[key] = val
	return nil
}

func (r *fakeRequest) InitSession() error {
	if r.sess == nil {
		r.sess = map[string]any{}
	}
	return nil
}
