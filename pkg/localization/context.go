package localization

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/money"
	"github.com/dmitrymomot/storefront/pkg/preference"
)

// RequestContext is the locale and currency bound to one request.
// It is immutable and safe to share between goroutines serving that request.
type RequestContext struct {
	locale         catalog.Locale
	currency       catalog.Currency
	localeSource   preference.Source
	currencySource preference.Source
}

// NewRequestContext assembles a context from two resolutions.
func NewRequestContext(locale Resolution[catalog.Locale], currency Resolution[catalog.Currency]) *RequestContext {
	return &RequestContext{
		locale:         locale.Entity,
		currency:       currency.Entity,
		localeSource:   locale.Source,
		currencySource: currency.Source,
	}
}

func (rc *RequestContext) Locale() catalog.Locale { return rc.locale }
func (rc *RequestContext) Currency() catalog.Currency { return rc.currency }

// LocaleSource reports which signal decided the locale.
func (rc *RequestContext) LocaleSource() preference.Source { return rc.localeSource }

// CurrencySource reports which signal decided the currency.
func (rc *RequestContext) CurrencySource() preference.Source { return rc.currencySource }

func (rc *RequestContext) IsRightToLeft() bool { return rc.locale.IsRTL() }

// Direction returns "rtl" or "ltr" for the html dir attribute.
func (rc *RequestContext) Direction() catalog.Direction {
	if rc.locale.IsRTL() {
		return catalog.RTL
	}
	return catalog.LTR
}

// FormatPrice formats an amount already expressed in the bound currency.
func (rc *RequestContext) FormatPrice(amount decimal.Decimal) string {
	return money.Format(amount, rc.currency)
}

// ConvertPrice converts amount from the given currency into the bound
// currency, rounded to its decimal places.
func (rc *RequestContext) ConvertPrice(amount decimal.Decimal, from catalog.Currency) (decimal.Decimal, error) {
	v, err := money.Convert(amount, from, rc.currency)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round(v, rc.currency), nil
}

// ContextKey is the context key the bound RequestContext is stored under.
type ContextKey struct{}

// WithContext returns a copy of ctx carrying rc.
func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ContextKey{}, rc)
}

// FromContext returns the request context stored by WithContext.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(ContextKey{}).(*RequestContext)
	return rc, ok && rc != nil
}
