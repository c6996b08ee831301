package localization

import (
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/preference"
)

// Binder resolves the request context and persists the outcome.
type Binder struct {
	store      *preference.Store
	locales    *LocaleResolver
	currencies *CurrencyResolver
	options
}

// NewBinder wires the preference store to both resolvers.
func NewBinder(store *preference.Store, locales *LocaleResolver, currencies *CurrencyResolver, opts ...Option) *Binder {
	return &Binder{
		store:      store,
		locales:    locales,
		currencies: currencies,
		options:    newOptions(opts),
	}
}

// Bind resolves the locale and currency for req and writes both to the
// session. Write failures are logged and do not change the result.
func (b *Binder) Bind(req preference.Request) *RequestContext {
	ctx := req.Context()
	signals := b.store.ReadAll(req)

	locale := b.locales.Resolve(ctx, signals.Locale)
	currency := b.currencies.Resolve(ctx, signals.Currency)

	b.persist(req, preference.KindLocale, locale.Entity.Code, locale.Entity.ID)
	b.persist(req, preference.KindCurrency, currency.Entity.Code, currency.Entity.ID)

	return NewRequestContext(locale, currency)
}

// Store returns the preference store used by the binder.
func (b *Binder) Store() *preference.Store { return b.store }

// Locales returns the locale resolver.
func (b *Binder) Locales() *LocaleResolver { return b.locales }

// Currencies returns the currency resolver.
func (b *Binder) Currencies() *CurrencyResolver { return b.currencies }

func (b *Binder) persist(req preference.Request, kind preference.Kind, code string, id int64) {
	err := b.store.Write(req, kind, code, id)
	if err == nil {
		return
	}
	b.metrics.persistFailed(kind, "session")
	b.logger.WarnContext(req.Context(), "failed to persist resolved preference",
		slog.String("kind", string(kind)),
		slog.String("code", code),
		slog.Any("error", err),
	)
}
