package localization

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/preference"
)

// Resolution is the outcome of resolving one kind for a request.
type Resolution[E catalog.Entity] struct {
	Entity E
	// Source is the signal source that won, or SourceDefault for
	// catalog defaults and configured fallbacks.
	Source preference.Source
}

// Option configures resolvers and the Binder.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *Metrics
}

// WithLogger sets the logger for fallbacks and persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics enables resolution counters.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func newOptions(opts []Option) options {
	o := options{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resolver holds the steps shared by both kinds.
type resolver[E catalog.Entity] struct {
	kind    preference.Kind
	lookup  catalog.Lookup[E]
	options
}

// firstValid returns the first signal that names an active entity.
func (r *resolver[E]) firstValid(ctx context.Context, signals []preference.Signal) (Resolution[E], bool) {
	for _, sig := range signals {
		e, err := r.lookup.FindActive(ctx, sig.Code)
		if err == nil {
			return Resolution[E]{Entity: e, Source: sig.Source}, true
		}

		if errors.Is(err, catalog.ErrNotFound) {
			r.metrics.fellBack(r.kind, ReasonUnknownCandidate)
			r.logger.DebugContext(ctx, "ignoring unknown candidate",
				slog.String("kind", string(r.kind)),
				slog.String("source", sig.Source.String()),
				slog.String("code", sig.Code),
			)
			continue
		}

		r.metrics.fellBack(r.kind, ReasonLookupError)
		r.logger.WarnContext(ctx, "catalog lookup failed",
			slog.String("kind", string(r.kind)),
			slog.String("code", sig.Code),
			slog.Any("error", err),
		)
	}
	return Resolution[E]{}, false
}

// catalogDefault returns the entity flagged default.
func (r *resolver[E]) catalogDefault(ctx context.Context) (Resolution[E], bool) {
	e, err := r.lookup.Default(ctx)
	if err == nil {
		return Resolution[E]{Entity: e, Source: preference.SourceDefault}, true
	}

	if errors.Is(err, catalog.ErrNotFound) {
		r.metrics.fellBack(r.kind, ReasonNoDefault)
	} else {
		r.metrics.fellBack(r.kind, ReasonLookupError)
		r.logger.WarnContext(ctx, "catalog default lookup failed",
			slog.String("kind", string(r.kind)),
			slog.Any("error", err),
		)
	}
	return Resolution[E]{}, false
}

// configured returns the catalog entity matching the fallback code when it
// is active. Otherwise it returns the static fallback, reporting an empty
// catalog only when no active entity exists at all.
func (r *resolver[E]) configured(ctx context.Context, fallback E, code string) Resolution[E] {
	e, err := r.lookup.FindActive(ctx, code)
	if err == nil {
		return Resolution[E]{Entity: e, Source: preference.SourceDefault}
	}

	if _, ferr := catalog.FirstActive(ctx, r.lookup); ferr == nil {
		r.metrics.fellBack(r.kind, ReasonUnverifiedFallback)
		r.logger.WarnContext(ctx, "configured fallback is not an active catalog entity",
			slog.String("kind", string(r.kind)),
			slog.String("code", code),
		)
	} else {
		r.metrics.fellBack(r.kind, ReasonEmptyCatalog)
		r.logger.ErrorContext(ctx, "no usable catalog entity, using configured fallback",
			slog.String("kind", string(r.kind)),
			slog.String("code", code),
		)
	}
	return Resolution[E]{Entity: fallback, Source: preference.SourceDefault}
}

func (r *resolver[E]) done(ctx context.Context, res Resolution[E], code string) Resolution[E] {
	r.metrics.resolved(r.kind, res.Source)
	r.logger.DebugContext(ctx, "resolved",
		slog.String("kind", string(r.kind)),
		slog.String("code", code),
		slog.String("source", res.Source.String()),
	)
	return res
}

// LocaleResolver picks the locale for a request.
type LocaleResolver struct {
	r        resolver[catalog.Locale]
	fallback catalog.Locale
}

// NewLocaleResolver returns a resolver over locales. fallback is used when
// the catalog has neither a matching nor a default locale.
func NewLocaleResolver(locales catalog.LocaleLookup, fallback catalog.Locale, opts ...Option) *LocaleResolver {
	return &LocaleResolver{
		r:        resolver[catalog.Locale]{kind: preference.KindLocale, lookup: locales, options: newOptions(opts)},
		fallback: fallback,
	}
}

// Resolve tries signals in order, then the catalog default, then the
// configured fallback.
func (l *LocaleResolver) Resolve(ctx context.Context, signals []preference.Signal) Resolution[catalog.Locale] {
	res, ok := l.r.firstValid(ctx, signals)
	if !ok {
		res, ok = l.r.catalogDefault(ctx)
	}
	if !ok {
		res = l.r.configured(ctx, l.fallback, l.fallback.Code)
	}
	return l.r.done(ctx, res, res.Entity.Code)
}

// CurrencyResolver picks the currency for a request.
type CurrencyResolver struct {
	r        resolver[catalog.Currency]
	fallback catalog.Currency
}

// NewCurrencyResolver returns a resolver over currencies. fallback is used
// when the catalog has no active currency at all.
func NewCurrencyResolver(currencies catalog.CurrencyLookup, fallback catalog.Currency, opts ...Option) *CurrencyResolver {
	return &CurrencyResolver{
		r:        resolver[catalog.Currency]{kind: preference.KindCurrency, lookup: currencies, options: newOptions(opts)},
		fallback: fallback,
	}
}

// Resolve tries signals in order, then the catalog default, then the first
// active currency in catalog order, then the configured fallback.
func (c *CurrencyResolver) Resolve(ctx context.Context, signals []preference.Signal) Resolution[catalog.Currency] {
	res, ok := c.r.firstValid(ctx, signals)
	if !ok {
		res, ok = c.r.catalogDefault(ctx)
	}
	if !ok {
		res, ok = c.firstEntry(ctx)
	}
	if !ok {
		res = c.r.configured(ctx, c.fallback, c.fallback.Code)
	}
	return c.r.done(ctx, res, res.Entity.Code)
}

func (c *CurrencyResolver) firstEntry(ctx context.Context) (Resolution[catalog.Currency], bool) {
	e, err := catalog.FirstActive(ctx, c.r.lookup)
	if err != nil {
		return Resolution[catalog.Currency]{}, false
	}
	c.r.logger.WarnContext(ctx, "no default currency flagged, using first active currency",
		slog.String("code", e.Code),
	)
	return Resolution[catalog.Currency]{Entity: e, Source: preference.SourceDefault}, true
}
