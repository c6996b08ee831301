package middlewares

import (
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/localization"
)

// LocalizationConfig configures the Localization middleware.
type LocalizationConfig struct {
	Bundle                 *i18n.Bundle
	DisableContentLanguage bool
}

// LocalizationOption configures LocalizationConfig.
type LocalizationOption func(*LocalizationConfig)

// WithTranslations installs a translator for the resolved locale, used by
// Context.T and i18n.T in templates.
func WithTranslations(b *i18n.Bundle) LocalizationOption {
	return func(cfg *LocalizationConfig) {
		cfg.Bundle = b
	}
}

// WithoutContentLanguage stops the middleware from setting Content-Language.
func WithoutContentLanguage() LocalizationOption {
	return func(cfg *LocalizationConfig) {
		cfg.DisableContentLanguage = true
	}
}

// Localization returns middleware that resolves the locale and currency once
// per request and binds them for the rest of it. Resolution never fails;
// persistence errors are logged by the binder.
func Localization(binder *localization.Binder, opts ...LocalizationOption) internal.Middleware {
	cfg := &LocalizationConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if c.Localization() != nil {
				return next(c)
			}

			rc := binder.Bind(c)
			c.Set(internal.LocalizationKey{}, rc)

			if cfg.Bundle != nil {
				c.Set(internal.TranslatorKey{}, cfg.Bundle.Translator(rc.Locale().Code))
			}
			if !cfg.DisableContentLanguage {
				c.SetHeader("Content-Language", rc.Locale().Code)
			}

			return next(c)
		}
	}
}

// CurrentLocale returns the locale bound to the request.
func CurrentLocale(c internal.Context) catalog.Locale {
	return c.Locale()
}

// CurrentCurrency returns the currency bound to the request.
func CurrentCurrency(c internal.Context) catalog.Currency {
	return c.Currency()
}

// IsRightToLeft reports whether the bound locale is written right to left.
func IsRightToLeft(c internal.Context) bool {
	return c.IsRTL()
}

// FormatPrice formats amount with the bound currency's rules.
func FormatPrice(c internal.Context, amount decimal.Decimal) string {
	return c.FormatPrice(amount)
}
