// Package storefront is the web runtime of the storefront: an App on chi
// with server-side sessions, background jobs, health checks and
// request-scoped locale and currency resolution.
//
// # Quick Start
//
//	app := storefront.New(
//	    storefront.WithSession(session.NewRedisStore(client, "session")),
//	    storefront.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Localization(binder, middlewares.WithTranslations(bundle)),
//	    ),
//	    storefront.WithHandlers(handlers.NewPreferencesHandler(store, locales, currencies)),
//	)
//	err := app.Run(":8080", storefront.Logger(log))
//
// # Localization
//
// Every request gets exactly one locale and one currency, both active in
// their catalogs. The locale is taken from, in order: the ?lang= query
// parameter, the locale cookie, the signed-in user's preferred_locale, the
// session and the Accept-Language header. The currency is taken from
// ?currency=, the currency cookie, the session and the user's
// preferred_currency. Unknown or inactive codes are skipped; when nothing
// matches, the catalog default and then the configured fallback apply.
//
// The outcome is written to the session so the next request resolves the
// same way without the override. The user's profile changes only through
// the explicit /locale/{code} switch.
//
// Handlers read the bound values from the Context:
//
//	func (h *Pages) product(c storefront.Context) error {
//	    return c.String(http.StatusOK, c.FormatPrice(price))
//	}
package storefront
