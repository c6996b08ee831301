// Package middlewares provides HTTP middleware for storefront applications.
//
// # Localization
//
// Localization binds the request's locale and currency once, before any
// handler runs. The result is memoized on the request: handlers, templates
// and later middleware all see the same values.
//
//	app := storefront.New(
//	    storefront.WithSession(store),
//	    storefront.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Localization(binder, middlewares.WithTranslations(bundle)),
//	    ),
//	)
//
// Handlers read the bound values through the accessors:
//
//	middlewares.CurrentLocale(c).Code       // "ar"
//	middlewares.IsRightToLeft(c)            // true
//	middlewares.FormatPrice(c, price)       // "1.234,50 €"
//
// # Request ID
//
// RequestID reuses X-Request-ID or X-Correlation-ID from upstream proxies or
// generates a UUID. Pair it with RequestIDExtractor to tag every log entry:
//
//	storefront.WithLogger("web", cfg.Log, middlewares.RequestIDExtractor())
//
// # Recover
//
// Recover turns panics into a 500 HTTPError wrapping a PanicError.
package middlewares
