// Package internal implements the storefront web runtime: App, Context,
// Router, sessions and the server lifecycle.
//
// Import "github.com/dmitrymomot/storefront" instead, which re-exports the
// public API.
//
// # Context
//
// Context embeds context.Context, so it can be passed directly to database
// calls and HTTP clients. Every middleware layer and the handler of one
// request see the same response writer and the same lazily loaded session;
// a dirty session is saved right before the first byte of the response.
//
// # Localization
//
// Once the Localization middleware has run, Locale, Currency, IsRTL and
// FormatPrice return the values bound for the request, and T/Tn translate
// with the translator for the resolved locale:
//
//	func (h *Pages) product(c storefront.Context) error {
//	    price := c.FormatPrice(decimal.RequireFromString("19.99"))
//	    return c.String(http.StatusOK, c.T("product.price", i18n.M{"price": price}))
//	}
//
// # Handlers
//
// Handlers implement Handler and declare routes:
//
//	func (h *Preferences) Routes(r storefront.Router) {
//	    r.Handle([]string{http.MethodGet, http.MethodPost}, "/locale/{code}", h.switchLocale)
//	}
package internal
