// Package localization decides which locale and currency apply to a request.
//
// A [Binder] reads the request's preference signals, runs the
// [LocaleResolver] and [CurrencyResolver], writes the outcome back to the
// session and returns an immutable [RequestContext]:
//
//	rc := binder.Bind(c)
//	rc.Locale().Code                      // "ar"
//	rc.IsRightToLeft()                    // true
//	rc.FormatPrice(decimal.NewFromInt(5)) // "5,00 €"
//
// Resolution never fails. Each present signal is checked against the
// active catalog in priority order; unknown or inactive codes fall through to
// the next signal. When none resolves, the catalog default is used, then (for
// currencies) the first active catalog entry, and finally the fallback built
// from [Config]. Reaching the configured fallback means the catalog is empty
// or unreachable; it is logged at error level and counted in [Metrics].
//
// The request context is also stored in the context.Context ([WithContext],
// [FromContext]) so templ components and other code can read it without
// access to the HTTP layer.
package localization
