// Package preference reads and persists the signals a shopper leaves about
// the language and currency they want.
//
// Signals come from a fixed set of sources, checked in priority order:
//
//	locale:   ?lang= → "locale" cookie → user profile → session → Accept-Language
//	currency: ?currency= → "currency" cookie → session → user profile
//
// [Store.Read] returns the present signals in that order; validating them is
// left to the resolvers in pkg/localization. [Store.Write] stores the resolved
// code in the session so the choice survives the next request, and
// [Store.SavePreferredLocale] updates the signed-in user's profile after an
// explicit language switch.
//
// Persistence is best-effort: callers log the returned error and carry on
// with the value they already resolved.
package preference
