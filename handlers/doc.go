// Package handlers serves the storefront routes: the locale and currency
// switches, the localization JSON API and the pages.
//
// Switches validate the code against the active catalog, store it in the
// locale or currency cookie and the session, and redirect back. Only the
// locale switch of a signed-in user updates the profile's preferred_locale;
// passive resolution never does.
package handlers
