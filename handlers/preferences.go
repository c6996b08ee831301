package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/preference"
)

// preferenceCookieMaxAge keeps switched preferences for a year.
const preferenceCookieMaxAge = 365 * 24 * 60 * 60

// PreferencesHandler serves the explicit locale and currency switches.
type PreferencesHandler struct {
	store      *preference.Store
	locales    catalog.LocaleLookup
	currencies catalog.CurrencyLookup
}

// NewPreferencesHandler creates the switch handler. Codes are validated
// against the same catalogs the resolvers use.
func NewPreferencesHandler(store *preference.Store, locales catalog.LocaleLookup, currencies catalog.CurrencyLookup) *PreferencesHandler {
	return &PreferencesHandler{store: store, locales: locales, currencies: currencies}
}

// Routes declares the switch routes. GET is accepted so plain links work.
func (h *PreferencesHandler) Routes(r storefront.Router) {
	methods := []string{http.MethodGet, http.MethodPost}
	r.Handle(methods, "/locale/{code}", h.switchLocale)
	r.Handle(methods, "/currency/{code}", h.switchCurrency)
}

// switchLocale stores the chosen locale in the cookie and the session and,
// for signed-in users, on the profile.
func (h *PreferencesHandler) switchLocale(c storefront.Context) error {
	locale, err := h.locales.FindActive(c.Context(), c.Param("code"))
	if err != nil {
		return lookupError(err, "unknown locale")
	}

	c.SetCookie(preference.LocaleKey, locale.Code, preferenceCookieMaxAge)
	if err := h.store.Write(c, preference.KindLocale, locale.Code, locale.ID); err != nil {
		c.LogWarn("failed to persist locale switch", "locale", locale.Code, "error", err)
	}
	if c.IsAuthenticated() {
		if err := h.store.SavePreferredLocale(c, locale.Code); err != nil && !errors.Is(err, preference.ErrNoProfiles) {
			c.LogWarn("failed to save preferred locale", "locale", locale.Code, "error", err)
		}
	}

	return c.Redirect(http.StatusSeeOther, backURL(c))
}

// switchCurrency stores the chosen currency in the cookie and the session.
func (h *PreferencesHandler) switchCurrency(c storefront.Context) error {
	cur, err := h.currencies.FindActive(c.Context(), c.Param("code"))
	if err != nil {
		return lookupError(err, "unknown currency")
	}

	c.SetCookie(preference.CurrencyKey, cur.Code, preferenceCookieMaxAge)
	if err := h.store.Write(c, preference.KindCurrency, cur.Code, cur.ID); err != nil {
		c.LogWarn("failed to persist currency switch", "currency", cur.Code, "error", err)
	}

	return c.Redirect(http.StatusSeeOther, backURL(c))
}

func lookupError(err error, msg string) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return storefront.ErrNotFound(msg)
	}
	return err
}

// backURL returns the Referer path when it points at this host, "/" otherwise.
func backURL(c storefront.Context) string {
	ref := c.Header("Referer")
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request().Host) {
		return "/"
	}
	if u.Path == "" || u.Path[0] != '/' {
		return "/"
	}
	back := u.EscapedPath()
	if u.RawQuery != "" {
		back += "?" + u.RawQuery
	}
	return back
}
