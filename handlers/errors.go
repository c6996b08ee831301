package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/views"
)

// HandleError renders handler errors. API routes and clients that ask for
// JSON get the HTTPError as JSON; everyone else gets a localized page.
func HandleError(c storefront.Context, err error) error {
	httpErr := storefront.AsHTTPError(err)
	if httpErr == nil {
		c.LogError("unhandled error", slog.Any("error", err))
		httpErr = storefront.ErrInternal(c.T("error.internal"), storefront.WithError(err))
	}

	if wantsJSON(c) {
		return c.JSON(httpErr.Code, httpErr)
	}
	return c.Render(httpErr.Code, views.Layout(httpErr.StatusText(), nil, views.ErrorPage(httpErr.Code, httpErr.Message)))
}

// HandleNotFound renders the 404 page.
func HandleNotFound(c storefront.Context) error {
	return HandleError(c, storefront.ErrNotFound(c.T("error.not_found")))
}

// HandleMethodNotAllowed renders the 405 page.
func HandleMethodNotAllowed(c storefront.Context) error {
	return HandleError(c, storefront.NewHTTPError(http.StatusMethodNotAllowed, c.T("error.method_not_allowed")))
}

func wantsJSON(c storefront.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/") ||
		strings.Contains(c.Header("Accept"), "application/json")
}
