package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PreferencesHandler struct {
//	    binder *localization.Binder
//	}
//
//	func (h *PreferencesHandler) Routes(r storefront.Router) {
//	    r.POST("/locale/{code}", h.switchLocale)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func RequireUser(next storefront.HandlerFunc) storefront.HandlerFunc {
//	    return func(c storefront.Context) error {
//	        if !c.IsAuthenticated() {
//	            return storefront.ErrUnauthorized("")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
