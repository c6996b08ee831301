package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/job"
	"github.com/dmitrymomot/storefront/pkg/localization"
	"github.com/dmitrymomot/storefront/pkg/session"
)

// LocalizationKey is the context key the Localization middleware stores
// the bound *localization.RequestContext under.
type LocalizationKey = localization.ContextKey

// TranslatorKey is the context key the Localization middleware stores
// the *i18n.Translator for the resolved locale under.
type TranslatorKey = i18n.ContextKey

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// SetCookie sets a plain cookie. A zero maxAge makes a browser-session cookie.
	SetCookie(name, value string, maxAge int)

	// DeleteCookie removes a cookie.
	DeleteCookie(name string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Render renders a component with the given status code.
	// Compatible with templ.Component.
	Render(code int, component Component) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Error creates and returns an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written returns true if a response has already been written.
	Written() bool

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	// The value can be retrieved using Get or from c.Context().Value(key).
	Set(key any, value any)

	// Get retrieves a value from the request context.
	Get(key any) any

	// UserID returns the authenticated user's ID from the session.
	// Returns empty string if no session, no session manager, or no user.
	UserID() string

	// IsAuthenticated returns true if a user is associated with the session.
	IsAuthenticated() bool

	// Session returns the current session, loading it on first use.
	// Returns session.ErrNotConfigured if WithSession was not called.
	// Returns nil, nil if the request carries no usable session.
	Session() (*session.Session, error)

	// InitSession creates a new session for this request.
	InitSession() error

	// AuthenticateSession associates a user with the session and rotates the token.
	AuthenticateSession(userID string) error

	// SessionValue returns the value under key, or nil when it is absent.
	// Returns session.ErrNotFound if no session exists.
	SessionValue(key string) (any, error)

	// SetSessionValue stores a value in the session.
	// Returns session.ErrNotFound if no session exists.
	SetSessionValue(key string, val any) error

	// DeleteSessionValue removes a value from the session.
	DeleteSessionValue(key string) error

	// DestroySession removes the session and clears the cookie.
	DestroySession() error

	// Enqueue adds a job to the queue for background processing.
	// Returns ErrJobsNotConfigured if WithJobs was not called.
	Enqueue(name string, payload any, opts ...job.EnqueueOption) error

	// Localization returns the locale and currency bound by the
	// Localization middleware, or nil when the middleware is not installed.
	Localization() *localization.RequestContext

	// Locale returns the bound locale. Zero value without the middleware.
	Locale() catalog.Locale

	// Currency returns the bound currency. Zero value without the middleware.
	Currency() catalog.Currency

	// IsRTL reports whether the bound locale is written right to left.
	IsRTL() bool

	// FormatPrice formats an amount in the bound currency.
	// Falls back to a plain two-decimal string without the middleware.
	FormatPrice(amount decimal.Decimal) string

	// T translates a key for the bound locale.
	// Returns the key itself if no translator is in context.
	T(key string, placeholders ...i18n.M) string

	// Tn translates a key with pluralization.
	Tn(key string, n int, placeholders ...i18n.M) string
}

// requestContext implements the Context interface.
type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookies        cookieConfig
	sessionManager *SessionManager
	jobs           *job.Manager
	state          *sessionState
}

// newContext wraps w and r for one handler or middleware layer. Layers of the
// same request share the response writer and the loaded session.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}

	st, ok := r.Context().Value(sessionStateKey{}).(*sessionState)
	if !ok {
		st = &sessionState{}
		r = r.WithContext(context.WithValue(r.Context(), sessionStateKey{}, st))
	}

	return &requestContext{
		request:        r,
		responseWriter: rw,
		logger:         app.logger,
		cookies:        app.cookies,
		sessionManager: app.sessionManager,
		jobs:           app.jobs,
		state:          st,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	http.SetCookie(c.responseWriter, c.cookies.cookie(name, value, maxAge))
}

func (c *requestContext) DeleteCookie(name string) {
	http.SetCookie(c.responseWriter, c.cookies.cookie(name, "", -1))
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := io.WriteString(c.responseWriter, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.responseWriter.WriteHeader(code)
	return nil
}

func (c *requestContext) Render(code int, component Component) error {
	c.responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return component.Render(c.request.Context(), c.responseWriter)
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.responseWriter, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) UserID() string {
	sess, err := c.Session()
	if err != nil || sess == nil || sess.UserID == nil {
		return ""
	}
	return *sess.UserID
}

func (c *requestContext) IsAuthenticated() bool {
	return c.UserID() != ""
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessionManager == nil {
		return nil, session.ErrNotConfigured
	}

	c.registerSessionHook()

	if c.state.loaded {
		return c.state.sess, nil
	}

	sess, err := c.sessionManager.LoadSession(c.Context(), c.request)
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		// Stale cookie: forget it and carry on anonymously.
		c.sessionManager.DeleteSession(c.responseWriter)
		sess = nil
	case err != nil:
		return nil, err
	}

	c.state.sess = sess
	c.state.loaded = true
	return sess, nil
}

func (c *requestContext) InitSession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	c.registerSessionHook()

	sess, err := c.sessionManager.CreateSession(c.Context(), c.request)
	if err != nil {
		return err
	}

	c.state.sess = sess
	c.state.loaded = true
	c.sessionManager.SaveSession(c.responseWriter, sess)
	return nil
}

func (c *requestContext) AuthenticateSession(userID string) error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	sess, err := c.Session()
	if err != nil {
		c.LogWarn("failed to load session", slog.Any("error", err))
	}
	if sess == nil {
		if err := c.InitSession(); err != nil {
			return err
		}
		sess = c.state.sess
	}

	sess.UserID = &userID
	sess.MarkDirty()

	// Rotate on privilege change against session fixation.
	if err := c.sessionManager.RotateToken(c.Context(), sess); err != nil {
		return err
	}
	c.sessionManager.SaveSession(c.responseWriter, sess)
	return nil
}

func (c *requestContext) SessionValue(key string) (any, error) {
	sess, err := c.Session()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, session.ErrNotFound
	}

	val, _ := sess.GetValue(key)
	return val, nil
}

func (c *requestContext) SetSessionValue(key string, val any) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return session.ErrNotFound
	}

	sess.SetValue(key, val)
	return nil
}

func (c *requestContext) DeleteSessionValue(key string) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return session.ErrNotFound
	}

	sess.DeleteValue(key)
	return nil
}

func (c *requestContext) DestroySession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess != nil {
		if err := c.sessionManager.Store().Delete(c.Context(), sess.Token); err != nil {
			return err
		}
	}

	c.sessionManager.DeleteSession(c.responseWriter)
	c.state.sess = nil
	c.state.loaded = true
	return nil
}

// registerSessionHook flushes a dirty session before the first response write.
func (c *requestContext) registerSessionHook() {
	if c.state.hooked {
		return
	}
	c.state.hooked = true

	ctx, sm, log := c.Context(), c.sessionManager, c.logger
	c.responseWriter.OnBeforeWrite(func() {
		c.state.flush(ctx, sm, log)
	})
}

func (c *requestContext) Enqueue(name string, payload any, opts ...job.EnqueueOption) error {
	if c.jobs == nil {
		return ErrJobsNotConfigured
	}
	return c.jobs.Enqueue(c.Context(), name, payload, opts...)
}

func (c *requestContext) Localization() *localization.RequestContext {
	rc, _ := localization.FromContext(c.request.Context())
	return rc
}

func (c *requestContext) Locale() catalog.Locale {
	if rc := c.Localization(); rc != nil {
		return rc.Locale()
	}
	return catalog.Locale{}
}

func (c *requestContext) Currency() catalog.Currency {
	if rc := c.Localization(); rc != nil {
		return rc.Currency()
	}
	return catalog.Currency{}
}

func (c *requestContext) IsRTL() bool {
	if rc := c.Localization(); rc != nil {
		return rc.IsRightToLeft()
	}
	return false
}

func (c *requestContext) FormatPrice(amount decimal.Decimal) string {
	if rc := c.Localization(); rc != nil {
		return rc.FormatPrice(amount)
	}
	return amount.StringFixed(2)
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	return i18n.T(c.request.Context(), key, placeholders...)
}

func (c *requestContext) Tn(key string, n int, placeholders ...i18n.M) string {
	return i18n.Tn(c.request.Context(), key, n, placeholders...)
}
