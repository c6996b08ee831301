package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/job"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/session"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithMount attaches a plain http.Handler, e.g. a metrics endpoint.
// Global middleware applies to it like to any route.
//
// Example:
//
//	storefront.WithMount("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		if pattern != "" && h != nil {
			a.mounts = append(a.mounts, mount{handler: h, pattern: pattern})
		}
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	storefront.WithStaticFiles("/static/", assets, "public")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			fileServer.ServeHTTP(w, r)
		})

		a.mounts = append(a.mounts, mount{handler: handler, pattern: pattern})
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
//
// Example:
//
//	storefront.WithErrorHandler(func(c storefront.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables liveness (/health/live) and readiness
// (/health/ready) endpoints.
//
// Example:
//
//	storefront.WithHealthChecks(
//	    storefront.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    storefront.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// Extractors pull values from context (e.g., request_id).
func WithLogger(component string, cfg logger.Config, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(cfg, extractors...).With(slog.String("component", component))
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures plain cookies set through Context.SetCookie.
//
// Example:
//
//	storefront.WithCookieOptions(storefront.WithCookieSecure(true))
func WithCookieOptions(opts ...CookieOption) Option {
	return func(a *App) {
		for _, opt := range opts {
			opt(&a.cookies)
		}
	}
}

// WithSession enables server-side session management.
// Sessions are loaded lazily and saved automatically before the response is written.
//
// Example:
//
//	storefront.WithSession(session.NewRedisStore(client, "session"),
//	    storefront.WithSessionSecure(true),
//	)
func WithSession(store session.Store, opts ...SessionOption) Option {
	return func(a *App) {
		a.sessionManager = NewSessionManager(store, opts...)
	}
}

// WithJobs attaches a job manager. Workers start with the server and stop
// after it drains; handlers enqueue through Context.Enqueue.
//
// Example:
//
//	jobs, err := job.NewManager(pool, job.WithScheduledTask(refresher, true))
//	storefront.New(storefront.WithJobs(jobs))
func WithJobs(m *job.Manager) Option {
	return func(a *App) {
		a.jobs = m
	}
}

// cookieConfig holds attributes for plain cookies.
type cookieConfig struct {
	domain   string
	path     string
	sameSite http.SameSite
	secure   bool
	httpOnly bool
}

func defaultCookieConfig() cookieConfig {
	return cookieConfig{path: "/", sameSite: http.SameSiteLaxMode, httpOnly: true}
}

func (c cookieConfig) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     c.path,
		Domain:   c.domain,
		MaxAge:   maxAge,
		Secure:   c.secure,
		HttpOnly: c.httpOnly,
		SameSite: c.sameSite,
	}
}

// CookieOption configures plain cookies.
type CookieOption func(*cookieConfig)

// WithCookieSecure sets the Secure flag.
func WithCookieSecure(secure bool) CookieOption {
	return func(c *cookieConfig) { c.secure = secure }
}

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return func(c *cookieConfig) { c.domain = domain }
}

// WithCookieHTTPOnly sets the HttpOnly flag. Defaults to true.
func WithCookieHTTPOnly(httpOnly bool) CookieOption {
	return func(c *cookieConfig) { c.httpOnly = httpOnly }
}
