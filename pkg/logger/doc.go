// Package logger builds the storefront's slog loggers.
//
// Records are written as JSON (or text with LOG_FORMAT=text) to stdout.
// Context extractors attach request-scoped attributes at log time:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "locale resolved", slog.String("locale", "ar"))
//	// {"level":"INFO","msg":"locale resolved","locale":"ar","request_id":"..."}
//
// When SENTRY_DSN is set, errors are also reported as Sentry issues and
// warnings as Sentry logs. Register [FlushSentry] as a shutdown hook so
// buffered events are delivered before exit.
//
// [NewNope] is the default logger for constructors that accept an optional one.
package logger
