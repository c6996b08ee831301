package rates

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Source returns a raw feed document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Writer stores rates and reports how many currencies changed.
type Writer interface {
	WriteRates(ctx context.Context, rates map[string]decimal.Decimal) (int64, error)
}

// Invalidator drops cached catalog snapshots.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// PostgresWriter updates the currencies table in one transaction.
type PostgresWriter struct{ pool *pgxpool.Pool }

func NewPostgresWriter(pool *pgxpool.Pool) *PostgresWriter { return &PostgresWriter{pool: pool} }

func (w *PostgresWriter) WriteRates(ctx context.Context, rates map[string]decimal.Decimal) (int64, error) {
	var n int64
	err := db.WithTx(ctx, w.pool, func(tx pgx.Tx) error {
		var err error
		n, err = catalog.NewPostgresCurrencies(tx).UpdateRates(ctx, rates)
		return err
	})
	return n, err
}

// Refresher is a scheduled task that pulls the feed into the catalog.
type Refresher struct {
	cfg         Config
	base        string
	source      Source
	writer      Writer
	invalidates []Invalidator
	logger      *slog.Logger
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithInvalidator drops cache snapshots after rates change.
func WithInvalidator(i Invalidator) Option {
	return func(r *Refresher) { r.invalidates = append(r.invalidates, i) }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Refresher) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRefresher returns a task that quotes rates against base, the catalog's
// reference currency.
func NewRefresher(cfg Config, base string, source Source, writer Writer, opts ...Option) *Refresher {
	r := &Refresher{cfg: cfg, base: base, source: source, writer: writer, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TaskName is the job name the refresher is registered under.
const TaskName = "refresh_exchange_rates"

func (r *Refresher) Name() string { return TaskName }

func (r *Refresher) Schedule() string { return r.cfg.Schedule }

// Handle fetches, parses and stores rates. Codes unknown to the catalog are ignored.
func (r *Refresher) Handle(ctx context.Context) error {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	body, err := r.source.Fetch(ctx)
	if err != nil {
		return err
	}
	rates, err := Parse(body, r.cfg.Path, r.cfg.BasePath, r.base)
	if err != nil {
		return err
	}

	updated, err := r.writer.WriteRates(ctx, rates)
	if err != nil {
		return fmt.Errorf("rates: write: %w", err)
	}
	r.logger.InfoContext(ctx, "exchange rates refreshed",
		slog.Int("received", len(rates)),
		slog.Int64("updated", updated),
	)
	if updated == 0 {
		return nil
	}

	for _, inv := range r.invalidates {
		if err := inv.Invalidate(ctx); err != nil {
			r.logger.WarnContext(ctx, "failed to invalidate catalog cache", slog.Any("error", err))
		}
	}
	return nil
}
