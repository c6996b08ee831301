// Command storefront serves the storefront with request-scoped locale and
// currency resolution.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/handlers"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/migrations"
	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/job"
	"github.com/dmitrymomot/storefront/pkg/localization"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/preference"
	"github.com/dmitrymomot/storefront/pkg/rates"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/session"
	"github.com/dmitrymomot/storefront/translations"
)

// featured is the demo product list shown on the home page, priced in the
// base currency.
var featured = []handlers.Product{
	{Name: "Brass desk lamp", Price: decimal.RequireFromString("89.00")},
	{Name: "Linen throw", Price: decimal.RequireFromString("1249.50")},
	{Name: "Ceramic mug", Price: decimal.RequireFromString("14.99")},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()
	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, pool, migrations.FS, cfg.Database.MigrationsTable, log); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}

	locales, currencies, invalidate, err := openCatalogs(cfg, pool, rdb)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := localization.NewMetrics(reg)

	store := preference.NewStore(
		preference.WithProfiles(preference.NewPostgresProfiles(pool)),
		preference.WithLogger(log),
	)
	binder := localization.NewBinder(store,
		localization.NewLocaleResolver(locales, cfg.Localization.FallbackLocale(),
			localization.WithLogger(log), localization.WithMetrics(metrics)),
		localization.NewCurrencyResolver(currencies, cfg.Localization.FallbackCurrency(),
			localization.WithLogger(log), localization.WithMetrics(metrics)),
		localization.WithLogger(log),
		localization.WithMetrics(metrics),
	)

	bundle, err := i18n.New(cfg.Localization.DefaultLocale,
		i18n.WithYAMLDir(translations.FS),
		i18n.WithMissingKeyHandler(func(locale, key string) {
			log.Debug("missing translation", slog.String("locale", locale), slog.String("key", key))
		}),
	)
	if err != nil {
		return err
	}

	checks := []storefront.HealthOption{
		storefront.WithReadinessCheck("postgres", db.Healthcheck(pool)),
		storefront.WithReadinessCheck("redis", redis.Healthcheck(rdb)),
		storefront.WithReadinessCheck("catalog", localization.CatalogCheck(locales, currencies)),
	}

	opts := []storefront.Option{
		storefront.WithCustomLogger(log),
		storefront.WithSession(session.NewRedisStore(rdb, "session"),
			storefront.WithSessionSecure(cfg.CookieSecure),
			storefront.WithSessionDomain(cfg.CookieDomain),
		),
		storefront.WithCookieOptions(
			storefront.WithCookieSecure(cfg.CookieSecure),
			storefront.WithCookieDomain(cfg.CookieDomain),
		),
		storefront.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Localization(binder, middlewares.WithTranslations(bundle)),
		),
		storefront.WithErrorHandler(handlers.HandleError),
		storefront.WithNotFoundHandler(handlers.HandleNotFound),
		storefront.WithMethodNotAllowedHandler(handlers.HandleMethodNotAllowed),
		storefront.WithMount("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
		storefront.WithHandlers(
			handlers.NewPreferencesHandler(store, locales, currencies),
			handlers.NewAPIHandler(locales, currencies, handlers.WithAdminToken(cfg.AdminToken)),
			handlers.NewPagesHandler(locales, currencies, cfg.BaseCurrency, featured...),
		),
	}

	switch {
	case !cfg.Rates.Enabled():
		log.Info("exchange rate refresh disabled: RATES_FEED_URL is not set")
	case invalidate == nil:
		log.Warn("exchange rate refresh disabled: catalogs are served from a seed file")
	default:
		jobs, err := newJobs(ctx, cfg, pool, log, invalidate)
		if err != nil {
			return err
		}
		opts = append(opts, storefront.WithJobs(jobs))
		checks = append(checks, storefront.WithReadinessCheck("jobs", jobs.Healthcheck))
	}
	opts = append(opts, storefront.WithHealthChecks(checks...))

	app := storefront.New(opts...)

	return app.Run(cfg.Address,
		storefront.Logger(log),
		storefront.ShutdownHook(db.Shutdown(pool)),
		storefront.ShutdownHook(redis.Shutdown(rdb)),
		storefront.ShutdownHook(logger.FlushSentry(2*time.Second)),
	)
}

// openCatalogs returns the locale and currency lookups. Postgres catalogs
// are cached in Redis or in process; the returned invalidator drops both
// snapshots. Seed file catalogs are immutable and return a nil invalidator.
func openCatalogs(cfg Config, pool *pgxpool.Pool, rdb goredis.UniversalClient) (catalog.LocaleLookup, catalog.CurrencyLookup, rates.Invalidator, error) {
	if cfg.CatalogSeedFile != "" {
		seed, err := catalog.LoadSeedFile(cfg.CatalogSeedFile)
		if err != nil {
			return nil, nil, nil, err
		}
		return catalog.NewMemory(seed.Locales...), catalog.NewMemory(seed.Currencies...), nil, nil
	}

	var (
		localeStore   cache.Cache[[]catalog.Locale]
		currencyStore cache.Cache[[]catalog.Currency]
	)
	switch cfg.CatalogCache {
	case "memory":
		localeStore = cache.NewMemory[[]catalog.Locale]()
		currencyStore = cache.NewMemory[[]catalog.Currency]()
	case "redis":
		localeStore = cache.NewRedis[[]catalog.Locale](rdb, nil, cache.WithPrefix("storefront"))
		currencyStore = cache.NewRedis[[]catalog.Currency](rdb, nil, cache.WithPrefix("storefront"))
	default:
		return nil, nil, nil, fmt.Errorf("unknown CATALOG_CACHE %q", cfg.CatalogCache)
	}

	locales := catalog.NewCached(catalog.NewPostgresLocales(pool), localeStore)
	currencies := catalog.NewCached(catalog.NewPostgresCurrencies(pool), currencyStore)
	return locales, currencies, invalidators{locales, currencies}, nil
}

type invalidators []rates.Invalidator

func (is invalidators) Invalidate(ctx context.Context) error {
	for _, i := range is {
		if err := i.Invalidate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// newJobs prepares the River schema and registers the rates refresh.
func newJobs(ctx context.Context, cfg Config, pool *pgxpool.Pool, log *slog.Logger, invalidate rates.Invalidator) (*job.Manager, error) {
	if err := job.Migrate(ctx, pool, log); err != nil {
		return nil, err
	}

	refresher := rates.NewRefresher(cfg.Rates, cfg.BaseCurrency,
		rates.NewHTTPSource(&http.Client{Timeout: cfg.Rates.Timeout}, cfg.Rates.FeedURL),
		rates.NewPostgresWriter(pool),
		rates.WithInvalidator(invalidate),
		rates.WithLogger(log),
	)
	return job.NewManager(pool,
		job.WithLogger(log),
		job.WithMaxWorkers(cfg.JobsWorkers),
		job.WithScheduledTask(refresher, true),
	)
}
