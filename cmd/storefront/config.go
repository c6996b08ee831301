package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/localization"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/rates"
	"github.com/dmitrymomot/storefront/pkg/redis"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Address string `env:"ADDRESS" envDefault:":8080"`

	// BaseCurrency is the currency prices and exchange rates are quoted in.
	BaseCurrency string `env:"BASE_CURRENCY" envDefault:"USD"`

	// CatalogSeedFile serves the catalogs from a YAML file instead of Postgres.
	CatalogSeedFile string `env:"CATALOG_SEED_FILE"`

	// CatalogCache is "redis" or "memory".
	CatalogCache string `env:"CATALOG_CACHE" envDefault:"redis"`

	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"true"`
	CookieDomain string `env:"COOKIE_DOMAIN"`

	AdminToken  string `env:"ADMIN_TOKEN"`
	JobsWorkers int    `env:"JOBS_MAX_WORKERS" envDefault:"4"`

	Log          logger.Config
	Database     db.Config
	Redis        redis.Config
	Localization localization.Config
	Rates        rates.Config
}

// loadConfig reads an optional .env file and parses the environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
