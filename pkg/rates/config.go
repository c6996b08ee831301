package rates

import "time"

// Config configures the rates feed and refresh schedule.
type Config struct {
	FeedURL  string        `env:"RATES_FEED_URL"`
	Path     string        `env:"RATES_PATH" envDefault:"rates"`
	BasePath string        `env:"RATES_BASE_PATH" envDefault:"base"`
	Schedule string        `env:"RATES_SCHEDULE" envDefault:"0 * * * *"`
	Timeout  time.Duration `env:"RATES_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether a feed is configured.
func (c Config) Enabled() bool { return c.FeedURL != "" }
