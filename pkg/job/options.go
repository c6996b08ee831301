package job

import (
	"log/slog"
	"time"
)

type config struct {
	logger     *slog.Logger
	tasks      map[string]executor
	periodic   []periodic
	maxWorkers int
}

type periodic struct {
	name       string
	schedule   string
	runOnStart bool
}

// Option configures a Manager.
type Option func(*config)

// WithScheduledTask registers a periodic task. The task can also be
// enqueued by name. With runOnStart it runs once when the manager starts.
func WithScheduledTask(t ScheduledTask, runOnStart bool) Option {
	return func(c *config) {
		c.tasks[t.Name()] = scheduled(t)
		c.periodic = append(c.periodic, periodic{name: t.Name(), schedule: t.Schedule(), runOnStart: runOnStart})
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers bounds concurrent jobs on the default queue. Default: 10.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// EnqueueOption adjusts a single insert.
type EnqueueOption func(*enqueueConfig)

type enqueueConfig struct {
	scheduledAt time.Time
	uniqueFor   time.Duration
}

// ScheduledIn delays the job.
func ScheduledIn(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) { c.scheduledAt = time.Now().Add(d) }
}

// UniqueFor skips the insert when a job with the same task and payload was
// inserted within d.
func UniqueFor(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) { c.uniqueFor = d }
}
