package catalog

import (
	"context"
	"time"

	"github.com/dmitrymomot/storefront/pkg/cache"
)

// Cached serves lookups from a snapshot of the source catalog kept in a cache.
// The snapshot is reloaded when it expires or after Invalidate.
type Cached[E Entity] struct {
	source Lookup[E]
	store  cache.Cache[[]E]
	key    string
	ttl    time.Duration
}

// CachedOption configures NewCached.
type CachedOption func(*cachedConfig)

type cachedConfig struct {
	key string
	ttl time.Duration
}

// WithCacheKey overrides the snapshot key. The default is derived from the entity kind.
func WithCacheKey(key string) CachedOption {
	return func(c *cachedConfig) { c.key = key }
}

// WithSnapshotTTL sets how long a snapshot is served. Default: 5 minutes.
func WithSnapshotTTL(d time.Duration) CachedOption {
	return func(c *cachedConfig) { c.ttl = d }
}

// NewCached wraps source with a snapshot cache.
func NewCached[E Entity](source Lookup[E], store cache.Cache[[]E], opts ...CachedOption) *Cached[E] {
	cfg := cachedConfig{key: "catalog:" + kindOf[E](), ttl: 5 * time.Minute}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cached[E]{source: source, store: store, key: cfg.key, ttl: cfg.ttl}
}

func (c *Cached[E]) FindActive(ctx context.Context, code string) (E, error) {
	var zero E
	list, err := c.snapshot(ctx)
	if err != nil {
		return zero, err
	}
	if e, ok := findActive(list, code); ok {
		return e, nil
	}
	return zero, ErrNotFound
}

func (c *Cached[E]) Default(ctx context.Context) (E, error) {
	var zero E
	list, err := c.snapshot(ctx)
	if err != nil {
		return zero, err
	}
	if e, ok := findDefault(list); ok {
		return e, nil
	}
	return zero, ErrNotFound
}

func (c *Cached[E]) List(ctx context.Context) ([]E, error) {
	list, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]E, len(list))
	copy(out, list)
	return out, nil
}

// Invalidate drops the snapshot so the next lookup reloads from the source.
func (c *Cached[E]) Invalidate(ctx context.Context) error {
	return c.store.Delete(ctx, c.key)
}

func (c *Cached[E]) snapshot(ctx context.Context) ([]E, error) {
	return cache.GetOrSet(ctx, c.store, c.key, func(ctx context.Context) ([]E, time.Duration, error) {
		list, err := c.source.List(ctx)
		return list, c.ttl, err
	})
}

func kindOf[E Entity]() string {
	var zero E
	switch any(zero).(type) {
	case Locale:
		return "locales"
	case Currency:
		return "currencies"
	}
	return "entities"
}
