// Package cache provides a small generic cache with in-memory and Redis
// backends and a stampede-safe GetOrSet helper.
//
//	c := cache.NewMemory[[]catalog.Locale](cache.WithDefaultTTL(5 * time.Minute))
//	defer c.Close()
//
//	locales, err := cache.GetOrSet(ctx, c, "locales", func(ctx context.Context) ([]catalog.Locale, time.Duration, error) {
//	    list, err := source.List(ctx)
//	    return list, 0, err
//	})
//
// The Redis backend stores JSON by default; pass a [Marshaler] to change it.
// Its client is obtained from pkg/redis and is not closed by the cache.
package cache
