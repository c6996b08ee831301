// Package catalog holds the administered sets of locales and currencies a
// storefront can serve, and the lookups used to validate candidate codes.
//
// Entities are read-only to callers. A catalog is ordered: Default returns the
// first entity flagged default and active, and List returns entities in the
// administered order (position, then insertion or id order).
//
// Misses are reported as [ErrNotFound]. It is a normal result, not a failure:
//
//	loc, err := locales.FindActive(ctx, "ar")
//	if errors.Is(err, catalog.ErrNotFound) {
//	    // try the next candidate
//	}
//
// Backends:
//   - [Memory] wraps a fixed slice, typically loaded with [LoadSeedFile].
//   - [PostgresLocales] and [PostgresCurrencies] read the locales and currencies tables.
//   - [Cached] keeps a snapshot of any backend in a pkg/cache store.
package catalog
