// Package health serves liveness and readiness probes.
//
// Readiness runs named checks concurrently under a shared timeout:
//
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	    "catalog":  localization.CatalogCheck(locales, currencies),
//	}))
//
// Responses are plain text unless the client asks for JSON with
// ?format=json or an Accept: application/json header.
package health
