// Package redis opens go-redis clients for the storefront's session store
// and catalog cache.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	app := storefront.New(
//	    storefront.WithHealthChecks(storefront.HealthCheck("redis", redis.Healthcheck(client))),
//	    storefront.WithShutdownHook(redis.Shutdown(client)),
//	)
//
// Only redis:// and rediss:// URLs are accepted.
package redis
