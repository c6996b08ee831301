// Package db connects the storefront to PostgreSQL through pgxpool and applies
// goose migrations.
//
// Settings come from the environment (see [Config]):
//
//	DATABASE_URL                - connection URL (required)
//	DATABASE_MAX_OPEN_CONNS     - pool size (default: 10)
//	DATABASE_MIN_CONNS          - idle connections kept open (default: 2)
//	DATABASE_RETRY_ATTEMPTS     - startup attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - goose version table (default: schema_migrations)
//
// Typical startup:
//
//	pool, err := db.Connect(ctx, cfg.DB)
//	if err != nil {
//	    return err
//	}
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
//	    return err
//	}
//
// Repositories accept a [Querier] so they work with both the pool and a
// transaction opened by [WithTx].
package db
