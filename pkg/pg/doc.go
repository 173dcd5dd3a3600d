// Package pg opens the Postgres pool backing the company registry and
// applies the embedded goose migrations at startup.
//
//	pool, err := pg.Connect(ctx, cfg.Postgres)
//	if err != nil { ... }
//	if err := pg.Migrate(ctx, pool, cfg.Postgres, migrations.FS, log); err != nil { ... }
//
// Healthcheck plugs the pool into httpserver.HealthCheckHandler.
package pg
