// Package health provides liveness and readiness probe handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](
//		log,
//		func(ctx context.Context) error { return db.PingContext(ctx) },
//	))
//	r.Get("/ping", health.Ping[*router.Context])
package health
