// Package server wraps the standard HTTP server with graceful shutdown,
// environment-driven configuration, and functional options. It hosts the
// router and stays out of the way: TLS termination and protocol concerns
// belong to the infrastructure in front of it.
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := srv.Start(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
//		log.Fatal(err)
//	}
package server
