// Package config provides type-safe environment variable loading with
// caching using Go generics. Each configuration type is loaded once and
// cached for subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct
// fields.
//
//	type AppConfig struct {
//		Addr  string        `env:"SERVER_ADDR" envDefault:":8080"`
//		Delay time.Duration `env:"WS_ROOM_CLEANUP_DELAY" envDefault:"0s"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Or panic on failure during startup:
//
//	config.MustLoad(&cfg)
package config
