package router

import (
	"log/slog"
	"net/http"

	"github.com/weftlabs/weft/core/handler"
)

// Option configures a Router during creation.
type Option[C handler.Context] func(*mux[C], *Config)

// WithErrorHandler sets a custom error handler for the router.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C], _ *Config) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware adds middleware to the router.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C], _ *Config) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithContextFactory sets a custom context factory for the router.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request, handler.RouteInfo) C) Option[C] {
	return func(m *mux[C], _ *Config) {
		m.newContext = f
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C], _ *Config) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithConfig applies route cache settings, typically loaded from the
// environment via the config package.
func WithConfig[C handler.Context](cfg Config) Option[C] {
	return func(_ *mux[C], c *Config) {
		if cfg.CacheMaxSize > 0 {
			c.CacheMaxSize = cfg.CacheMaxSize
		}
		if cfg.CacheExpiration > 0 {
			c.CacheExpiration = cfg.CacheExpiration
		}
		if cfg.CacheCleanupInterval > 0 {
			c.CacheCleanupInterval = cfg.CacheCleanupInterval
		}
	}
}
