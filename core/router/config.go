package router

import "time"

// Config holds route cache tuning with environment variable support.
type Config struct {
	// CacheMaxSize bounds how many tokenized paths the route cache keeps.
	CacheMaxSize int `env:"ROUTER_CACHE_MAX_SIZE" envDefault:"500"`

	// CacheExpiration is the TTL applied to cached tokenizations.
	CacheExpiration time.Duration `env:"ROUTER_CACHE_EXPIRATION" envDefault:"10s"`

	// CacheCleanupInterval is the period of the background sweep that drops
	// expired entries.
	CacheCleanupInterval time.Duration `env:"ROUTER_CACHE_CLEANUP_INTERVAL" envDefault:"10s"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		CacheMaxSize:         500,
		CacheExpiration:      10 * time.Second,
		CacheCleanupInterval: 10 * time.Second,
	}
}
