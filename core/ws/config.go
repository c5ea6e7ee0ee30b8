package ws

import "time"

// Config holds hub settings with environment variable support.
type Config struct {
	// RoomCleanupDelay is how long an empty room survives before deletion.
	// Zero deletes empty rooms immediately.
	RoomCleanupDelay time.Duration `env:"WS_ROOM_CLEANUP_DELAY" envDefault:"0s"`

	// Upgrade buffer sizes passed to the transport.
	ReadBufferSize  int `env:"WS_READ_BUFFER_SIZE" envDefault:"1024"`
	WriteBufferSize int `env:"WS_WRITE_BUFFER_SIZE" envDefault:"1024"`
}

// NewHubFromConfig creates a Hub from configuration. Additional options
// override config values.
func NewHubFromConfig(cfg Config, opts ...HubOption) *Hub {
	all := make([]HubOption, 0, len(opts)+1)
	if cfg.RoomCleanupDelay > 0 {
		all = append(all, WithCleanupDelay(cfg.RoomCleanupDelay))
	}
	all = append(all, opts...)
	return NewHub(all...)
}
