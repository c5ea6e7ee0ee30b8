package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/weftlabs/weft/core/handler"
)

type upgradeConfig struct {
	upgrader       *websocket.Upgrader
	responseHeader http.Header
	onConnect      func(context.Context, *Socket) error
	onDisconnect   func(context.Context, *Socket)
	onError        func(context.Context, error)
}

// UpgradeOption configures the WebSocket upgrade.
type UpgradeOption func(*upgradeConfig)

func WithReadBuffer(size int) UpgradeOption {
	return func(c *upgradeConfig) {
		c.upgrader.ReadBufferSize = size
	}
}

func WithWriteBuffer(size int) UpgradeOption {
	return func(c *upgradeConfig) {
		c.upgrader.WriteBufferSize = size
	}
}

func WithHandshakeTimeout(timeout time.Duration) UpgradeOption {
	return func(c *upgradeConfig) {
		c.upgrader.HandshakeTimeout = timeout
	}
}

func WithOriginCheck(fn func(r *http.Request) bool) UpgradeOption {
	return func(c *upgradeConfig) {
		c.upgrader.CheckOrigin = fn
	}
}

func WithAllowAnyOrigin() UpgradeOption {
	return func(c *upgradeConfig) {
		c.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
}

func WithSubprotocols(protocols ...string) UpgradeOption {
	return func(c *upgradeConfig) {
		c.upgrader.Subprotocols = protocols
	}
}

func WithUpgradeHeaders(header http.Header) UpgradeOption {
	return func(c *upgradeConfig) {
		c.responseHeader = header
	}
}

func WithOnConnect(fn func(context.Context, *Socket) error) UpgradeOption {
	return func(c *upgradeConfig) {
		c.onConnect = fn
	}
}

func WithOnDisconnect(fn func(context.Context, *Socket)) UpgradeOption {
	return func(c *upgradeConfig) {
		c.onDisconnect = fn
	}
}

func WithErrorHandler(fn func(context.Context, error)) UpgradeOption {
	return func(c *upgradeConfig) {
		c.onError = fn
	}
}

// Upgrade returns a Response that upgrades the request to a WebSocket and
// hands the resulting Socket to sessionHandler. When the handler returns the
// socket is closed and its close hooks fire, so rooms drop the member. Upgrade and session errors go to the configured error callback
// rather than failing the response.
func Upgrade(sessionHandler func(ctx context.Context, s *Socket) error, opts ...UpgradeOption) handler.Response {
	cfg := &upgradeConfig{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		conn, err := cfg.upgrader.Upgrade(w, r, cfg.responseHeader)
		if err != nil {
			if cfg.onError != nil {
				cfg.onError(r.Context(), err)
			}
			return nil
		}

		s := NewSocket(conn)
		defer func() {
			_ = s.Close()
			if cfg.onDisconnect != nil {
				cfg.onDisconnect(r.Context(), s)
			}
		}()

		if cfg.onConnect != nil {
			if err := cfg.onConnect(r.Context(), s); err != nil {
				if cfg.onError != nil {
					cfg.onError(r.Context(), err)
				}
				return nil
			}
		}

		if err := sessionHandler(r.Context(), s); err != nil {
			if cfg.onError != nil {
				cfg.onError(r.Context(), err)
			}
		}
		return nil
	}
}
