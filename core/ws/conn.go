package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn is the minimal surface a room needs from a live connection. Socket is
// the production implementation; tests supply fakes.
type Conn interface {
	// ID returns a stable identifier unique among live connections.
	ID() string
	// Send delivers a payload over the transport. The payload is encoded
	// according to its Classify kind.
	Send(payload any) error
	// OnClose registers a hook invoked exactly once when the connection
	// closes. Rooms use it to auto-leave departing members.
	OnClose(fn func())
}

// Socket adapts a gorilla WebSocket connection to the Conn interface.
// Writes are serialized with a mutex; reads happen on the single Listen
// goroutine, matching gorilla's one-reader-one-writer requirement.
type Socket struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex

	closeMu    sync.Mutex
	closed     bool
	closeHooks []func()
}

// NewSocket wraps an upgraded WebSocket connection.
func NewSocket(conn *websocket.Conn) *Socket {
	return &Socket{
		id:   uuid.New().String(),
		conn: conn,
	}
}

// ID returns the socket's unique identifier.
func (s *Socket) ID() string {
	return s.id
}

// Send writes a payload to the peer. Strings go out as text frames, byte
// slices as binary frames, byte slice lists as one binary frame each, and
// any other value is JSON-encoded into a text frame.
func (s *Socket) Send(payload any) error {
	switch p := payload.(type) {
	case string:
		return s.write(websocket.TextMessage, []byte(p))
	case []byte:
		return s.write(websocket.BinaryMessage, p)
	case [][]byte:
		for _, buf := range p {
			if err := s.write(websocket.BinaryMessage, buf); err != nil {
				return err
			}
		}
		return nil
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("ws: encode payload: %w", err)
		}
		return s.write(websocket.TextMessage, data)
	}
}

func (s *Socket) write(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(messageType, data)
}

// OnClose registers a close hook. If the socket is already closed the hook
// runs immediately.
func (s *Socket) OnClose(fn func()) {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		fn()
		return
	}
	s.closeHooks = append(s.closeHooks, fn)
	s.closeMu.Unlock()
}

// Close closes the underlying connection and fires close hooks exactly once.
func (s *Socket) Close() error {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return nil
	}
	s.closed = true
	hooks := s.closeHooks
	s.closeHooks = nil
	s.closeMu.Unlock()

	err := s.conn.Close()
	for _, fn := range hooks {
		fn()
	}
	return err
}

// Listen reads frames until the peer disconnects or the context is
// canceled, invoking fn with each payload. Text frames arrive as strings and
// binary frames as byte slices. The socket is closed (and close hooks fire)
// before Listen returns. Normal closes return nil.
func (s *Socket) Listen(ctx context.Context, fn func(payload any, kind MessageKind)) error {
	defer s.Close()

	// Cancellation unblocks the blocking read by closing the transport.
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.Close()
	})
	defer stop()

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				return err
			}
			return nil
		}

		if fn == nil {
			continue
		}
		switch messageType {
		case websocket.TextMessage:
			fn(string(data), MessageText)
		case websocket.BinaryMessage:
			fn(data, MessageBinary)
		}
	}
}
