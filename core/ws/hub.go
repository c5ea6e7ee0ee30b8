package ws

import (
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Hub is the room registry: it maps room names to rooms, creates rooms
// lazily on first join, and deletes them once empty: immediately or after
// a configurable delay that absorbs rapid leave/rejoin churn such as
// reconnect storms. A join always cancels a pending deletion.
type Hub struct {
	mu           sync.Mutex
	rooms        map[string]*roomEntry
	cleanupDelay time.Duration
	logger       *slog.Logger
}

// roomEntry pairs a room with its deferred-deletion timer. The timer lives
// on the entry itself and is replaced under the hub lock, so at most one
// timer is ever armed per room name.
type roomEntry struct {
	room    *Room
	cleanup *time.Timer
}

// HubOption configures a Hub during creation.
type HubOption func(*Hub)

// WithCleanupDelay sets how long an empty room survives before deletion.
// Zero or negative means empty rooms are deleted immediately.
func WithCleanupDelay(d time.Duration) HubOption {
	return func(h *Hub) {
		h.cleanupDelay = d
	}
}

// WithHubLogger sets a custom logger for the hub.
func WithHubLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHub creates a room registry with the given options.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		rooms:  make(map[string]*roomEntry),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Join adds the connection to the named room, creating the room on first
// join, and returns the room. A pending deferred deletion for the room is
// canceled.
func (h *Hub) Join(conn Conn, name string) *Room {
	for {
		h.mu.Lock()
		e, ok := h.rooms[name]
		if !ok {
			e = &roomEntry{room: newRoom(name)}
			e.room.onEmpty = func() { h.scheduleCleanup(name) }
			h.rooms[name] = e
			h.logger.Debug("room created", "room", name)
		}
		if e.cleanup != nil {
			e.cleanup.Stop()
			e.cleanup = nil
		}
		h.mu.Unlock()

		e.room.Join(conn)

		// A concurrent last-member leave may have deleted the registry entry
		// between unlock and join. Re-check so the name still maps to the
		// room the connection actually joined.
		h.mu.Lock()
		cur, ok := h.rooms[name]
		if !ok {
			// Occupied again, so restore the mapping.
			h.rooms[name] = e
			h.mu.Unlock()
			return e.room
		}
		if cur == e {
			h.mu.Unlock()
			return e.room
		}
		h.mu.Unlock()

		// The name was remapped to a fresh room while we joined the old one.
		// Abandon the orphan and retry against the current entry.
		e.room.Leave(conn)
	}
}

// Leave removes the connection from the named room if both exist.
func (h *Hub) Leave(conn Conn, name string) {
	h.mu.Lock()
	e := h.rooms[name]
	h.mu.Unlock()

	if e != nil {
		e.room.Leave(conn)
	}
}

// Room returns the named room if it exists. A room pending deferred
// deletion still exists and is rejoinable.
func (h *Hub) Room(name string) (*Room, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.rooms[name]
	if !ok {
		return nil, false
	}
	return e.room, true
}

// Rooms returns the names of all current rooms in lexical order.
func (h *Hub) Rooms() []string {
	h.mu.Lock()
	names := make([]string, 0, len(h.rooms))
	for name := range h.rooms {
		names = append(names, name)
	}
	h.mu.Unlock()

	sort.Strings(names)
	return names
}

// Len returns the number of current rooms, including any pending deletion.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// scheduleCleanup runs when a room signals empty. With no delay configured
// the room is deleted immediately; otherwise a timer is armed, replacing
// any prior one, and re-checks emptiness when it fires to defend against a
// join racing the deletion.
func (h *Hub) scheduleCleanup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.rooms[name]
	if !ok {
		return
	}

	if h.cleanupDelay <= 0 {
		if e.room.Len() == 0 {
			delete(h.rooms, name)
			h.logger.Debug("room deleted", "room", name)
		}
		return
	}

	if e.cleanup != nil {
		e.cleanup.Stop()
	}
	e.cleanup = time.AfterFunc(h.cleanupDelay, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		e, ok := h.rooms[name]
		if !ok {
			return
		}
		e.cleanup = nil
		if e.room.Len() == 0 {
			delete(h.rooms, name)
			h.logger.Debug("room deleted", "room", name, "delay", h.cleanupDelay)
		}
	})
}
