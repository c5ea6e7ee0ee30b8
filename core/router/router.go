package router

import (
	"net/http"

	"github.com/weftlabs/weft/core/handler"
)

// MethodWebSocket is the sentinel method under which WebSocket routes are
// registered. Upgrade requests are matched against this tree instead of the
// tree of their nominal HTTP method.
const MethodWebSocket = "WEBSOCKET"

// Router is the main routing interface for HTTP and WebSocket requests.
// Registration returns an error when the pattern conflicts with an existing
// route; callers typically abort startup on it.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	// HTTP method handlers
	Get(pattern string, h handler.HandlerFunc[C]) error
	Post(pattern string, h handler.HandlerFunc[C]) error
	Put(pattern string, h handler.HandlerFunc[C]) error
	Delete(pattern string, h handler.HandlerFunc[C]) error
	Patch(pattern string, h handler.HandlerFunc[C]) error
	Head(pattern string, h handler.HandlerFunc[C]) error
	Options(pattern string, h handler.HandlerFunc[C]) error

	// WebSocket registers a handler on the WebSocket route tree. The handler
	// is expected to return a Response that performs the upgrade, e.g. via
	// the ws package.
	WebSocket(pattern string, h handler.HandlerFunc[C]) error

	// Generic registration
	Handle(pattern string, h handler.HandlerFunc[C]) error
	Method(pattern string, h handler.HandlerFunc[C], methods ...string) error

	// Remove unregisters the route and prunes empty trie nodes. It reports
	// false when no such route exists.
	Remove(method, pattern string) bool

	// Lookup resolves a path against the tree for the given method without
	// dispatching. A miss is reported as ok == false, never as an error.
	Lookup(method, path string) (Match[C], bool)

	// Middleware
	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]
	Group(fn func(r Router[C])) Router[C]

	// Close releases background resources (the route cache janitor).
	Close()
}

// Routes provides route introspection for debugging and monitoring.
type Routes interface {
	Routes() []Route
}

// Route describes a single registered route.
type Route struct {
	Method  string
	Pattern string
}

// Match is the result of resolving a request path: the registered handler
// plus everything extracted from the path during the walk.
type Match[C handler.Context] struct {
	Handler handler.HandlerFunc[C]
	handler.RouteInfo
}

// New creates a new router with the given options.
// The router supports generic context types for type-safe request handling.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
