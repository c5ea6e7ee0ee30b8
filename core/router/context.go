package router

import (
	"net/http"
	"sync"
	"time"

	"github.com/weftlabs/weft/core/handler"
)

// Context is the default context implementation that delegates cancellation
// to the request's context and exposes the values extracted during routing.
type Context struct {
	w     http.ResponseWriter
	r     *http.Request
	route handler.RouteInfo

	mu     sync.RWMutex
	values map[any]any
}

// newContext creates a new Context instance.
func newContext(w http.ResponseWriter, r *http.Request, route handler.RouteInfo) *Context {
	return &Context{w: w, r: r, route: route}
}

// NewContext creates the default Context. Custom context factories typically
// embed it and layer application state on top.
func NewContext(w http.ResponseWriter, r *http.Request, route handler.RouteInfo) *Context {
	return newContext(w, r, route)
}

// Deadline returns the time when work done on behalf of this context should be canceled.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this context should be canceled.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns the value stored via SetValue for key, falling back to the
// request's context.
func (c *Context) Value(key any) any {
	c.mu.RLock()
	if v, ok := c.values[key]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()
	return c.r.Context().Value(key)
}

// SetValue stores a value in the context for later retrieval via Value.
func (c *Context) SetValue(key, val any) {
	c.mu.Lock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
	c.mu.Unlock()
}

// Request returns the HTTP request associated with this context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the HTTP response writer associated with this context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the decoded value of the named path parameter.
func (c *Context) Param(key string) string {
	return c.route.Params[key]
}

// Query returns the decoded value of the named query parameter.
func (c *Context) Query(key string) string {
	return c.route.Query[key]
}

// Wildcard returns the path tail captured by a trailing "*" segment.
func (c *Context) Wildcard() string {
	return c.route.Wildcard
}

// Pattern returns the registered route pattern that matched the request.
func (c *Context) Pattern() string {
	return c.route.Pattern
}
