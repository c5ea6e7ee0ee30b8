package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/weftlabs/weft/core/cache"
	"github.com/weftlabs/weft/core/handler"
)

// httpMethods is the fixed registration order for Handle, so a mid-loop
// conflict always leaves the same (empty or prefix) subset registered.
var httpMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// methodSet lists the methods a route may be registered under, including the
// WebSocket sentinel.
var methodSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(httpMethods)+1)
	for _, method := range httpMethods {
		set[method] = struct{}{}
	}
	set[MethodWebSocket] = struct{}{}
	return set
}()

// mux is the private implementation of the Router interface. It keeps one
// segment tree per HTTP method plus one for WebSocket routes, all sharing a
// single tokenization cache.
type mux[C handler.Context] struct {
	// mu guards the trees map and the node graphs, so routes can be added
	// and removed while lookups are in flight. Held by the root mux only;
	// inline groups delegate through rootMux.
	mu           sync.RWMutex
	trees        map[string]*tree[handler.HandlerFunc[C]]
	segments     *cache.LRU[string, []Segment]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, handler.RouteInfo) C
	logger       *slog.Logger
	parent       *mux[C] // for inline groups
	inline       bool
	registered   bool // set once the first route lands, to validate Use ordering
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		trees:  make(map[string]*tree[handler.HandlerFunc[C]]),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(m, &cfg)
	}

	if m.errorHandler == nil {
		m.errorHandler = defaultErrorHandler[C]
	}
	if m.segments == nil {
		m.segments = cache.New[string, []Segment](cfg.CacheMaxSize,
			cache.WithTTL[string, []Segment](cfg.CacheExpiration),
			cache.WithCleanupInterval[string, []Segment](cfg.CacheCleanupInterval),
		)
	}

	// Without a factory only the default *Context type is supported; custom
	// context types must provide one.
	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, route handler.RouteInfo) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r, route)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler. Upgrade requests are resolved against
// the WebSocket tree first, falling back to the tree of their nominal method.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	// Use RawPath if available to preserve URL encoding
	path := r.URL.Path
	if r.URL.RawPath != "" {
		path = r.URL.RawPath
	}
	if path == "" {
		path = "/"
	}

	method := r.Method
	isUpgrade := websocket.IsWebSocketUpgrade(r)

	if _, ok := methodSet[method]; !ok {
		ctx := m.newContext(ww, r, handler.RouteInfo{})
		m.errorHandler(ctx, ErrMethodNotAllowed)
		return
	}

	segs := m.tokenize(path)
	query := parseQuery(r.URL.RawQuery)

	var mt Match[C]
	found := false
	if isUpgrade {
		mt, found = m.findIn(MethodWebSocket, segs, query)
	}
	if !found {
		mt, found = m.findIn(method, segs, query)
	}

	ctx := m.newContext(ww, r, mt.RouteInfo)

	// Recover from panics to prevent server crashes
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}

			if ww.Written() {
				// Can't send an error response anymore, just log the panic
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
			} else {
				m.errorHandler(ctx, panicErr)
			}
		}
	}()

	if !found {
		if allowed := m.allowedMethods(segs, method); len(allowed) > 0 {
			// Set Allow header per RFC 7231 before responding with 405
			if !ww.Written() {
				ww.Header().Set("Allow", strings.Join(allowed, ", "))
			}
			m.errorHandler(ctx, ErrMethodNotAllowed)
		} else {
			m.errorHandler(ctx, ErrNotFound)
		}
		return
	}

	fn := mt.Handler
	if len(m.middlewares) > 0 {
		fn = chain(m.middlewares, fn)
	}

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, r); err != nil {
		m.errorHandler(ctx, err)
	}
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) error {
	return m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) error {
	return m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) error {
	return m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) error {
	return m.handle(http.MethodDelete, pattern, h)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) error {
	return m.handle(http.MethodPatch, pattern, h)
}

// Head registers a handler for HEAD requests.
func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) error {
	return m.handle(http.MethodHead, pattern, h)
}

// Options registers a handler for OPTIONS requests.
func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) error {
	return m.handle(http.MethodOptions, pattern, h)
}

// WebSocket registers a handler on the WebSocket route tree.
func (m *mux[C]) WebSocket(pattern string, h handler.HandlerFunc[C]) error {
	return m.handle(MethodWebSocket, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) error {
	for _, method := range httpMethods {
		if err := m.handle(method, pattern, h); err != nil {
			return err
		}
	}
	return nil
}

// Method registers a handler for one or more specific methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) error {
	if len(methods) == 0 {
		return fmt.Errorf("%w: no methods provided", ErrInvalidMethod)
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if _, ok := methodSet[method]; !ok {
			return fmt.Errorf("%w: %s", ErrInvalidMethod, method)
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		if err := m.handle(method, pattern, h); err != nil {
			return err
		}
	}
	return nil
}

// Remove unregisters a route and prunes any trie nodes left empty.
func (m *mux[C]) Remove(method, pattern string) bool {
	root := m.rootMux()
	root.mu.Lock()
	defer root.mu.Unlock()

	t := root.trees[strings.ToUpper(method)]
	if t == nil {
		return false
	}
	return t.remove(Tokenize(pattern))
}

// Lookup resolves a path against the tree for the given method without
// dispatching the handler.
func (m *mux[C]) Lookup(method, path string) (Match[C], bool) {
	rawPath, rawQuery := splitQuery(path)
	return m.findIn(strings.ToUpper(method), m.tokenize(rawPath), parseQuery(rawQuery))
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.registered {
		panic("weft: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates a new inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		inline:       true,
		parent:       m,
		trees:        m.trees,
		segments:     m.segments,
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Routes returns all registered routes in deterministic order.
func (m *mux[C]) Routes() []Route {
	root := m.rootMux()
	root.mu.RLock()
	defer root.mu.RUnlock()

	methods := make([]string, 0, len(root.trees))
	for method := range root.trees {
		methods = append(methods, method)
	}
	sort.Strings(methods)

	var rts []Route
	for _, method := range methods {
		root.trees[method].walk(func(pattern string, _ handler.HandlerFunc[C]) {
			rts = append(rts, Route{Method: method, Pattern: pattern})
		})
	}
	return rts
}

// Close stops the route cache janitor. Inline groups share the parent's
// cache and leave it running.
func (m *mux[C]) Close() {
	if !m.inline && m.segments != nil {
		m.segments.Close()
	}
}

// handle registers a handler in the routing tree for the given method.
func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) error {
	if fn == nil {
		return fmt.Errorf("%w: '%s'", ErrNilHandler, pattern)
	}

	// Inline groups bake their middleware chain in at registration time.
	h := fn
	if m.inline {
		var all []handler.Middleware[C]
		for curr := m; curr != nil && curr.inline; curr = curr.parent {
			if len(curr.middlewares) > 0 {
				all = append(append([]handler.Middleware[C]{}, curr.middlewares...), all...)
			}
		}
		if len(all) > 0 {
			h = chain(all, fn)
		}
	}

	root := m.rootMux()
	root.mu.Lock()
	defer root.mu.Unlock()

	root.registered = true

	t := root.trees[method]
	if t == nil {
		t = newTree[handler.HandlerFunc[C]]()
		root.trees[method] = t
	}
	return t.insert(pattern, Tokenize(pattern), h)
}

func (m *mux[C]) rootMux() *mux[C] {
	curr := m
	for curr.inline && curr.parent != nil {
		curr = curr.parent
	}
	return curr
}

func (m *mux[C]) findIn(method string, segs []Segment, query map[string]string) (Match[C], bool) {
	root := m.rootMux()
	root.mu.RLock()
	t := root.trees[method]
	var mt match[handler.HandlerFunc[C]]
	ok := false
	if t != nil {
		mt, ok = t.find(segs)
	}
	root.mu.RUnlock()
	if !ok {
		return Match[C]{}, false
	}
	return Match[C]{
		Handler: mt.handler,
		RouteInfo: handler.RouteInfo{
			Pattern:  mt.pattern,
			Params:   mt.params,
			Query:    query,
			Wildcard: mt.wildcard,
		},
	}, true
}

// allowedMethods reports which other HTTP methods match the path, for the
// Allow header on 405 responses.
func (m *mux[C]) allowedMethods(segs []Segment, requested string) []string {
	root := m.rootMux()
	root.mu.RLock()
	defer root.mu.RUnlock()

	var allowed []string
	for method, t := range root.trees {
		if method == requested || method == MethodWebSocket {
			continue
		}
		if _, ok := t.find(segs); ok {
			allowed = append(allowed, method)
		}
	}
	sort.Strings(allowed)
	return allowed
}

// tokenize resolves a path through the shared cache, falling back to a
// direct tokenization on miss.
func (m *mux[C]) tokenize(path string) []Segment {
	segments := m.rootMux().segments
	if segments == nil {
		return Tokenize(path)
	}
	if segs, ok := segments.Get(path); ok {
		return segs
	}
	segs := Tokenize(path)
	segments.Put(path, segs)
	return segs
}
