// Package router provides a segment-trie HTTP and WebSocket router with
// type-safe generic contexts.
//
// # Route Patterns
//
// Patterns are "/"-delimited; "\" is accepted as a separator for
// cross-platform path input. Three segment kinds are supported:
//
//   - static:    /users/list
//   - parameter: /users/:id       (":id" binds the segment to Param("id"))
//   - wildcard:  /files/*         ("*" captures the rest of the path)
//
// A static segment always wins over a parameter at the same depth, and a
// parameter wins over a wildcard. A route registered as "/*" also matches
// the root path "/". Trailing slashes are insignificant.
//
// Registering a route that collides with an existing one (same pattern, a
// second parameter with a different bind name at the same position, or a
// second wildcard) fails with ErrRouteConflict naming both patterns.
//
// # Usage
//
//	r := router.New[*router.Context]()
//
//	if err := r.Get("/users/:id", func(ctx *router.Context) handler.Response {
//		return func(w http.ResponseWriter, req *http.Request) error {
//			_, err := w.Write([]byte("user " + ctx.Param("id")))
//			return err
//		}
//	}); err != nil {
//		log.Fatal(err)
//	}
//
//	http.ListenAndServe(":8080", r)
//
// WebSocket routes live in their own tree under the MethodWebSocket
// sentinel; upgrade requests are matched against it first:
//
//	r.WebSocket("/chat/:room", func(ctx *router.Context) handler.Response {
//		return ws.Upgrade(func(ctx context.Context, s *ws.Socket) error {
//			hub.Join(s, ctx.Param("room"))
//			return s.Listen(ctx, nil)
//		})
//	})
//
// # Route Cache
//
// Tokenized paths are cached in a bounded LRU with TTL expiry, so repeated
// lookups of the same raw path skip re-tokenization. The cache is
// transparent: results are identical with or without a hit. Close the
// router to stop the cache janitor.
//
// # Lookup Misses
//
// A path that matches no route is an ordinary miss, not an error: Lookup
// reports ok == false and ServeHTTP hands ErrNotFound to the error handler.
package router
