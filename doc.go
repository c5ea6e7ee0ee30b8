// Package weft is a web server toolkit that unifies HTTP routing and
// WebSocket handling behind one generic, type-safe surface.
//
// The pieces live in focused packages:
//
//   - core/router: segment-trie routing with parameters, wildcards, conflict
//     detection at registration, runtime route removal, and a bounded LRU+TTL
//     cache for tokenized paths
//   - core/ws: WebSocket connections, named rooms with lazy creation and
//     deferred deletion, and sender-excluded broadcast
//   - core/handler: the handler, response, and middleware contracts shared by
//     both
//   - core/server: http.Server lifecycle with graceful shutdown
//   - core/cache: the generic LRU+TTL cache backing the router
//   - core/config: environment-driven configuration loading
//   - core/health: liveness and readiness probes
//   - middleware: request ID and request logging
//
// A minimal chat service:
//
//	hub := ws.NewHub()
//	r := router.New[*router.Context]()
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.WebSocket("/ws/:room", func(ctx *router.Context) handler.Response {
//		name := ctx.Param("room")
//		return ws.Upgrade(func(sctx context.Context, s *ws.Socket) error {
//			room := hub.Join(s, name)
//			room.On(s, ws.EventMessage, func(ev ws.Event) { _ = s.Send(ev.Payload) })
//			return s.Listen(sctx, func(payload any, _ ws.MessageKind) {
//				room.Send(s, payload)
//			})
//		})
//	})
//
//	server.Run(ctx, ":8080", r)
package weft
