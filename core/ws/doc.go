// Package ws provides WebSocket connection handling with room-based
// broadcast: named groups of live connections supporting join/leave
// semantics and sender-excluded message fan-out.
//
// # Rooms and the Hub
//
// The Hub is the room registry. Rooms are created lazily on first join and
// deleted once empty: immediately by default, or after a configurable
// delay so a reconnecting client can rejoin without losing the room:
//
//	hub := ws.NewHub(ws.WithCleanupDelay(time.Second))
//
//	room := hub.Join(socket, "general")
//	room.On(socket, ws.EventMessage, func(ev ws.Event) {
//		_ = socket.Send(ev.Payload)
//	})
//	room.Send(socket, "hello") // every member except socket gets it
//
// Rooms fire in-process listeners; actual transport delivery is the
// listener's responsibility, as in the snippet above. Listeners are owned
// by the connection that registered them and are dropped when it leaves.
// A connection's close event triggers an automatic leave from every room
// it joined.
//
// Duplicate joins and redundant leaves are no-ops. Room operations never
// fail; there is no error surface on this path.
//
// # Connections
//
// Socket adapts a gorilla WebSocket connection to the Conn interface rooms
// consume. Upgrade glues it to the router's handler model:
//
//	r.WebSocket("/chat/:room", func(ctx *router.Context) handler.Response {
//		name := ctx.Param("room")
//		return ws.Upgrade(func(ctx context.Context, s *ws.Socket) error {
//			room := hub.Join(s, name)
//			room.On(s, ws.EventMessage, func(ev ws.Event) { _ = s.Send(ev.Payload) })
//			return s.Listen(ctx, func(payload any, _ ws.MessageKind) {
//				room.Send(s, payload)
//			})
//		})
//	})
//
// # Payload Kinds
//
// Send classifies payloads as text (string), binary ([]byte), binary list
// ([][]byte), or object (anything else, JSON-encoded on the wire), and the
// kind travels with the message event.
package ws
