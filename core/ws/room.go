package ws

import "sync"

// Room tracks a named group of live connections and fans events out to
// per-member listeners. Rooms never own connection lifetime: a connection
// may belong to many rooms, and transport delivery on a message event is the
// listener's job, not the room's.
//
// Duplicate joins and redundant leaves are idempotent no-ops. No room
// operation fails: everything is synchronous and in-process.
type Room struct {
	name string

	mu      sync.Mutex
	members map[string]Conn
	subs    map[EventKind][]*subscription

	// byConn indexes subscriptions by owning connection ID so a leave drops
	// only that connection's listeners instead of scanning all of them.
	byConn map[string][]*subscription

	// hooked records connections that already carry this room's auto-leave
	// close hook. Hooks cannot be unregistered, so a rejoin must not stack
	// another one.
	hooked map[string]bool

	// onEmpty is the registry's deletion hook. It is kept apart from member
	// subscriptions so clearing them on empty cannot detach it.
	onEmpty func()
}

type subscription struct {
	owner string
	event EventKind
	fn    Listener
}

func newRoom(name string) *Room {
	return &Room{
		name:    name,
		members: make(map[string]Conn),
		subs:    make(map[EventKind][]*subscription),
		byConn:  make(map[string][]*subscription),
		hooked:  make(map[string]bool),
	}
}

// Name returns the room's unique name.
func (r *Room) Name() string {
	return r.name
}

// Len returns the current member count.
func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Members returns a snapshot of the current member connections.
func (r *Room) Members() []Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make([]Conn, 0, len(r.members))
	for _, c := range r.members {
		members = append(members, c)
	}
	return members
}

// Contains reports whether the connection is a member.
func (r *Room) Contains(conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[conn.ID()]
	return ok
}

// Join adds the connection to the member set and fires join listeners for
// every other current member. The connection auto-leaves when it closes.
// Joining twice is a no-op.
func (r *Room) Join(conn Conn) {
	id := conn.ID()

	r.mu.Lock()
	if _, ok := r.members[id]; ok {
		r.mu.Unlock()
		return
	}
	r.members[id] = conn
	notify := r.collect(EventJoin, id)
	needHook := !r.hooked[id]
	r.hooked[id] = true
	r.mu.Unlock()

	if needHook {
		conn.OnClose(func() { r.Leave(conn) })
	}

	r.fire(notify, Event{Kind: EventJoin, Room: r.name, Conn: conn})
}

// Leave removes the connection, drops its subscriptions, and fires leave
// listeners for the remaining members. When the last member leaves, the
// empty listeners fire exactly once and all subscriptions are cleared.
// Leaving a room one is not in is a no-op.
func (r *Room) Leave(conn Conn) {
	id := conn.ID()

	r.mu.Lock()
	if _, ok := r.members[id]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.members, id)

	var notify []Listener
	var ev Event
	var emptyHook func()

	if len(r.members) == 0 {
		// Snapshot before dropping anything: the last leaver's own empty
		// listener still fires.
		notify = r.collect(EventEmpty, "")
		ev = Event{Kind: EventEmpty, Room: r.name}
		// No members remain to notify of anything.
		r.subs = make(map[EventKind][]*subscription)
		r.byConn = make(map[string][]*subscription)
		emptyHook = r.onEmpty
	} else {
		r.dropSubscriptions(id)
		notify = r.collect(EventLeave, id)
		ev = Event{Kind: EventLeave, Room: r.name, Conn: conn}
	}
	r.mu.Unlock()

	r.fire(notify, ev)
	if emptyHook != nil {
		emptyHook()
	}
}

// Send classifies the payload and fires message listeners for every member
// except the sender. The sender's own listeners never fire.
func (r *Room) Send(sender Conn, payload any) {
	r.mu.Lock()
	notify := r.collect(EventMessage, sender.ID())
	r.mu.Unlock()

	r.fire(notify, Event{
		Kind:    EventMessage,
		Room:    r.name,
		Conn:    sender,
		Payload: payload,
		Message: Classify(payload),
	})
}

// On registers a listener owned by the given connection. The subscription
// is removed automatically when that connection leaves the room.
func (r *Room) On(conn Conn, event EventKind, fn Listener) {
	sub := &subscription{owner: conn.ID(), event: event, fn: fn}

	r.mu.Lock()
	r.subs[event] = append(r.subs[event], sub)
	r.byConn[sub.owner] = append(r.byConn[sub.owner], sub)
	r.mu.Unlock()
}

// collect snapshots the listeners for an event, excluding those owned by
// the given connection ID. Caller holds the lock.
func (r *Room) collect(event EventKind, exclude string) []Listener {
	subs := r.subs[event]
	if len(subs) == 0 {
		return nil
	}
	notify := make([]Listener, 0, len(subs))
	for _, sub := range subs {
		if sub.owner != exclude {
			notify = append(notify, sub.fn)
		}
	}
	return notify
}

// dropSubscriptions removes every subscription owned by the connection,
// using the secondary index for targeted removal. Caller holds the lock.
func (r *Room) dropSubscriptions(id string) {
	owned := r.byConn[id]
	if len(owned) == 0 {
		delete(r.byConn, id)
		return
	}
	delete(r.byConn, id)

	for _, sub := range owned {
		list := r.subs[sub.event]
		for i, s := range list {
			if s == sub {
				r.subs[sub.event] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(r.subs[sub.event]) == 0 {
			delete(r.subs, sub.event)
		}
	}
}

// fire invokes listeners outside the room lock so they may call back into
// the room.
func (r *Room) fire(listeners []Listener, ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}
