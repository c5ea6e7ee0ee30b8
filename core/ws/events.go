package ws

// EventKind identifies a class of room event subscription.
type EventKind string

const (
	// EventJoin fires for existing members when a connection joins.
	EventJoin EventKind = "join"
	// EventLeave fires for remaining members when a connection leaves.
	EventLeave EventKind = "leave"
	// EventMessage fires for every member except the sender on Send.
	EventMessage EventKind = "message"
	// EventEmpty fires once when the last member leaves.
	EventEmpty EventKind = "empty"
)

// MessageKind classifies a broadcast payload.
type MessageKind uint8

const (
	MessageText       MessageKind = iota // string payload
	MessageObject                        // any marshalable value
	MessageBinary                        // single []byte buffer
	MessageBinaryList                    // [][]byte buffer list
)

// Classify reports the message kind for a payload the way Send does:
// strings are text, byte slices are binary, slices of byte slices are
// binary lists, and everything else is treated as an object.
func Classify(payload any) MessageKind {
	switch payload.(type) {
	case string:
		return MessageText
	case []byte:
		return MessageBinary
	case [][]byte:
		return MessageBinaryList
	default:
		return MessageObject
	}
}

// Event is delivered to room listeners.
type Event struct {
	Kind EventKind
	Room string

	// Conn is the joining or leaving connection, or the message sender.
	// It is nil for empty events.
	Conn Conn

	// Payload and Message are set for message events only.
	Payload any
	Message MessageKind
}

// Listener receives room events. Listeners run synchronously on the
// goroutine that triggered the event and must not block.
type Listener func(Event)
