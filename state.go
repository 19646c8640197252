package hazel

// ConnectionState describes where a connection is in its lifecycle. The
// state only moves forward: a fresh connection starts at NotConnected and a
// disposed connection never re-enters Connected.
type ConnectionState byte

const (
	// NotConnected is the initial state before Connect is called.
	NotConnected ConnectionState = iota

	// Connecting is the transient state while Connect binds the socket
	// and starts the receive loop.
	Connecting

	// Connected means the connection is established and payloads may be
	// sent and received.
	Connected

	// Disconnecting is the terminal state; the socket is disposed and no
	// further operation is valid.
	Disconnecting
)

// String returns a human-readable name for the state.
func (s ConnectionState) String() string {
	switch s {
	case NotConnected:
		return "NotConnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Disconnecting:
		return "Disconnecting"
	default:
		return "Unknown"
	}
}
