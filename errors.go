package hazel

import (
	"errors"
	"fmt"
)

// Common errors for Hazel connections
var (
	// ErrNotConnected indicates an operation that requires an established
	// connection was attempted while the connection is not Connected
	ErrNotConnected = errors.New("connection is not connected")

	// ErrAlreadyConnected indicates Connect was called on a connection
	// that has already left the NotConnected state
	ErrAlreadyConnected = errors.New("connection already connected")

	// ErrConnectionClosed indicates the remote peer closed the connection
	ErrConnectionClosed = errors.New("connection closed by remote")
)

// HazelError represents a transport-level error with additional context.
// State violations are reported as the bare sentinel errors above; a
// HazelError always wraps a failure of the underlying socket.
type HazelError struct {
	Op   string // operation that caused the error
	Addr string // remote address if relevant
	Err  error  // underlying error
}

func (e *HazelError) Error() string {
	if e.Addr != "" {
		return fmt.Sprintf("hazel %s %s: %v", e.Op, e.Addr, e.Err)
	}
	return fmt.Sprintf("hazel %s: %v", e.Op, e.Err)
}

func (e *HazelError) Unwrap() error {
	return e.Err
}

// newHazelError creates a new HazelError
func newHazelError(op, addr string, err error) *HazelError {
	return &HazelError{
		Op:   op,
		Addr: addr,
		Err:  err,
	}
}
