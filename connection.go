package hazel

import (
	"net"
	"sync"

	"github.com/sirupsen/logrus"
)

// handshakeByte is the single zero-valued byte sent immediately after a
// successful connect. It opens a path through intermediate NATs and signals
// liveness to the peer.
const handshakeByte byte = 0

// UDPClientConnection is a single logical connection to one remote host,
// carried over UDP datagrams tagged with a one-byte delivery option.
//
// The connection is safe for concurrent use: the application goroutine and
// the internal receive loop both funnel through one mutex that guards the
// lifecycle state and the socket. Callbacks are always invoked outside that
// guard.
type UDPClientConnection struct {
	mu    sync.Mutex
	state ConnectionState
	sock  *datagramSocket

	remote string // remote address string, set once during Connect

	onData       func(payload []byte)
	onDisconnect func(cause error)

	options *Options
	logger  *logrus.Entry
}

// NewUDPClientConnection creates a connection in the NotConnected state.
// A nil options is equivalent to NewOptions().
func NewUDPClientConnection(options *Options) *UDPClientConnection {
	if options == nil {
		options = NewOptions()
	}
	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &UDPClientConnection{
		state:   NotConnected,
		options: options,
		logger:  logger.WithField("component", "UDPClientConnection"),
	}
}

// OnDataReceived registers the callback invoked once per inbound datagram.
// The payload excludes the delivery-tag byte and is owned by the callback.
func (c *UDPClientConnection) OnDataReceived(callback func(payload []byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onData = callback
}

// OnDisconnected registers the callback invoked when the connection is torn
// down. It fires at most once per connection, with a nil cause for an
// explicit Close and the underlying error otherwise.
func (c *UDPClientConnection) OnDisconnected(callback func(cause error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDisconnect = callback
}

// Connect binds a local ephemeral port, starts the receive loop, and sends
// the handshake datagram. It is valid only on a connection that has never
// been connected; a second call fails with ErrAlreadyConnected. A bind or
// handshake failure leaves the connection disposed.
func (c *UDPClientConnection) Connect(remoteAddr string) error {
	c.mu.Lock()
	if c.state != NotConnected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.state = Connecting
	c.mu.Unlock()

	sock, err := dialDatagram(remoteAddr)
	if err != nil {
		c.mu.Lock()
		c.state = Disconnecting
		c.mu.Unlock()

		c.logger.WithFields(logrus.Fields{
			"remote": remoteAddr,
			"error":  err,
		}).Error("connect failed")
		return newHazelError("connect", remoteAddr, err)
	}

	c.mu.Lock()
	if c.state != Connecting {
		// Closed while we were binding; never resurrect a disposed
		// connection.
		c.mu.Unlock()
		sock.close()
		return ErrNotConnected
	}
	c.sock = sock
	c.remote = sock.remoteAddr().String()
	c.state = Connected
	inbound := make(chan []byte, c.options.QueueDepth)
	c.mu.Unlock()

	go c.dispatchLoop(inbound)
	go c.receiveLoop(sock, inbound)

	c.logger.WithFields(logrus.Fields{
		"local":  sock.localAddr().String(),
		"remote": c.remote,
	}).Info("connected")

	return c.WriteBytes([]byte{handshakeByte}, SendOptionReliable)
}

// WriteBytes frames the payload with the delivery tag and sends it to the
// remote host. It fails with ErrNotConnected unless the connection is
// Connected. A transport failure is returned to the caller and also tears
// the connection down.
func (c *UDPClientConnection) WriteBytes(payload []byte, option SendOption) error {
	packet := &Packet{Option: option, Payload: payload}
	data, err := packet.Serialize()
	if err != nil {
		return err
	}

	// The state check and the send share one critical section so a
	// concurrent disconnect cannot slip a disposal between them.
	c.mu.Lock()
	if c.state != Connected {
		c.mu.Unlock()
		return ErrNotConnected
	}
	sock := c.sock
	sendErr := sock.send(data)
	c.mu.Unlock()

	if sendErr == nil {
		c.logger.WithFields(logrus.Fields{
			"bytes":  len(data),
			"option": byte(option),
		}).Debug("datagram sent")
		return nil
	}

	if isDisposed(sendErr) {
		// The socket vanished underneath us; to the caller that is
		// indistinguishable from not being connected.
		return ErrNotConnected
	}

	hazelErr := newHazelError("send", c.remote, sendErr)
	c.disconnect(hazelErr)
	return hazelErr
}

// Close tears the connection down through the same idempotent path as every
// failure trigger. It is safe to call any number of times, from any
// goroutine, concurrently with sends and receive failures.
func (c *UDPClientConnection) Close() error {
	c.disconnect(nil)
	return nil
}

// State returns the current lifecycle state.
func (c *UDPClientConnection) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LocalAddr returns the bound local address, or nil before Connect.
func (c *UDPClientConnection) LocalAddr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sock == nil {
		return nil
	}
	return c.sock.localAddr()
}

// RemoteAddr returns the resolved remote address, or nil before Connect.
func (c *UDPClientConnection) RemoteAddr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sock == nil {
		return nil
	}
	return c.sock.remoteAddr()
}

// receiveLoop keeps exactly one receive outstanding on the socket. An
// inbound payload is copied, unframed, and queued before the loop re-enters
// receive, so the engine is always listening while the data callback runs.
// The loop ends silently when the socket is disposed and routes every other
// termination through disconnect.
func (c *UDPClientConnection) receiveLoop(sock *datagramSocket, inbound chan<- []byte) {
	defer close(inbound)

	buf := make([]byte, c.options.BufferSize)
	for {
		n, err := sock.receive(buf)
		if err != nil {
			if isDisposed(err) {
				// Disposal already implies disconnect.
				return
			}
			c.logger.WithFields(logrus.Fields{
				"remote": c.remote,
				"error":  err,
			}).Warn("receive failed")
			c.disconnect(newHazelError("receive", c.remote, err))
			return
		}
		if n == 0 {
			// A zero-length receipt is the remote closing on us.
			c.disconnect(ErrConnectionClosed)
			return
		}

		// Strip the delivery tag into a right-sized buffer; buf is
		// reused by the next receive.
		payload := make([]byte, n-1)
		copy(payload, buf[1:n])
		inbound <- payload
	}
}

// dispatchLoop hands queued payloads to the data callback in arrival order,
// outside the connection guard.
func (c *UDPClientConnection) dispatchLoop(inbound <-chan []byte) {
	for payload := range inbound {
		c.mu.Lock()
		callback := c.onData
		c.mu.Unlock()

		if callback != nil {
			callback(payload)
		}
	}
}

// disconnect is the single teardown path shared by Close, send failures,
// receive failures, and zero-length receipts. The first caller to observe
// an established connection wins: it fires the notification once and
// disposes the socket once. Every other call, from any goroutine, is a
// no-op. A connection that never reached Connected still becomes terminal
// but fires no notification.
func (c *UDPClientConnection) disconnect(cause error) {
	c.mu.Lock()
	if c.state == Disconnecting {
		c.mu.Unlock()
		return
	}
	won := c.state == Connected
	c.state = Disconnecting
	sock := c.sock
	callback := c.onDisconnect
	c.mu.Unlock()

	if !won {
		return
	}

	c.logger.WithFields(logrus.Fields{
		"remote": c.remote,
		"cause":  cause,
	}).Info("disconnected")

	if callback != nil {
		callback(cause)
	}
	sock.close()
}
