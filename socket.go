package hazel

import (
	"errors"
	"net"
	"sync"
)

// datagramSocket owns one connected UDP socket exclusively. It exposes only
// the operations the connection core needs and never leaks the underlying
// handle, so every access is forced through the connection's guard.
type datagramSocket struct {
	conn net.Conn

	closeOnce sync.Once
	closeErr  error
}

// dialDatagram binds a local ephemeral port and associates the socket with
// the remote address, so reads only deliver datagrams from that peer and
// writes need no per-call destination.
func dialDatagram(remoteAddr string) (*datagramSocket, error) {
	conn, err := net.Dial("udp", remoteAddr)
	if err != nil {
		return nil, err
	}
	return &datagramSocket{conn: conn}, nil
}

func (s *datagramSocket) send(data []byte) error {
	_, err := s.conn.Write(data)
	return err
}

// receive blocks until a datagram arrives and returns the number of bytes
// stored in buf. A datagram larger than buf is truncated by the platform.
func (s *datagramSocket) receive(buf []byte) (int, error) {
	return s.conn.Read(buf)
}

func (s *datagramSocket) localAddr() net.Addr {
	return s.conn.LocalAddr()
}

func (s *datagramSocket) remoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

// close releases the socket. Only the first call reaches the platform;
// later calls return the first call's result.
func (s *datagramSocket) close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

// isDisposed reports whether err is the benign signal that the socket has
// already been released. Such errors are swallowed, never surfaced.
func isDisposed(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
