package hazel

import (
	"net"
	"sync"
	"testing"
	"time"
)

// mockPeer is a loopback UDP endpoint standing in for the remote host. It
// records every datagram it receives and can send datagrams back to the
// most recent sender, which is how it learns the client's ephemeral port.
//
// The read goroutine exits automatically when close() is called, so no
// separate cleanup is needed.
type mockPeer struct {
	conn net.PacketConn

	mu       sync.Mutex
	received [][]byte
	sender   net.Addr
}

// startMockPeer starts a mock peer on a random loopback port.
func startMockPeer(t *testing.T) *mockPeer {
	t.Helper()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start mock peer: %v", err)
	}

	p := &mockPeer{conn: conn}

	go func() {
		buf := make([]byte, 2048)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return // listener closed
			}
			data := make([]byte, n)
			copy(data, buf[:n])

			p.mu.Lock()
			p.received = append(p.received, data)
			p.sender = addr
			p.mu.Unlock()
		}
	}()

	t.Cleanup(p.close)
	return p
}

func (p *mockPeer) addr() string {
	return p.conn.LocalAddr().String()
}

func (p *mockPeer) close() {
	p.conn.Close()
}

// waitForDatagrams blocks until the peer has received at least n datagrams
// and returns a snapshot of everything received so far.
func (p *mockPeer) waitForDatagrams(t *testing.T, n int) [][]byte {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		if len(p.received) >= n {
			snapshot := make([][]byte, len(p.received))
			copy(snapshot, p.received)
			p.mu.Unlock()
			return snapshot
		}
		p.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %d datagrams", n)
	return nil
}

// sendToClient sends one datagram back to the most recent sender. A nil or
// empty payload sends a zero-length datagram, which the connection treats
// as a remote close.
func (p *mockPeer) sendToClient(t *testing.T, data []byte) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		sender := p.sender
		p.mu.Unlock()

		if sender != nil {
			if _, err := p.conn.WriteTo(data, sender); err != nil {
				t.Fatalf("mock peer send failed: %v", err)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("mock peer never learned the client address")
}
