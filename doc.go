// Package hazel implements the client side of a lightweight UDP connection
// protocol for latency-sensitive peer-to-peer applications.
//
// A connection is a single logical link to one remote host carried over raw
// datagrams. Every datagram is framed with a one-byte delivery tag that a
// higher reliability layer interprets; this package moves opaque framed
// payloads in and out and reports connection health, nothing more.
//
// # Getting Started
//
// Create a connection, register callbacks, then connect:
//
//	conn := hazel.NewUDPClientConnection(hazel.NewOptions())
//
//	conn.OnDataReceived(func(payload []byte) {
//	    fmt.Printf("received %d bytes\n", len(payload))
//	})
//
//	conn.OnDisconnected(func(cause error) {
//	    fmt.Println("disconnected:", cause)
//	})
//
//	if err := conn.Connect("game.example.com:22023"); err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	err := conn.WriteBytes([]byte("hello"), hazel.SendOptionReliable)
//
// Reliability semantics (acknowledgement, retransmission, ordering) are the
// responsibility of the layer above: the delivery tag is prefixed verbatim
// on send and stripped unconditionally on receive.
package hazel
