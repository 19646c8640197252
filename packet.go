package hazel

import (
	"errors"
)

// SendOption is the one-byte delivery tag prefixed to every datagram. Its
// value tells the reliability layer above this one how the payload should be
// handled; this package carries it verbatim and never interprets it.
type SendOption byte

const (
	// SendOptionNone requests plain fire-and-forget delivery.
	SendOptionNone SendOption = 0

	// SendOptionReliable requests acknowledged delivery from the layer above.
	SendOptionReliable SendOption = 1
)

// Packet represents one framed datagram: a delivery tag and an opaque payload.
type Packet struct {
	Option  SendOption
	Payload []byte
}

// Serialize converts a packet to a byte slice for transmission.
func (p *Packet) Serialize() ([]byte, error) {
	if p.Payload == nil {
		return nil, errors.New("packet payload is nil")
	}

	// Format: [delivery tag (1 byte)][payload (variable length)]
	result := make([]byte, 1+len(p.Payload))
	result[0] = byte(p.Option)
	copy(result[1:], p.Payload)

	return result, nil
}

// ParsePacket converts a received byte slice to a Packet structure. The
// payload is copied into a right-sized buffer so the caller may reuse data.
func ParsePacket(data []byte) (*Packet, error) {
	if len(data) < 1 {
		return nil, errors.New("packet too short")
	}

	packet := &Packet{
		Option:  SendOption(data[0]),
		Payload: make([]byte, len(data)-1),
	}

	copy(packet.Payload, data[1:])

	return packet, nil
}
