package hazel

import (
	"github.com/sirupsen/logrus"
)

// Options contains construction-time configuration for a connection.
type Options struct {
	// BufferSize is the size of the receive buffer in bytes. Datagrams
	// larger than this are truncated by the platform, so it should be at
	// least the largest datagram a peer may send.
	BufferSize int

	// QueueDepth is the number of inbound payloads that may be queued
	// between the receive loop and the data callback before the receive
	// loop applies backpressure.
	QueueDepth int

	// Logger receives structured log output. Defaults to the logrus
	// standard logger.
	Logger *logrus.Logger
}

// NewOptions creates an Options struct with sensible defaults.
func NewOptions() *Options {
	return &Options{
		BufferSize: 65535, // maximum UDP datagram size
		QueueDepth: 64,
		Logger:     logrus.StandardLogger(),
	}
}
