package ke220

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// Transport is the byte level access to the module's UART.
type Transport interface {
	io.Writer

	// Flush blocks until all written bytes have left the UART.
	Flush() error

	// Available returns the number of bytes that can be read without blocking.
	Available() int

	// ReadByte reads one buffered byte.
	ReadByte() (byte, error)

	// Err returns the error that stopped the transport, or nil while it can
	// still receive. Buffered bytes remain readable after a failure.
	Err() error
}

// Clock provides the blocking delays used for polling the line.
type Clock interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// SharedChannel serializes access to one Transport. Every read, write or
// flush must happen through a Lease obtained with Acquire.
type SharedChannel struct {
	AcquireTimeout time.Duration
	Logger         log.FieldLogger

	transport Transport
	clock     Clock
	sem       *semaphore.Weighted
}

// Lease is exclusive ownership of a SharedChannel until Release.
type Lease struct {
	ch       *SharedChannel
	released bool
}

// NewSharedChannel wraps t. A nil clock uses real time.
func NewSharedChannel(t Transport, clock Clock) *SharedChannel {
	if clock == nil {
		clock = realClock{}
	}
	return &SharedChannel{
		AcquireTimeout: DefaultAcquireTimeout,
		Logger:         log.StandardLogger(),
		transport:      t,
		clock:          clock,
		sem:            semaphore.NewWeighted(1),
	}
}

// Acquire waits up to timeout for the channel. A timeout <= 0 uses AcquireTimeout.
func (c *SharedChannel) Acquire(timeout time.Duration) (*Lease, error) {
	if timeout <= 0 {
		timeout = c.AcquireTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := c.sem.Acquire(ctx, 1); err != nil {
		channelAcquireTimeoutCounter().Inc()
		return nil, errors.Wrapf(ErrChannelBusy, "acquire after %s", timeout)
	}
	return &Lease{ch: c}, nil
}

// Sleep blocks for d using the channel's clock.
func (c *SharedChannel) Sleep(d time.Duration) {
	c.clock.Sleep(d)
}

// Write writes p to the transport.
func (l *Lease) Write(p []byte) (int, error) {
	if l.released {
		return 0, ErrLeaseReleased
	}
	return l.ch.transport.Write(p)
}

// Flush blocks until written bytes are sent.
func (l *Lease) Flush() error {
	if l.released {
		return ErrLeaseReleased
	}
	return l.ch.transport.Flush()
}

// Available returns the number of bytes ready to read, 0 once released.
func (l *Lease) Available() int {
	if l.released {
		return 0
	}
	return l.ch.transport.Available()
}

// ReadByte reads one available byte.
func (l *Lease) ReadByte() (byte, error) {
	if l.released {
		return 0, ErrLeaseReleased
	}
	return l.ch.transport.ReadByte()
}

// Release gives the channel back. Calling it more than once is a no-op.
func (l *Lease) Release() {
	if l.released {
		return
	}
	l.released = true
	l.ch.sem.Release(1)
}

// Available peeks at the number of buffered inbound bytes without taking
// the channel. Nothing is consumed, so pollers may call it unleased.
func (c *SharedChannel) Available() int {
	return c.transport.Available()
}

// Err returns the transport's terminal error. Like Available it needs no lease.
func (c *SharedChannel) Err() error {
	return c.transport.Err()
}
