package ke220

import (
	"io"
	"sync"
	"time"
)

// fakePort is a scripted Transport and Clock. Every Sleep releases the next
// scripted burst into the readable buffer, so tests control exactly what the
// module "sends" between two delays.
type fakePort struct {
	mu       sync.Mutex
	rx       []byte
	bursts   [][]byte
	written  []byte
	flushes  int
	consumed int
	sleeps   []time.Duration
	writeErr error
	err      error
	echo     bool        // written bytes come straight back, like the module in configuration mode
	onSleep  func(n int) // called after the n-th Sleep released its burst
}

func newFakePort(bursts ...[]byte) *fakePort {
	return &fakePort{bursts: bursts}
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.written = append(p.written, b...)
	if p.echo {
		p.rx = append(p.rx, b...)
	}
	return len(b), nil
}

func (p *fakePort) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushes++
	return nil
}

func (p *fakePort) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rx)
}

func (p *fakePort) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.rx) == 0 {
		return 0, io.EOF
	}
	b := p.rx[0]
	p.rx = p.rx[1:]
	p.consumed++
	return b, nil
}

func (p *fakePort) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// fail stops the port with err, as a vanished device would.
func (p *fakePort) fail(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func (p *fakePort) Sleep(d time.Duration) {
	p.mu.Lock()
	p.sleeps = append(p.sleeps, d)
	n := len(p.sleeps)
	idle := len(p.bursts) == 0
	if !idle {
		p.rx = append(p.rx, p.bursts[0]...)
		p.bursts = p.bursts[1:]
	}
	onSleep := p.onSleep
	p.mu.Unlock()

	if onSleep != nil {
		onSleep(n)
	}

	if idle {
		// keep listener goroutines from spinning
		time.Sleep(time.Millisecond)
	}
}

// push queues a burst that is released by a later Sleep.
func (p *fakePort) push(b []byte) {
	p.mu.Lock()
	p.bursts = append(p.bursts, b)
	p.mu.Unlock()
}

func (p *fakePort) writtenBytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.written...)
}

func (p *fakePort) consumedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consumed
}

func (p *fakePort) sleepLog() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]time.Duration(nil), p.sleeps...)
}

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func newTestChannel(p *fakePort) *SharedChannel {
	ch := NewSharedChannel(p, p)
	ch.AcquireTimeout = 50 * time.Millisecond
	return ch
}
