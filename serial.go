package ke220

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// StreamTransport buffers a byte stream in the background so that the
// receive logic can ask how many bytes are available without blocking.
type StreamTransport struct {
	rwc io.ReadWriteCloser

	mu  sync.Mutex
	rx  []byte
	err error // read error that stopped the background reader
}

// drainer is implemented by serial ports that can wait for the output buffer to empty.
type drainer interface {
	Drain() error
}

// OpenSerial opens a UART at baud, 8N1.
func OpenSerial(device string, baud int) (*StreamTransport, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "open serial port %s", device)
	}
	return NewStreamTransport(port), nil
}

// NewStreamTransport starts buffering rwc in the background.
func NewStreamTransport(rwc io.ReadWriteCloser) *StreamTransport {
	t := &StreamTransport{rwc: rwc}
	go t.readLoop()
	return t
}

// run this in a goroutine, it quits when the stream is closed
func (t *StreamTransport) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := t.rwc.Read(buf)
		if n > 0 {
			t.mu.Lock()
			t.rx = append(t.rx, buf[:n]...)
			t.mu.Unlock()
		}
		if err != nil {
			t.mu.Lock()
			t.err = err
			t.mu.Unlock()
			return
		}
	}
}

// Write implements Transport.
func (t *StreamTransport) Write(p []byte) (int, error) {
	return t.rwc.Write(p)
}

// Flush implements Transport.
func (t *StreamTransport) Flush() error {
	if d, ok := t.rwc.(drainer); ok {
		return d.Drain()
	}
	return nil
}

// Available implements Transport.
func (t *StreamTransport) Available() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rx)
}

// ReadByte implements Transport. Once the buffer is empty it returns the
// error that stopped the reader, or io.EOF if it is still running.
func (t *StreamTransport) ReadByte() (byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.rx) == 0 {
		if t.err != nil {
			return 0, t.err
		}
		return 0, io.EOF
	}
	b := t.rx[0]
	t.rx = t.rx[1:]
	return b, nil
}

// Err implements Transport.
func (t *StreamTransport) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Close closes the underlying stream.
func (t *StreamTransport) Close() error {
	return t.rwc.Close()
}
