package ke220

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Lora is a connection to one E220 module.
type Lora struct {
	Errors   chan ErrorEvent // read uncategorized listener errors
	Received chan Message    // read received frames once Listen was called

	channel *SharedChannel
	closer  io.Closer
	log     *log.Entry // carries the device name

	mu        sync.Mutex // protects config and the listener state below
	config    Configuration
	listenCtx context.Context
	cancel    context.CancelFunc
	closed    bool
	wg        sync.WaitGroup

	applyMu sync.Mutex // one SetConfig at a time
}

// Options tunes a connection. The zero value is usable.
type Options struct {
	Name  string // device name used in log fields
	Clock Clock  // nil uses real time
}

// CreateConnection attaches to a uart serial port, applies config and returns a Lora.
// The module must be in configuration mode (M0=M1=high), in which it talks at ConfigModeBaud.
func CreateConnection(serialInterfaceName string, baud int, config Configuration, buffLen int) (*Lora, error) {
	t, err := OpenSerial(serialInterfaceName, baud)
	if err != nil {
		return nil, err
	}
	l := NewLora(t, t, config, buffLen, Options{Name: serialInterfaceName})

	if err := l.SetConfig(config); err != nil {
		l.CloseConnection()
		return nil, errors.Wrap(err, "failed to set configuration")
	}
	return l, nil
}

// NewLora wraps an already opened transport. closer may be nil.
func NewLora(t Transport, closer io.Closer, config Configuration, buffLen int, opts Options) *Lora {
	entry := log.WithField("device", opts.Name)
	ch := NewSharedChannel(t, opts.Clock)
	ch.Logger = entry

	return &Lora{
		Errors:   make(chan ErrorEvent, buffLen),
		Received: make(chan Message, buffLen),
		channel:  ch,
		closer:   closer,
		log:      entry,
		config:   config,
	}
}

// Channel returns the shared serial channel, for callers that need raw access.
func (l *Lora) Channel() *SharedChannel {
	return l.channel
}

// Config returns the configuration last applied or given at creation.
func (l *Lora) Config() Configuration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.config
}

// SetConfig writes config to the module and keeps it for sending. A running
// listener is stopped while the module answers, so it cannot take the
// answer for a frame, and is started again afterwards.
func (l *Lora) SetConfig(config Configuration) error {
	l.applyMu.Lock()
	defer l.applyMu.Unlock()

	resume := l.pauseListener()
	defer resume()

	if err := ApplyConfig(l.channel, &config); err != nil {
		return err
	}
	l.mu.Lock()
	l.config = config
	l.mu.Unlock()
	return nil
}

// SendMessage sends data to the configured target address and channel.
func (l *Lora) SendMessage(data []byte) error {
	config := l.Config()
	if err := SendFrame(l.channel, &config, data); err != nil {
		return errors.Wrap(err, "send failed")
	}
	return nil
}

// SendTo sends data to address on channel, overriding the configured target.
func (l *Lora) SendTo(address uint16, channel uint8, data []byte) error {
	config := l.Config()
	config.TargetAddress = address
	config.TargetChannel = channel
	if err := SendFrame(l.channel, &config, data); err != nil {
		return errors.Wrapf(err, "send to %d/%d failed", address, channel)
	}
	return nil
}

// ReceiveFrame blocks for one frame, see the package level ReceiveFrame.
func (l *Lora) ReceiveFrame(ctx context.Context, frame *ReceivedFrame) error {
	return ReceiveFrame(ctx, l.channel, frame)
}

// Listen starts delivering received frames on Received and receive errors on
// Errors until ctx is done or the connection is closed. The listener also
// stops after reporting a failed serial port.
func (l *Lora) Listen(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil || l.closed {
		return
	}
	l.listenCtx = ctx
	l.startListener()
}

// startListener must be called with l.mu held.
func (l *Lora) startListener() {
	ctx, cancel := context.WithCancel(l.listenCtx)
	l.cancel = cancel

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		run(ctx, l)
	}()
}

// pauseListener stops a running listener and returns a func that starts it
// again, unless the connection was closed or the Listen context is done
// in between.
func (l *Lora) pauseListener() func() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel == nil {
		return func() {}
	}
	cancel()
	l.wg.Wait()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed || l.cancel != nil || l.listenCtx.Err() != nil || l.channel.Err() != nil {
			return
		}
		l.startListener()
	}
}

// CloseConnection stops the listener and closes the serial port.
func (l *Lora) CloseConnection() error {
	l.mu.Lock()
	l.closed = true
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var err error
	if l.closer != nil {
		err = l.closer.Close()
	}
	l.wg.Wait()
	return err
}
