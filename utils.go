package ke220

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// run this in a goroutine, it will quit when ctx is done or the port is gone
func run(ctx context.Context, l *Lora) {
	var frame ReceivedFrame

	for {
		err := ReceiveFrame(ctx, l.channel, &frame)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			cause := errors.Cause(err)
			if cause == ErrFrameTooLarge {
				// the rest of the oversized burst is still in the buffer, drop it
				discardPending(l)
			}
			l.log.WithError(err).Warning("e220: receive error")
			select {
			case l.Errors <- ErrorEvent{Code: nil, Err: err}:
			default:
				// channel is full, drop error
				l.log.Debug("e220: errors channel full, dropping error")
			}
			if l.channel.Err() != nil {
				// the port is gone, nothing more will arrive
				return
			}
			continue
		}

		msg := Message{
			Payload:    append([]byte(nil), frame.Payload()...),
			RSSI:       frame.RSSI,
			ReceivedAt: time.Now(),
		}
		select {
		case l.Received <- msg:
		default:
			// channel is full, drop message
			l.log.Debug("e220: received channel full, dropping message")
		}

		// a frame in progress is finished and delivered before stopping
		if ctx.Err() != nil {
			return
		}
	}
}

// discardPending drops bytes until the line has been quiet for one frame settle delay.
func discardPending(l *Lora) {
	for l.channel.Available() > 0 {
		if _, err := drain(l.channel, nil); err != nil {
			return
		}
		l.channel.Sleep(FrameSettleDelay)
	}
}
