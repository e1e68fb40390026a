package ke220

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// receiver states
type rxState int

const (
	rxIdle     rxState = iota // nothing received yet, polling
	rxDraining                // bytes available, reading the burst
	rxSettling                // line quiet, waiting to see if the frame continues
	rxDone                    // frame complete
)

// ReceiveFrame blocks until one frame has been received into frame. The
// module has no length prefix, a frame ends when the line stays quiet for
// FrameSettleDelay. The last byte of a frame is the RSSI byte appended by
// the module and is not part of the payload.
//
// ctx is only checked while no frame is in progress. A busy channel delays
// the read but keeps the bytes received so far. Once the line is quiet and
// the transport has failed, its error is returned.
func ReceiveFrame(ctx context.Context, ch *SharedChannel, frame *ReceivedFrame) error {
	frame.reset()
	n := 0
	state := rxIdle

	for state != rxDone {
		switch state {
		case rxIdle:
			if ch.Available() > 0 {
				state = rxDraining
				continue
			}
			if err := ch.Err(); err != nil {
				return errors.Wrap(err, "read frame")
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			ch.Sleep(PollDelay)

		case rxDraining:
			read, err := drainFrame(ch, frame, n)
			if errors.Cause(err) == ErrChannelBusy {
				// keep what was read and look at the line again
				ch.Logger.WithField("length", n).Debug("e220: channel busy, retrying read")
				if n > 0 {
					state = rxSettling
					continue
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				state = rxIdle
				continue
			}
			if err != nil {
				return err
			}
			n = read
			if n == 0 {
				// another lease holder took the bytes
				state = rxIdle
				continue
			}
			state = rxSettling

		case rxSettling:
			ch.Sleep(FrameSettleDelay)
			if ch.Available() > 0 {
				state = rxDraining
			} else {
				state = rxDone
			}
		}
	}

	frame.Length = n - 1
	frame.RSSI = int(frame.Data[n-1]) - 256

	frameReceivedCounter().Inc()
	receivedRSSIHistogram().Observe(float64(frame.RSSI))
	ch.Logger.WithFields(log.Fields{
		"length": frame.Length,
		"rssi":   frame.RSSI,
	}).Debug("e220: frame received")
	return nil
}

// drainFrame reads the current burst into frame starting at offset n.
func drainFrame(ch *SharedChannel, frame *ReceivedFrame, n int) (int, error) {
	lease, err := ch.Acquire(0)
	if err != nil {
		return n, errors.Wrap(err, "read frame")
	}
	defer lease.Release()

	for lease.Available() > 0 {
		b, err := lease.ReadByte()
		if err != nil {
			return n, errors.Wrap(err, "read frame")
		}
		if n >= MaxFrameSize {
			frameErrorCounter("frame_too_large").Inc()
			return n, errors.Wrapf(ErrFrameTooLarge, "more than %d bytes", MaxFrameSize)
		}
		frame.Data[n] = b
		n++
	}
	return n, nil
}
