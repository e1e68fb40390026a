package ke220

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MaxPayloadSize returns the largest payload the module sends in one burst.
// Unknown values fall back to 200 bytes.
func MaxPayloadSize(s SubpacketSize) int {
	switch s {
	case Subpacket128:
		return 128
	case Subpacket64:
		return 64
	case Subpacket32:
		return 32
	default:
		return 200
	}
}

// SendFrame sends payload to config's target address and channel. Whatever
// the module echoes back is read and discarded. A nil error only means the
// frame was handed to the module.
func SendFrame(ch *SharedChannel, config *Configuration, payload []byte) error {
	if limit := MaxPayloadSize(config.SubpacketSize); len(payload) > limit {
		frameErrorCounter("payload_too_large").Inc()
		return errors.Wrapf(ErrPayloadTooLarge, "payload length %d exceeds maximum of %d bytes", len(payload), limit)
	}

	frame := make([]byte, 0, HeaderLength+len(payload))
	frame = append(frame,
		byte(config.TargetAddress>>8),
		byte(config.TargetAddress&0xff),
		config.TargetChannel,
	)
	frame = append(frame, payload...)

	lease, err := ch.Acquire(0)
	if err != nil {
		return errors.Wrap(err, "send frame")
	}
	defer lease.Release()

	ch.Logger.WithFields(log.Fields{
		"target_address": config.TargetAddress,
		"target_channel": config.TargetChannel,
		"length":         len(payload),
	}).Debug("e220: sending frame")

	if _, err := lease.Write(frame); err != nil {
		return errors.Wrap(err, "write frame")
	}
	if err := lease.Flush(); err != nil {
		return errors.Wrap(err, "flush frame")
	}

	ch.Sleep(SettleDelay)
	discarded := 0
	for lease.Available() > 0 {
		for lease.Available() > 0 {
			if _, err := lease.ReadByte(); err != nil {
				return errors.Wrap(err, "discard echo")
			}
			discarded++
		}
		ch.Sleep(SettleDelay)
	}
	if discarded > 0 {
		ch.Logger.WithField("bytes", discarded).Debug("e220: discarded module echo")
	}

	frameSentCounter().Inc()
	return nil
}
