package ke220

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is returned when the own channel is outside 0-30.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrEchoMismatch is returned when the module's answer to a register
	// write is not as long as the command.
	ErrEchoMismatch = errors.New("echo mismatch")
	// ErrFrameTooLarge is returned when more than MaxFrameSize bytes arrive
	// before the line goes quiet.
	ErrFrameTooLarge = errors.New("frame too large")
	// ErrPayloadTooLarge is returned when a payload exceeds the configured
	// subpacket size.
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrChannelBusy is returned when the serial channel could not be
	// acquired in time.
	ErrChannelBusy = errors.New("channel busy")
	// ErrLeaseReleased is returned by Lease methods called after Release.
	ErrLeaseReleased = errors.New("lease released")
)
