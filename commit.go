package ke220

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ApplyConfig writes the configuration registers and checks that the module
// answered with as many bytes as were sent. The answer's content is not
// compared. The module must be in configuration mode.
func ApplyConfig(ch *SharedChannel, config *Configuration) error {
	if !ValidateChannel(int(config.OwnChannel)) {
		configApplyCounter("invalid").Inc()
		return errors.Wrapf(ErrInvalidConfig, "own channel %d not in 0-%d", config.OwnChannel, MaxChannel)
	}

	command := EncodeCommand(config)
	ch.Logger.WithField("bytes", command[:]).Debug("e220: writing configuration registers")

	lease, err := ch.Acquire(0)
	if err != nil {
		configApplyCounter("busy").Inc()
		return errors.Wrap(err, "write command")
	}
	if _, err := lease.Write(command[:]); err != nil {
		lease.Release()
		return errors.Wrap(err, "write command")
	}
	err = lease.Flush()
	lease.Release()
	if err != nil {
		return errors.Wrap(err, "flush command")
	}

	ch.Sleep(SettleDelay)

	response, err := drain(ch, nil)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	ch.Logger.WithField("bytes", response).Debug("e220: configuration response")

	if len(response) != len(command) {
		configApplyCounter("echo_mismatch").Inc()
		return errors.Wrapf(ErrEchoMismatch, "sent %d bytes, got %d", len(command), len(response))
	}

	configApplyCounter("ok").Inc()
	ch.Logger.WithFields(log.Fields{
		"address":   config.OwnAddress,
		"channel":   config.OwnChannel,
		"baud_rate": config.BaudRate,
		"air_rate":  config.AirDataRate,
	}).Info("e220: configuration applied")
	return nil
}

// drain reads every available byte under a single lease and appends them to buf.
func drain(ch *SharedChannel, buf []byte) ([]byte, error) {
	if ch.Available() == 0 {
		return buf, nil
	}
	lease, err := ch.Acquire(0)
	if err != nil {
		return buf, err
	}
	defer lease.Release()

	for lease.Available() > 0 {
		b, err := lease.ReadByte()
		if err != nil {
			return buf, err
		}
		buf = append(buf, b)
	}
	return buf, nil
}
