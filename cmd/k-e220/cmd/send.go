package cmd

import (
	"encoding/hex"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	sendHex     bool
	sendAddress int
	sendChannel int
)

var sendCmd = &cobra.Command{
	Use:   "send [payload]",
	Short: "Send one frame",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := []byte(args[0])
		if sendHex {
			var err error
			if payload, err = hex.DecodeString(args[0]); err != nil {
				return errors.Wrap(err, "decode hex payload error")
			}
		}

		lora, err := openLora(false)
		if err != nil {
			return err
		}
		defer lora.CloseConnection()

		c := lora.Config()
		if sendAddress >= 0 {
			c.TargetAddress = uint16(sendAddress)
		}
		if sendChannel >= 0 {
			c.TargetChannel = uint8(sendChannel)
		}
		if err := lora.SendTo(c.TargetAddress, c.TargetChannel, payload); err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"target_address": c.TargetAddress,
			"target_channel": c.TargetChannel,
			"length":         len(payload),
		}).Info("frame sent")
		return nil
	},
}

func init() {
	sendCmd.Flags().BoolVar(&sendHex, "hex", false, "payload is hex encoded")
	sendCmd.Flags().IntVar(&sendAddress, "address", -1, "target address, overrides radio.target_address")
	sendCmd.Flags().IntVar(&sendChannel, "channel", -1, "target channel, overrides radio.target_channel")
}
