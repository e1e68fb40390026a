package cmd

import (
	"encoding/hex"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Log received frames until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		lora, err := openLora(false)
		if err != nil {
			return err
		}
		defer lora.CloseConnection()

		lora.Listen(ctx)
		log.Info("listening for frames")

		for {
			select {
			case <-ctx.Done():
				return nil
			case msg := <-lora.Received:
				log.WithFields(log.Fields{
					"rssi":   msg.RSSI,
					"length": len(msg.Payload),
					"hex":    hex.EncodeToString(msg.Payload),
				}).Infof("received %q", msg.Payload)
			case <-lora.Errors:
				// already logged by the listener
			}
		}
	},
}
