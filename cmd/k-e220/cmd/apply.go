package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/1kharvey/k-e220/internal/config"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Write the radio configuration to the module",
	Long: `Write the [radio] section of the configuration to the module registers.
The module must be in configuration mode (M0 and M1 high), serial.baud must be 9600.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lora, err := openLora(true)
		if err != nil {
			return err
		}
		defer lora.CloseConnection()

		c := lora.Config()
		log.WithFields(log.Fields{
			"device":              config.C.Serial.Device,
			"own_address":         c.OwnAddress,
			"own_channel":         c.OwnChannel,
			"baud_rate":           c.BaudRate,
			"air_data_rate":       c.AirDataRate,
			"subpacket_size":      c.SubpacketSize,
			"transmitting_power":  c.TransmittingPower,
			"transmission_method": c.TransmissionMethod,
			"wor_cycle":           c.WORCycle,
		}).Info("radio configuration written")
		return nil
	},
}
