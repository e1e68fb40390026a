package cmd

import (
	"os"
	"text/template"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/1kharvey/k-e220/internal/config"
)

// when updating this template, keep the viper defaults in root.go in sync
const configTemplate = `[general]
# Log level
#
# debug=5, info=4, warning=3, error=2, fatal=1, panic=0
log_level={{ .General.LogLevel }}


# Serial port the module is attached to.
[serial]
# Device path (e.g. /dev/ttyUSB0, /dev/serial0).
device="{{ .Serial.Device }}"

# UART speed.
#
# Use 9600 while the module is in configuration mode, otherwise the speed
# set by radio.baud_rate.
baud={{ .Serial.Baud }}

# Maximum time an operation waits for the shared serial port.
acquire_timeout="{{ .Serial.AcquireTimeout }}"


# Module registers, written by the apply command.
[radio]
# Module address (0-65535).
own_address={{ .Radio.OwnAddress }}

# UART speed of the module in normal mode.
#
# 1200, 2400, 4800, 9600, 19200, 38400, 57600 or 115200.
baud_rate={{ .Radio.BaudRate }}

# Air data rate.
#
# BW125K_SF5 - BW125K_SF9, BW250K_SF5 - BW250K_SF10, BW500K_SF5 - BW500K_SF11.
air_data_rate="{{ .Radio.AirDataRate }}"

# Maximum payload per frame (200, 128, 64 or 32 bytes).
subpacket_size={{ .Radio.SubpacketSize }}

# Enable the ambient noise RSSI readout.
rssi_ambient_noise={{ .Radio.RSSIAmbientNoise }}

# Transmitting power in dBm (13, 12, 7 or 0).
transmitting_power={{ .Radio.TransmittingPower }}

# Channel (0-30).
own_channel={{ .Radio.OwnChannel }}

# Append the RSSI byte to received frames.
#
# Received frames are always split into payload and a trailing RSSI byte,
# keep this enabled.
rssi_byte={{ .Radio.RSSIByte }}

# Transmission method (p2p or transparent).
transmission_method="{{ .Radio.TransmissionMethod }}"

# Listen before talk.
lbt={{ .Radio.LBT }}

# Wake on radio cycle in ms (500, 1000, 1500 or 2000).
wor_cycle={{ .Radio.WORCycle }}

# Encryption key (0-65535).
encryption_key={{ .Radio.EncryptionKey }}

# Default target address and channel for outgoing frames.
target_address={{ .Radio.TargetAddress }}
target_channel={{ .Radio.TargetChannel }}


# MQTT bridge.
[mqtt]
# MQTT server (e.g. scheme://host:port where scheme is tcp, ssl or ws)
server="{{ .MQTT.Server }}"

# Connect with the given username (optional)
username="{{ .MQTT.Username }}"

# Connect with the given password (optional)
password="{{ .MQTT.Password }}"

# Quality of service level
#
# 0: at most once
# 1: at least once
# 2: exactly once
qos={{ .MQTT.QOS }}

# Clean session
clean_session={{ .MQTT.CleanSession }}

# Client ID
#
# Derived from the machine id when left blank.
client_id="{{ .MQTT.ClientID }}"

# Topic template received frames are published to.
uplink_topic_template="{{ .MQTT.UplinkTopic }}"

# Topic template to subscribe to for frames to send.
downlink_topic_template="{{ .MQTT.DownlinkTopic }}"


# Prometheus metrics.
[monitoring]
# IP:port to bind the /metrics endpoint to (e.g. 0.0.0.0:8080), blank disables it.
bind="{{ .Monitoring.Bind }}"
`

var configCmd = &cobra.Command{
	Use:   "configfile",
	Short: "Print the k-e220 configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := template.Must(template.New("config").Parse(configTemplate))
		err := t.Execute(os.Stdout, &config.C)
		if err != nil {
			return errors.Wrap(err, "execute config template error")
		}
		return nil
	},
}
