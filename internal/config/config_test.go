package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	ke220 "github.com/1kharvey/k-e220"
)

func defaultRadio() RadioConfig {
	return RadioConfig{
		BaudRate:           9600,
		AirDataRate:        "BW125K_SF9",
		SubpacketSize:      200,
		RSSIAmbientNoise:   true,
		TransmittingPower:  12,
		RSSIByte:           true,
		TransmissionMethod: "p2p",
		WORCycle:           2000,
	}
}

func TestRadioConfiguration(t *testing.T) {
	c, err := defaultRadio().Configuration()
	require.NoError(t, err)
	require.Equal(t, ke220.DefaultConfiguration(), c)

	r := defaultRadio()
	r.OwnAddress = 0x1234
	r.OwnChannel = 12
	r.LBT = true
	r.EncryptionKey = 0xaa55
	r.TargetAddress = 7
	r.TargetChannel = 3
	c, err = r.Configuration()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), c.OwnAddress)
	require.Equal(t, uint8(12), c.OwnChannel)
	require.Equal(t, ke220.Enabled, c.LBT)
	require.Equal(t, uint16(0xaa55), c.EncryptionKey)
	require.Equal(t, uint16(7), c.TargetAddress)
	require.Equal(t, uint8(3), c.TargetChannel)
}

func TestRadioConfigurationErrors(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*RadioConfig)
		err    string
	}{
		{"baud rate", func(r *RadioConfig) { r.BaudRate = 300 }, "radio.baud_rate: unsupported baud rate 300"},
		{"air data rate", func(r *RadioConfig) { r.AirDataRate = "fast" }, `radio.air_data_rate: unknown air data rate "fast"`},
		{"subpacket size", func(r *RadioConfig) { r.SubpacketSize = 100 }, "radio.subpacket_size: unsupported subpacket size 100"},
		{"transmitting power", func(r *RadioConfig) { r.TransmittingPower = 30 }, "radio.transmitting_power: unsupported transmitting power 30dBm"},
		{"transmission method", func(r *RadioConfig) { r.TransmissionMethod = "" }, `radio.transmission_method: unknown transmission method ""`},
		{"wor cycle", func(r *RadioConfig) { r.WORCycle = 1 }, "radio.wor_cycle: unsupported wor cycle 1ms"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := defaultRadio()
			tc.modify(&r)
			_, err := r.Configuration()
			require.EqualError(t, err, tc.err)
		})
	}
}
