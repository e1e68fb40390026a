package config

import (
	"time"

	"github.com/pkg/errors"

	ke220 "github.com/1kharvey/k-e220"
)

// Version defines the k-e220 version.
var Version string

// Config defines the configuration structure.
type Config struct {
	General struct {
		LogLevel int `mapstructure:"log_level"`
	} `mapstructure:"general"`

	Serial struct {
		Device         string        `mapstructure:"device"`
		Baud           int           `mapstructure:"baud"`
		AcquireTimeout time.Duration `mapstructure:"acquire_timeout"`
	} `mapstructure:"serial"`

	Radio RadioConfig `mapstructure:"radio"`

	MQTT struct {
		Server        string `mapstructure:"server"`
		Username      string `mapstructure:"username"`
		Password      string `mapstructure:"password"`
		QOS           uint8  `mapstructure:"qos"`
		CleanSession  bool   `mapstructure:"clean_session"`
		ClientID      string `mapstructure:"client_id"`
		UplinkTopic   string `mapstructure:"uplink_topic_template"`
		DownlinkTopic string `mapstructure:"downlink_topic_template"`
	} `mapstructure:"mqtt"`

	Monitoring struct {
		Bind string `mapstructure:"bind"`
	} `mapstructure:"monitoring"`
}

// RadioConfig holds the module registers in human units.
type RadioConfig struct {
	OwnAddress         uint16 `mapstructure:"own_address"`
	BaudRate           int    `mapstructure:"baud_rate"`
	AirDataRate        string `mapstructure:"air_data_rate"`
	SubpacketSize      int    `mapstructure:"subpacket_size"`
	RSSIAmbientNoise   bool   `mapstructure:"rssi_ambient_noise"`
	TransmittingPower  int    `mapstructure:"transmitting_power"`
	OwnChannel         uint8  `mapstructure:"own_channel"`
	RSSIByte           bool   `mapstructure:"rssi_byte"`
	TransmissionMethod string `mapstructure:"transmission_method"`
	LBT                bool   `mapstructure:"lbt"`
	WORCycle           int    `mapstructure:"wor_cycle"`
	EncryptionKey      uint16 `mapstructure:"encryption_key"`
	TargetAddress      uint16 `mapstructure:"target_address"`
	TargetChannel      uint8  `mapstructure:"target_channel"`
}

// C holds the global configuration.
var C Config

// Configuration converts the radio section to the module's register values.
func (r RadioConfig) Configuration() (ke220.Configuration, error) {
	var err error
	c := ke220.Configuration{
		OwnAddress:       r.OwnAddress,
		RSSIAmbientNoise: ke220.FlagFrom(r.RSSIAmbientNoise),
		OwnChannel:       r.OwnChannel,
		RSSIByte:         ke220.FlagFrom(r.RSSIByte),
		LBT:              ke220.FlagFrom(r.LBT),
		EncryptionKey:    r.EncryptionKey,
		TargetAddress:    r.TargetAddress,
		TargetChannel:    r.TargetChannel,
	}

	if c.BaudRate, err = ke220.ParseBaudRate(r.BaudRate); err != nil {
		return c, errors.Wrap(err, "radio.baud_rate")
	}
	if c.AirDataRate, err = ke220.ParseAirDataRate(r.AirDataRate); err != nil {
		return c, errors.Wrap(err, "radio.air_data_rate")
	}
	if c.SubpacketSize, err = ke220.ParseSubpacketSize(r.SubpacketSize); err != nil {
		return c, errors.Wrap(err, "radio.subpacket_size")
	}
	if c.TransmittingPower, err = ke220.ParseTransmittingPower(r.TransmittingPower); err != nil {
		return c, errors.Wrap(err, "radio.transmitting_power")
	}
	if c.TransmissionMethod, err = ke220.ParseTransmissionMethod(r.TransmissionMethod); err != nil {
		return c, errors.Wrap(err, "radio.transmission_method")
	}
	if c.WORCycle, err = ke220.ParseWORCycle(r.WORCycle); err != nil {
		return c, errors.Wrap(err, "radio.wor_cycle")
	}

	return c, nil
}
