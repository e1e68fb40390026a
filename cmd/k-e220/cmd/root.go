package cmd

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/1kharvey/k-e220/internal/config"
)

var (
	cfgFile string
	version string
)

var rootCmd = &cobra.Command{
	Use:   "k-e220",
	Short: "E220 LoRa module MQTT bridge",
	Long: `k-e220 configures an E220-900T22S(JP) LoRa module over its UART and
bridges the frames it sends and receives to an MQTT broker.`,
	RunE: run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (optional)")
	rootCmd.PersistentFlags().Int("log-level", 4, "debug=5, info=4, error=2, fatal=1, panic=0")
	rootCmd.PersistentFlags().String("device", "", "serial device, overrides serial.device")

	viper.BindPFlag("general.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("serial.device", rootCmd.PersistentFlags().Lookup("device"))

	// default values
	viper.SetDefault("serial.device", "/dev/ttyUSB0")
	viper.SetDefault("serial.baud", 9600)
	viper.SetDefault("serial.acquire_timeout", 100*time.Millisecond)

	viper.SetDefault("radio.own_address", 0)
	viper.SetDefault("radio.baud_rate", 9600)
	viper.SetDefault("radio.air_data_rate", "BW125K_SF9")
	viper.SetDefault("radio.subpacket_size", 200)
	viper.SetDefault("radio.rssi_ambient_noise", true)
	viper.SetDefault("radio.transmitting_power", 12)
	viper.SetDefault("radio.own_channel", 0)
	viper.SetDefault("radio.rssi_byte", true)
	viper.SetDefault("radio.transmission_method", "p2p")
	viper.SetDefault("radio.lbt", false)
	viper.SetDefault("radio.wor_cycle", 2000)
	viper.SetDefault("radio.encryption_key", 0)
	viper.SetDefault("radio.target_address", 0)
	viper.SetDefault("radio.target_channel", 0)

	viper.SetDefault("mqtt.server", "tcp://localhost:1883")
	viper.SetDefault("mqtt.qos", 0)
	viper.SetDefault("mqtt.clean_session", true)
	viper.SetDefault("mqtt.uplink_topic_template", "e220/{{ .Address }}/rx")
	viper.SetDefault("mqtt.downlink_topic_template", "e220/{{ .Address }}/tx")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(listenCmd)
}

// Execute executes the root command.
func Execute(v string) {
	version = v
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func initConfig() {
	config.Version = version

	if cfgFile != "" {
		b, err := os.ReadFile(cfgFile)
		if err != nil {
			log.WithError(err).WithField("config", cfgFile).Fatal("error loading config file")
		}
		viper.SetConfigType("toml")
		if err := viper.ReadConfig(bytes.NewBuffer(b)); err != nil {
			log.WithError(err).WithField("config", cfgFile).Fatal("error loading config file")
		}
	} else {
		viper.SetConfigName("k-e220")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/k-e220")
		viper.AddConfigPath("/etc/k-e220")
		if err := viper.ReadInConfig(); err != nil {
			switch err.(type) {
			case viper.ConfigFileNotFoundError:
				log.Warning("No configuration file found, using defaults.")
			default:
				log.WithError(err).Fatal("read configuration file error")
			}
		}
	}

	viperBindEnvs(config.C)

	viperHooks := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)

	if err := viper.Unmarshal(&config.C, viper.DecodeHook(viperHooks)); err != nil {
		log.WithError(err).Fatal("unmarshal config error")
	}

	log.SetLevel(log.Level(uint8(config.C.General.LogLevel)))
}

func viperBindEnvs(iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			tv = strings.ToLower(t.Name)
		}
		if tv == "-" {
			continue
		}

		switch v.Kind() {
		case reflect.Struct:
			viperBindEnvs(v.Interface(), append(parts, tv)...)
		default:
			// Bash doesn't allow env variable names with a dot so
			// bind the double underscore version.
			keyDot := strings.Join(append(parts, tv), ".")
			keyUnderscore := strings.Join(append(parts, tv), "__")
			viper.BindEnv(keyDot, "E220_"+strings.ToUpper(keyUnderscore))
		}
	}
}
