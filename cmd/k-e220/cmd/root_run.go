package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	ke220 "github.com/1kharvey/k-e220"
	"github.com/1kharvey/k-e220/internal/bridge"
	"github.com/1kharvey/k-e220/internal/config"
)

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	tasks := []func() error{
		printStartMessage,
		setupMonitoring,
	}
	for _, t := range tasks {
		if err := t(); err != nil {
			log.Fatal(err)
		}
	}

	lora, err := openLora(false)
	if err != nil {
		return err
	}
	defer lora.CloseConnection()

	backend, err := bridge.NewBackend(ctx, lora, bridge.Config{
		Server:                config.C.MQTT.Server,
		Username:              config.C.MQTT.Username,
		Password:              config.C.MQTT.Password,
		QOS:                   config.C.MQTT.QOS,
		CleanSession:          config.C.MQTT.CleanSession,
		ClientID:              config.C.MQTT.ClientID,
		UplinkTopicTemplate:   config.C.MQTT.UplinkTopic,
		DownlinkTopicTemplate: config.C.MQTT.DownlinkTopic,
	})
	if err != nil {
		return errors.Wrap(err, "setup mqtt bridge error")
	}

	lora.Listen(ctx)
	go discardErrors(ctx, lora)

	err = backend.Run(ctx, lora.Received)
	log.Info("signal received, stopping")
	if cerr := backend.Close(); cerr != nil {
		log.WithError(cerr).Error("close mqtt bridge error")
	}
	if err == context.Canceled {
		return nil
	}
	return err
}

func printStartMessage() error {
	log.WithFields(log.Fields{
		"version": version,
		"device":  config.C.Serial.Device,
		"channel": config.C.Radio.OwnChannel,
		"address": config.C.Radio.OwnAddress,
	}).Info("starting k-e220")
	return nil
}

func setupMonitoring() error {
	if config.C.Monitoring.Bind == "" {
		return nil
	}

	log.WithFields(log.Fields{
		"bind": config.C.Monitoring.Bind,
	}).Info("monitoring: setting up monitoring endpoint")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := http.Server{
		Handler: mux,
		Addr:    config.C.Monitoring.Bind,
	}

	go func() {
		err := server.ListenAndServe()
		log.WithError(err).Error("monitoring: monitoring server error")
	}()
	return nil
}

// openLora opens the serial device, optionally writing the radio configuration first.
func openLora(apply bool) (*ke220.Lora, error) {
	radio, err := config.C.Radio.Configuration()
	if err != nil {
		return nil, errors.Wrap(err, "radio configuration error")
	}

	t, err := ke220.OpenSerial(config.C.Serial.Device, config.C.Serial.Baud)
	if err != nil {
		return nil, err
	}

	lora := ke220.NewLora(t, t, radio, 16, ke220.Options{Name: config.C.Serial.Device})
	if config.C.Serial.AcquireTimeout > 0 {
		lora.Channel().AcquireTimeout = config.C.Serial.AcquireTimeout
	}

	if apply {
		if err := lora.SetConfig(radio); err != nil {
			lora.CloseConnection()
			return nil, errors.Wrap(err, "apply radio configuration error")
		}
	}
	return lora, nil
}

// discardErrors empties the error channel, the listener already logs them.
func discardErrors(ctx context.Context, lora *ke220.Lora) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-lora.Errors:
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
