// Package bridge forwards frames between an E220 module and an MQTT broker.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"
	"text/template"
	"time"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	ke220 "github.com/1kharvey/k-e220"
)

// Config holds the MQTT bridge configuration.
type Config struct {
	Server                string
	Username              string
	Password              string
	QOS                   uint8
	CleanSession          bool
	ClientID              string
	UplinkTopicTemplate   string
	DownlinkTopicTemplate string
}

// Radio is the part of ke220.Lora used by the bridge.
type Radio interface {
	Config() ke220.Configuration
	SendTo(address uint16, channel uint8, data []byte) error
}

// Uplink is the JSON payload published for every received frame.
type Uplink struct {
	Data       []byte    `json:"data"`
	RSSI       int       `json:"rssi"`
	ReceivedAt time.Time `json:"received_at"`
}

// Downlink is the JSON payload expected on the downlink topic. Missing
// target fields fall back to the radio's configured target.
type Downlink struct {
	Data          []byte  `json:"data"`
	TargetAddress *uint16 `json:"target_address,omitempty"`
	TargetChannel *uint8  `json:"target_channel,omitempty"`
}

// Backend implements the MQTT side of the bridge.
type Backend struct {
	wg     sync.WaitGroup
	config Config
	radio  Radio
	conn   paho.Client

	uplinkTopic   string
	downlinkTopic string
}

// NewBackend connects to the broker, retrying until ctx is done.
func NewBackend(ctx context.Context, radio Radio, c Config) (*Backend, error) {
	b := Backend{
		config: c,
		radio:  radio,
	}

	var err error
	address := radio.Config().OwnAddress
	if b.uplinkTopic, err = renderTopic(c.UplinkTopicTemplate, address); err != nil {
		return nil, errors.Wrap(err, "bridge: parse uplink template error")
	}
	if b.downlinkTopic, err = renderTopic(c.DownlinkTopicTemplate, address); err != nil {
		return nil, errors.Wrap(err, "bridge: parse downlink template error")
	}

	if b.config.ClientID == "" {
		b.config.ClientID = DefaultClientID()
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(b.config.Server)
	opts.SetUsername(b.config.Username)
	opts.SetPassword(b.config.Password)
	opts.SetCleanSession(b.config.CleanSession)
	opts.SetClientID(b.config.ClientID)
	opts.SetOnConnectHandler(b.onConnected)
	opts.SetConnectionLostHandler(b.onConnectionLost)

	log.WithFields(log.Fields{
		"server":    b.config.Server,
		"client_id": b.config.ClientID,
	}).Info("bridge: connecting to mqtt broker")
	b.conn = paho.NewClient(opts)
	for {
		token := b.conn.Connect()
		if token.Wait() && token.Error() == nil {
			break
		}
		log.Errorf("bridge: connecting to mqtt broker failed, will retry in 2s: %s", token.Error())
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	return &b, nil
}

// DefaultClientID derives a stable client id from the machine id.
func DefaultClientID() string {
	id, err := machineid.ProtectedID("k-e220")
	if err != nil {
		hostname, _ := os.Hostname()
		return "k-e220-" + hostname
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return "k-e220-" + id
}

// Run publishes every message until msgs is closed or ctx is done.
func (b *Backend) Run(ctx context.Context, msgs <-chan ke220.Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := b.PublishUplink(msg); err != nil {
				log.WithError(err).Error("bridge: publish uplink error")
			}
		}
	}
}

// PublishUplink publishes one received frame.
func (b *Backend) PublishUplink(msg ke220.Message) error {
	bb, err := encodeUplink(msg)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"topic": b.uplinkTopic,
		"qos":   b.config.QOS,
		"rssi":  msg.RSSI,
	}).Info("bridge: publishing uplink")

	if token := b.conn.Publish(b.uplinkTopic, b.config.QOS, false, bb); token.Wait() && token.Error() != nil {
		return errors.Wrap(token.Error(), "bridge: publish uplink error")
	}
	mqttPublishCounter().Inc()
	return nil
}

// Close unsubscribes, waits for pending downlinks and disconnects.
func (b *Backend) Close() error {
	log.Info("bridge: closing backend")

	log.WithField("topic", b.downlinkTopic).Info("bridge: unsubscribing from downlink topic")
	if token := b.conn.Unsubscribe(b.downlinkTopic); token.Wait() && token.Error() != nil {
		return errors.Wrapf(token.Error(), "bridge: unsubscribe from %s error", b.downlinkTopic)
	}

	b.wg.Wait()
	b.conn.Disconnect(250)
	return nil
}

func (b *Backend) onConnected(c paho.Client) {
	mqttConnectCounter().Inc()
	log.Info("bridge: connected to mqtt broker")

	for {
		log.WithFields(log.Fields{
			"topic": b.downlinkTopic,
			"qos":   b.config.QOS,
		}).Info("bridge: subscribing to downlink topic")
		if token := c.Subscribe(b.downlinkTopic, b.config.QOS, b.downlinkHandler); token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).WithField("topic", b.downlinkTopic).Error("bridge: subscribe error")
			time.Sleep(time.Second)
			continue
		}
		return
	}
}

func (b *Backend) onConnectionLost(c paho.Client, reason error) {
	mqttDisconnectCounter().Inc()
	log.WithError(reason).Error("bridge: mqtt connection error")
}

func (b *Backend) downlinkHandler(c paho.Client, msg paho.Message) {
	b.wg.Add(1)
	defer b.wg.Done()

	if err := b.handleDownlink(msg.Payload()); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Error("bridge: handle downlink error")
	}
}

func (b *Backend) handleDownlink(payload []byte) error {
	mqttDownlinkCounter().Inc()

	var dl Downlink
	if err := json.Unmarshal(payload, &dl); err != nil {
		return errors.Wrap(err, "unmarshal downlink error")
	}

	config := b.radio.Config()
	address, channel := config.TargetAddress, config.TargetChannel
	if dl.TargetAddress != nil {
		address = *dl.TargetAddress
	}
	if dl.TargetChannel != nil {
		channel = *dl.TargetChannel
	}

	log.WithFields(log.Fields{
		"target_address": address,
		"target_channel": channel,
		"length":         len(dl.Data),
	}).Info("bridge: sending downlink")
	return b.radio.SendTo(address, channel, dl.Data)
}

func encodeUplink(msg ke220.Message) ([]byte, error) {
	bb, err := json.Marshal(Uplink{
		Data:       msg.Payload,
		RSSI:       msg.RSSI,
		ReceivedAt: msg.ReceivedAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal uplink error")
	}
	return bb, nil
}

func renderTopic(tmpl string, address uint16) (string, error) {
	t, err := template.New("topic").Parse(tmpl)
	if err != nil {
		return "", err
	}
	topic := bytes.NewBuffer(nil)
	if err := t.Execute(topic, struct{ Address uint16 }{address}); err != nil {
		return "", err
	}
	return topic.String(), nil
}
