package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pc = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_mqtt_uplink_publish_count",
		Help: "The number of received frames published to the MQTT broker.",
	})

	dc = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_mqtt_downlink_count",
		Help: "The number of downlink messages received from the MQTT broker.",
	})

	mqttc = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_mqtt_connect_count",
		Help: "The number of times the bridge connected to the MQTT broker.",
	})

	mqttd = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_mqtt_disconnect_count",
		Help: "The number of times the bridge disconnected from the MQTT broker.",
	})
)

func mqttPublishCounter() prometheus.Counter {
	return pc
}

func mqttDownlinkCounter() prometheus.Counter {
	return dc
}

func mqttConnectCounter() prometheus.Counter {
	return mqttc
}

func mqttDisconnectCounter() prometheus.Counter {
	return mqttd
}
