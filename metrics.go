package ke220

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cac = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "e220_config_apply_count",
		Help: "The number of configuration writes to the module (per result).",
	}, []string{"result"})

	fsc = promauto.NewCounter(prometheus.CounterOpts{
		Name: "e220_frame_sent_count",
		Help: "The number of frames handed to the module for transmission.",
	})

	frc = promauto.NewCounter(prometheus.CounterOpts{
		Name: "e220_frame_received_count",
		Help: "The number of frames received from the module.",
	})

	fec = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "e220_frame_error_count",
		Help: "The number of failed frame operations (per error).",
	}, []string{"error"})

	atc = promauto.NewCounter(prometheus.CounterOpts{
		Name: "e220_channel_acquire_timeout_count",
		Help: "The number of times the serial channel could not be acquired in time.",
	})

	rssih = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "e220_received_rssi_dbm",
		Help:    "The RSSI of received frames.",
		Buckets: prometheus.LinearBuckets(-140, 10, 14),
	})
)

func configApplyCounter(r string) prometheus.Counter {
	return cac.With(prometheus.Labels{"result": r})
}

func frameSentCounter() prometheus.Counter {
	return fsc
}

func frameReceivedCounter() prometheus.Counter {
	return frc
}

func frameErrorCounter(e string) prometheus.Counter {
	return fec.With(prometheus.Labels{"error": e})
}

func channelAcquireTimeoutCounter() prometheus.Counter {
	return atc
}

func receivedRSSIHistogram() prometheus.Observer {
	return rssih
}
