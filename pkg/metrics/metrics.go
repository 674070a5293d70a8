// Package metrics provides Prometheus instrumentation for ring-buffer components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for ring-buffer components.
type Registry struct {
	// Channel metrics
	ChannelSends            *prometheus.CounterVec
	ChannelReceives         *prometheus.CounterVec
	ChannelBlockedSends     *prometheus.CounterVec
	ChannelBlockedReceives  *prometheus.CounterVec
	ChannelSendWaitTime     *prometheus.HistogramVec
	ChannelReceiveWaitTime  *prometheus.HistogramVec
	ChannelBufferUsage      *prometheus.GaugeVec
	ChannelSendersLive      *prometheus.GaugeVec
	ChannelWaitingSenders   *prometheus.GaugeVec
	ChannelWaitingReceivers *prometheus.GaugeVec
	ChannelCloses           *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by ring-buffer components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		ChannelSends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "sends_total",
				Help:      "Total number of values enqueued",
			},
			[]string{"channel_name"},
		),

		ChannelReceives: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "receives_total",
				Help:      "Total number of values dequeued",
			},
			[]string{"channel_name"},
		),

		ChannelBlockedSends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "blocked_sends_total",
				Help:      "Total number of sends that had to suspend on a full buffer",
			},
			[]string{"channel_name"},
		),

		ChannelBlockedReceives: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "blocked_receives_total",
				Help:      "Total number of receives that had to suspend on an empty buffer",
			},
			[]string{"channel_name"},
		),

		ChannelSendWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "send_wait_duration_seconds",
				Help:      "Time spent in Send, including suspension on backpressure",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"channel_name"},
		),

		ChannelReceiveWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "receive_wait_duration_seconds",
				Help:      "Time spent in Recv, including suspension on an empty buffer",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"channel_name"},
		),

		ChannelBufferUsage: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "buffer_utilization",
				Help:      "Buffered values over usable capacity (0.0 to 1.0)",
			},
			[]string{"channel_name"},
		),

		ChannelSendersLive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "senders_live",
				Help:      "Number of currently live sender handles",
			},
			[]string{"channel_name"},
		),

		ChannelWaitingSenders: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "waiting_senders",
				Help:      "Number of currently suspended producers",
			},
			[]string{"channel_name"},
		),

		ChannelWaitingReceivers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "waiting_receivers",
				Help:      "Number of currently suspended consumers",
			},
			[]string{"channel_name"},
		),

		ChannelCloses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringbuffer",
				Subsystem: "channel",
				Name:      "handle_closes_total",
				Help:      "Total number of handle closes",
			},
			[]string{"channel_name", "handle_type"},
		),
	}
}
