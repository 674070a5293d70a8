package channel

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	rberrors "github.com/LVC1D/ring-buffer/pkg/common/errors"
	"github.com/LVC1D/ring-buffer/pkg/metrics"
)

// MetricsSender wraps a Sender with Prometheus metrics collection.
type MetricsSender[T any] struct {
	s        *Sender[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// MetricsReceiver wraps a Receiver with Prometheus metrics collection.
type MetricsReceiver[T any] struct {
	r        *Receiver[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a channel whose handles record metrics under
// the given name, using a dedicated registry to avoid conflicts.
func NewWithMetrics[T any](capacity uint64, name string) (*MetricsSender[T], *MetricsReceiver[T]) {
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}
	return NewWithConfigAndMetrics[T](capacity, name, config)
}

// NewWithConfigAndMetrics creates an instrumented channel with a custom
// metrics configuration.
func NewWithConfigAndMetrics[T any](capacity uint64, name string, metricsConfig metrics.Config) (*MetricsSender[T], *MetricsReceiver[T]) {
	tx, rx := New[T](capacity)

	// The default registerer already backs DefaultRegistry; building a
	// second registry against it would double-register every metric.
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil && metricsConfig.Registry != prometheus.DefaultRegisterer {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	ms := &MetricsSender[T]{s: tx, name: name, registry: registry, enabled: metricsConfig.Enabled}
	mr := &MetricsReceiver[T]{r: rx, name: name, registry: registry, enabled: metricsConfig.Enabled}

	if ms.enabled {
		registry.ChannelSendersLive.WithLabelValues(name).Set(1)
	}
	return ms, mr
}

// Send enqueues v, recording wait time, throughput, and backpressure.
func (ms *MetricsSender[T]) Send(ctx context.Context, v T) error {
	start := time.Now()

	if ms.enabled {
		// A failed TrySend means this Send is about to suspend.
		if err := ms.s.TrySend(v); err == nil {
			ms.observeSend(start)
			return nil
		} else if !errors.Is(err, rberrors.ErrFull) {
			return err
		}
		ms.registry.ChannelBlockedSends.WithLabelValues(ms.name).Inc()
	}

	err := ms.s.Send(ctx, v)
	if ms.enabled && err == nil {
		ms.observeSend(start)
	}
	return err
}

// TrySend enqueues without suspending.
func (ms *MetricsSender[T]) TrySend(v T) error {
	err := ms.s.TrySend(v)
	if ms.enabled && err == nil {
		ms.registry.ChannelSends.WithLabelValues(ms.name).Inc()
		ms.updateGauges()
	}
	return err
}

// Clone creates another instrumented Sender sharing this channel.
func (ms *MetricsSender[T]) Clone() *MetricsSender[T] {
	clone := &MetricsSender[T]{
		s:        ms.s.Clone(),
		name:     ms.name,
		registry: ms.registry,
		enabled:  ms.enabled,
	}
	if ms.enabled {
		ms.registry.ChannelSendersLive.WithLabelValues(ms.name).Inc()
	}
	return clone
}

// Close releases the underlying handle.
func (ms *MetricsSender[T]) Close() error {
	if err := ms.s.Close(); err != nil {
		return err
	}
	if ms.enabled {
		ms.registry.ChannelSendersLive.WithLabelValues(ms.name).Dec()
		ms.registry.ChannelCloses.WithLabelValues(ms.name, "sender").Inc()
	}
	return nil
}

// Phase returns the channel's current lifecycle phase.
func (ms *MetricsSender[T]) Phase() Phase { return ms.s.Phase() }

// Stats returns a snapshot of channel activity.
func (ms *MetricsSender[T]) Stats() Stats { return ms.s.Stats() }

func (ms *MetricsSender[T]) observeSend(start time.Time) {
	ms.registry.ChannelSends.WithLabelValues(ms.name).Inc()
	ms.registry.ChannelSendWaitTime.WithLabelValues(ms.name).Observe(time.Since(start).Seconds())
	ms.updateGauges()
}

func (ms *MetricsSender[T]) updateGauges() {
	st := ms.s.Stats()
	ms.registry.ChannelBufferUsage.WithLabelValues(ms.name).Set(st.BufferUtilization)
	ms.registry.ChannelWaitingSenders.WithLabelValues(ms.name).Set(float64(st.WaitingSenders))
	ms.registry.ChannelWaitingReceivers.WithLabelValues(ms.name).Set(float64(st.WaitingReceivers))
}

// Recv dequeues the next value, recording wait time and throughput.
func (mr *MetricsReceiver[T]) Recv(ctx context.Context) (T, bool, error) {
	start := time.Now()

	if mr.enabled {
		if v, ok, err := mr.r.TryRecv(); ok || err != nil {
			if ok {
				mr.observeRecv(start)
			}
			if errors.Is(err, rberrors.ErrClosed) && mr.r.Phase() == Closed {
				err = nil // terminal end, not a failure
			}
			return v, ok, err
		}
		mr.registry.ChannelBlockedReceives.WithLabelValues(mr.name).Inc()
	}

	v, ok, err := mr.r.Recv(ctx)
	if mr.enabled && ok {
		mr.observeRecv(start)
	}
	return v, ok, err
}

// TryRecv dequeues without suspending.
func (mr *MetricsReceiver[T]) TryRecv() (T, bool, error) {
	v, ok, err := mr.r.TryRecv()
	if mr.enabled && ok {
		mr.registry.ChannelReceives.WithLabelValues(mr.name).Inc()
		mr.updateGauges()
	}
	return v, ok, err
}

// Clone creates another instrumented Receiver sharing this channel.
func (mr *MetricsReceiver[T]) Clone() *MetricsReceiver[T] {
	return &MetricsReceiver[T]{
		r:        mr.r.Clone(),
		name:     mr.name,
		registry: mr.registry,
		enabled:  mr.enabled,
	}
}

// Close releases the underlying handle.
func (mr *MetricsReceiver[T]) Close() error {
	if err := mr.r.Close(); err != nil {
		return err
	}
	if mr.enabled {
		mr.registry.ChannelCloses.WithLabelValues(mr.name, "receiver").Inc()
	}
	return nil
}

// Phase returns the channel's current lifecycle phase.
func (mr *MetricsReceiver[T]) Phase() Phase { return mr.r.Phase() }

// Stats returns a snapshot of channel activity.
func (mr *MetricsReceiver[T]) Stats() Stats { return mr.r.Stats() }

func (mr *MetricsReceiver[T]) observeRecv(start time.Time) {
	mr.registry.ChannelReceives.WithLabelValues(mr.name).Inc()
	mr.registry.ChannelReceiveWaitTime.WithLabelValues(mr.name).Observe(time.Since(start).Seconds())
	mr.updateGauges()
}

func (mr *MetricsReceiver[T]) updateGauges() {
	st := mr.r.Stats()
	mr.registry.ChannelBufferUsage.WithLabelValues(mr.name).Set(st.BufferUtilization)
	mr.registry.ChannelWaitingSenders.WithLabelValues(mr.name).Set(float64(st.WaitingSenders))
	mr.registry.ChannelWaitingReceivers.WithLabelValues(mr.name).Set(float64(st.WaitingReceivers))
}
