// Package metrics exposes Prometheus collectors for the update loop.
//
// A nil *Metrics is valid and records nothing, so callers never check
// whether metrics are enabled.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/grindlemire/go-scene/internal/frameclock"
	"github.com/grindlemire/go-scene/internal/message"
)

const namespace = "scene"

// Metrics holds the collectors of one stage.
type Metrics struct {
	ticks           prometheus.Counter
	tickDuration    prometheus.Histogram
	messagesApplied *prometheus.CounterVec
	nodes           prometheus.Gauge
	vsyncs          prometheus.Counter
	extraUpdates    prometheus.Counter
	frameDelta      prometheus.Histogram
	sleeps          prometheus.Counter
}

// New registers the collectors with reg. Registering twice with the same
// registerer panics, as promauto does.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Number of update ticks run",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one update tick",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033},
		}),
		messagesApplied: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_applied_total",
			Help:      "Number of deferred operations applied, by kind",
		}, []string{"kind"}),
		nodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes",
			Help:      "Number of scene nodes evaluated in the last tick",
		}),
		vsyncs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vsyncs_total",
			Help:      "Number of VSync notifications received",
		}),
		extraUpdates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extra_updates_total",
			Help:      "Number of ticks run without a new VSync",
		}),
		frameDelta: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_delta_seconds",
			Help:      "Animation delta handed to each tick",
			Buckets:   []float64{0.004, 0.008, 0.016, 0.017, 0.033, 0.05, 0.1},
		}),
		sleeps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sleeps_total",
			Help:      "Number of times the update loop went to sleep",
		}),
	}
}

// ObserveTick records one completed tick.
func (m *Metrics) ObserveTick(p frameclock.Prediction, evaluated int, took time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickDuration.Observe(took.Seconds())
	m.nodes.Set(float64(evaluated))
	m.frameDelta.Observe(float64(p.Delta))
	if p.ExtraUpdates > 0 {
		m.extraUpdates.Inc()
	}
}

// ObserveMessage records one applied message.
func (m *Metrics) ObserveMessage(k message.Kind) {
	if m == nil {
		return
	}
	m.messagesApplied.WithLabelValues(k.String()).Inc()
}

// ObserveVSync records one VSync notification.
func (m *Metrics) ObserveVSync() {
	if m == nil {
		return
	}
	m.vsyncs.Inc()
}

// ObserveSleep records the update loop going to sleep.
func (m *Metrics) ObserveSleep() {
	if m == nil {
		return
	}
	m.sleeps.Inc()
}
