// Package metrics provides Prometheus metrics for the drag engine. A Collector
// is an engine observer: register its Callbacks with the engine.
//
// Labels are bounded: callback kinds and suppression reasons only, never
// container, item or session ids.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/sortable/engine"
)

// Collector holds the drag engine metrics.
type Collector struct {
	// DragsStarted counts sessions that reached dragging.
	DragsStarted prometheus.Counter
	// DragsEnded counts sessions that ended, whatever the outcome.
	DragsEnded prometheus.Counter
	// Drops counts drop results by kind (reorder, transfer).
	Drops *prometheus.CounterVec
	// Cancels counts sessions cancelled by reason.
	Cancels *prometheus.CounterVec
	// Suppressed counts interactions that resolved to "no drop", by reason.
	Suppressed *prometheus.CounterVec
	// ActiveSessions is 1 while a session is in flight.
	ActiveSessions prometheus.Gauge
	// DragDuration observes begin-to-end session time.
	DragDuration prometheus.Histogram
}

// NewCollector creates the metrics and registers them with reg. A nil reg
// leaves them unregistered, which is convenient for tests.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	c := &Collector{
		DragsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drags_started_total",
			Help:      "Total number of drag sessions started.",
		}),
		DragsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drags_ended_total",
			Help:      "Total number of drag sessions ended, with or without a drop.",
		}),
		Drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drops_total",
			Help:      "Total number of drop results, by kind.",
		}, []string{"kind"}),
		Cancels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancels_total",
			Help:      "Total number of cancelled drag sessions, by reason.",
		}, []string{"reason"}),
		Suppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suppressed_total",
			Help:      "Total number of interactions resolved to no drop, by reason.",
		}, []string{"reason"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Current number of active drag sessions (0 or 1).",
		}),
		DragDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "drag_duration_seconds",
			Help:      "Time from drag start to drag end.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	if reg != nil {
		reg.MustRegister(c.DragsStarted, c.DragsEnded, c.Drops, c.Cancels, c.Suppressed, c.ActiveSessions, c.DragDuration)
	}

	return c
}

// Callbacks returns the engine observers feeding this collector.
func (c *Collector) Callbacks() []engine.Callback {
	return []engine.Callback{
		engine.NewFunctionCallback(engine.CallbackDragStart, func(*engine.CallbackContext) error {
			c.DragsStarted.Inc()
			c.ActiveSessions.Set(1)
			return nil
		}),
		engine.NewFunctionCallback(engine.CallbackDragEnd, func(cb *engine.CallbackContext) error {
			c.DragsEnded.Inc()
			c.ActiveSessions.Set(0)
			c.DragDuration.Observe(cb.Duration.Seconds())
			return nil
		}),
		engine.NewFunctionCallback(engine.CallbackDrop, func(cb *engine.CallbackContext) error {
			if cb.Result != nil {
				c.Drops.WithLabelValues(cb.Result.Kind()).Inc()
			}
			return nil
		}),
		engine.NewFunctionCallback(engine.CallbackCancel, func(cb *engine.CallbackContext) error {
			c.Cancels.WithLabelValues(cb.Reason).Inc()
			return nil
		}),
		engine.NewFunctionCallback(engine.CallbackSuppressed, func(cb *engine.CallbackContext) error {
			c.Suppressed.WithLabelValues(cb.Reason).Inc()
			return nil
		}),
	}
}
