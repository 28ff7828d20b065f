// Package sortable provides a high-level façade over the drag and drop
// reordering engine. Most applications interact with this package by:
//  1. Creating a Board via New() (optionally supplying a logger, a clock or a
//     Prometheus registerer)
//  2. Registering one container per rendered list
//  3. Feeding pointer primitives from their input backend (Press / Move /
//     Release, or BeginDrag / UpdateHover / EndDrag)
//  4. Applying the reported drop results to their own item order, for example
//     with Apply
//
// The engine never mutates item order on its own; a drop is only reported.
package sortable

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/sortable/clock"
	"github.com/hupe1980/sortable/core"
	"github.com/hupe1980/sortable/delay"
	"github.com/hupe1980/sortable/engine"
	"github.com/hupe1980/sortable/logging"
	"github.com/hupe1980/sortable/metrics"
	"github.com/hupe1980/sortable/registry"
)

// Options configures a Board.
type Options struct {
	// EngineConfig tunes invariant and hover logging.
	EngineConfig engine.Config

	// Registry defaults to an in-memory registry.
	Registry core.ContainerRegistry

	// Clock defaults to the wall clock.
	Clock core.Clock

	// Logger defaults to NoOp. When LogCallbacks is set, every lifecycle
	// notification is logged at info level.
	Logger       logging.Logger
	LogCallbacks bool

	// MetricsRegisterer enables Prometheus metrics when non-nil.
	MetricsRegisterer prometheus.Registerer
	MetricsNamespace  string

	// Callbacks are additional engine-level observers.
	Callbacks []engine.Callback
}

// Board bundles a container registry with the engine driving it.
type Board struct {
	registry core.ContainerRegistry
	engine   *engine.Engine
	metrics  *metrics.Collector
}

// New creates a Board with in-memory defaults and optional overrides.
func New(optFns ...func(o *Options)) *Board {
	opts := Options{
		EngineConfig:     engine.DefaultConfig,
		Registry:         registry.NewInMemoryRegistry(),
		Clock:            clock.Real{},
		Logger:           logging.NoOpLogger{},
		MetricsNamespace: "sortable",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	b := &Board{registry: opts.Registry}

	callbacks := append([]engine.Callback(nil), opts.Callbacks...)
	if opts.MetricsRegisterer != nil {
		b.metrics = metrics.NewCollector(opts.MetricsNamespace, opts.MetricsRegisterer)
		callbacks = append(callbacks, b.metrics.Callbacks()...)
	}
	if opts.LogCallbacks {
		callbacks = append(callbacks, engine.LoggingCallbacks(opts.Logger)...)
	}

	b.engine = engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Registry = opts.Registry
		o.Clock = opts.Clock
		o.Logger = opts.Logger
		o.Callbacks = callbacks
	})

	return b
}

// Engine returns the underlying drag session manager.
func (b *Board) Engine() *engine.Engine { return b.engine }

// Registry returns the container registry.
func (b *Board) Registry() core.ContainerRegistry { return b.registry }

// Metrics returns the metrics collector, nil unless a registerer was given.
func (b *Board) Metrics() *metrics.Collector { return b.metrics }

// Register adds a container.
func (b *Board) Register(cfg core.ContainerConfig) error { return b.registry.Register(cfg) }

// Unregister removes a container, cancelling a session that references it.
func (b *Board) Unregister(containerID string) error { return b.registry.Unregister(containerID) }

// Items returns the current item order of a container.
func (b *Board) Items(containerID string) ([]core.Item, bool) {
	c, ok := b.registry.Resolve(containerID)
	if !ok {
		return nil, false
	}
	return c.Items, true
}

// Dragging reports whether a session is in flight.
func (b *Board) Dragging() bool { return b.engine.Dragging() }

// Press starts a press on an item, honoring the container's delay.
func (b *Board) Press(containerID, itemID string) *delay.Admission {
	return b.engine.Press(containerID, itemID)
}

// Move reports the pointer over a container slot.
func (b *Board) Move(containerID string, index int) { b.engine.Move(containerID, index) }

// Release ends the press or the drag.
func (b *Board) Release() (core.DropResult, bool) { return b.engine.Release() }

// BeginDrag starts a session immediately, bypassing the delay.
func (b *Board) BeginDrag(containerID, itemID string) bool {
	return b.engine.BeginDrag(containerID, itemID)
}

// UpdateHover moves the session's current target.
func (b *Board) UpdateHover(containerID string, index int) { b.engine.UpdateHover(containerID, index) }

// EndDrag finishes the session and reports the drop, if any.
func (b *Board) EndDrag() (core.DropResult, bool) { return b.engine.EndDrag() }

// Cancel aborts the session without a drop.
func (b *Board) Cancel() bool { return b.engine.Cancel() }

// Apply performs a drop result on the registry, the way an owning
// collaborator would in its onDrop handler. A result that would leave a
// container with duplicate item ids is rejected without writing either
// container.
func (b *Board) Apply(r core.DropResult) error { return engine.Apply(b.registry, r) }
