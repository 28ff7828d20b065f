package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/sortable/clock"
	"github.com/hupe1980/sortable/core"
	"github.com/hupe1980/sortable/delay"
	"github.com/hupe1980/sortable/logging"
	"github.com/hupe1980/sortable/registry"
)

// Config defines tuning parameters for the Engine's behavior. It is YAML
// tagged so scenario files can embed it.
type Config struct {
	// WarnOnInvariantViolation logs ignored events (a begin while dragging,
	// a hover or end while idle) at warn instead of debug level. Useful when
	// wiring a new input backend that may deliver duplicate events.
	WarnOnInvariantViolation bool `yaml:"warn_on_invariant_violation"`

	// TraceHover logs every hover update at debug level.
	TraceHover bool `yaml:"trace_hover"`
}

// DefaultConfig is quiet: ignored events and hover updates are not logged
// above debug level.
var DefaultConfig = Config{}

// Options configures an Engine instance using the functional options pattern.
//
// Example:
//
//	eng := New(func(o *Options) {
//	    o.Registry = reg
//	    o.Logger = logger
//	})
type Options struct {
	// Config contains operational parameters. Defaults to DefaultConfig.
	Config Config

	// Registry is the container registry. Defaults to an in-memory registry.
	Registry core.ContainerRegistry

	// Clock drives delayed admissions. Defaults to the wall clock.
	Clock core.Clock

	// Logger defaults to NoOp.
	Logger logging.Logger

	// Callbacks are engine-level observers registered at construction.
	Callbacks []Callback

	// NewSessionID generates drag session ids. Defaults to uuid.NewString.
	NewSessionID func() string
}

// handlers are the container callbacks captured when a session begins, so
// onDragEnd still reaches the source even if it is unregistered mid-drag.
type handlers struct {
	onDragStart func(core.DragPayload)
	onDragEnd   func(core.DragPayload)
	onDrop      func(core.DropResult)
}

type pointer struct {
	containerID string
	index       int
	moved       bool
}

// Engine is the drag session manager. It owns the single drag session slot,
// gates presses through the delay gate, computes drop results and dispatches
// callbacks.
//
// State machine: Idle → Dragging → (drop | cancel) → Idle. Events that do not
// fit the current state are ignored, which keeps the engine tolerant of
// duplicate or late events from the input backend.
//
// Concurrency Model:
// Pointer events are expected on one logical event loop. A delayed admission
// fires on the clock's goroutine, so all state is guarded by a mutex.
// Callbacks are dispatched after the mutex is released.
type Engine struct {
	registry  core.ContainerRegistry
	gate      *delay.Gate
	clock     core.Clock
	logger    logging.Logger
	config    Config
	callbacks *CallbackManager
	newID     func() string

	mu       sync.Mutex
	session  *core.DragSession
	handlers handlers
	pointer  pointer
	// releases counts pointer-ups. A delayed admission only becomes a session
	// if no pointer-up happened since its press.
	releases uint64
}

// New creates an Engine with in-memory defaults and optional overrides. The
// engine subscribes to the registry so unregistering a container referenced
// by the active session cancels it.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:       DefaultConfig,
		Registry:     registry.NewInMemoryRegistry(),
		Clock:        clock.Real{},
		Logger:       logging.NoOpLogger{},
		NewSessionID: uuid.NewString,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	e := &Engine{
		registry:  opts.Registry,
		gate:      delay.NewGate(opts.Clock),
		clock:     opts.Clock,
		logger:    opts.Logger,
		config:    opts.Config,
		callbacks: NewCallbackManager(opts.Logger),
		newID:     opts.NewSessionID,
	}

	for _, cb := range opts.Callbacks {
		e.callbacks.RegisterCallback(cb)
	}

	e.registry.OnUnregister(e.handleUnregister)

	return e
}

// Registry returns the registry the engine resolves containers against.
func (e *Engine) Registry() core.ContainerRegistry { return e.registry }

// RegisterCallback adds an engine-level observer. Register observers before
// handling pointer events.
func (e *Engine) RegisterCallback(cb Callback) { e.callbacks.RegisterCallback(cb) }

// Dragging reports whether a session is active.
func (e *Engine) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

// State returns the state of the session slot.
func (e *Engine) State() core.DragState {
	if e.Dragging() {
		return core.StateDragging
	}
	return core.StateIdle
}

// Session returns a snapshot of the active session.
func (e *Engine) Session() (core.DragSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return core.DragSession{}, false
	}
	return e.session.Clone(), true
}

// Press handles a pointer-down on an item. The press goes through the delay
// gate of its container: with no delay the session begins immediately,
// otherwise it begins when the delay elapses while the press is held, using
// the pointer position recorded by Move in the meantime. The returned
// admission is nil when the press was ignored.
func (e *Engine) Press(containerID, itemID string) *delay.Admission {
	c, ok := e.registry.Resolve(containerID)
	if !ok {
		e.suppress(ReasonUnknownContainer, containerID, itemID, nil)
		return nil
	}

	e.mu.Lock()
	if e.session != nil {
		e.mu.Unlock()
		e.invariant("press while dragging", "container_id", containerID, "item_id", itemID)
		return nil
	}
	e.pointer = pointer{containerID: containerID, index: core.IndexOf(c.Items, itemID)}
	seq := e.releases
	e.mu.Unlock()

	return e.gate.Admit(containerID, itemID, c.Delay, func() {
		e.begin(containerID, itemID, &seq)
	})
}

// Move handles pointer movement over a container slot. While dragging it is
// a hover update; while a delayed press is pending it records the position
// the session will start at.
func (e *Engine) Move(containerID string, index int) {
	e.mu.Lock()
	if e.session != nil {
		e.mu.Unlock()
		e.UpdateHover(containerID, index)
		return
	}
	e.pointer = pointer{containerID: containerID, index: index, moved: true}
	e.mu.Unlock()
}

// Release handles a pointer-up. While dragging it ends the drag; otherwise it
// withdraws pending delayed presses, turning them into clicks.
func (e *Engine) Release() (core.DropResult, bool) {
	if e.Dragging() {
		return e.EndDrag()
	}

	if n := e.gate.Release(); n > 0 {
		e.logger.Debug("press released before delay", "withdrawn", n)
	}

	e.mu.Lock()
	if e.session != nil {
		// an admission turned into a session after the check above
		e.mu.Unlock()
		return e.EndDrag()
	}
	e.releases++
	e.pointer = pointer{}
	e.mu.Unlock()

	return core.DropResult{}, false
}

// BeginDrag starts a session for the item. It is a no-op returning false when
// a session is already active, a delayed press on the container is still
// pending, the container or item does not resolve, or CanDrag rejects the
// item. On success onDragStart fires with the start payload.
func (e *Engine) BeginDrag(containerID, itemID string) bool {
	return e.begin(containerID, itemID, nil)
}

// begin starts a session. pressSeq is set for delayed admissions: it is the
// release count seen at press time, and the session is created together
// with the recorded pointer position only if no pointer-up happened since.
func (e *Engine) begin(containerID, itemID string, pressSeq *uint64) bool {
	if pressSeq == nil && e.gate.Pending(containerID) {
		e.suppress(ReasonDelayPending, containerID, itemID, nil)
		return false
	}

	c, ok := e.registry.Resolve(containerID)
	if !ok {
		e.suppress(ReasonUnknownContainer, containerID, itemID, nil)
		return false
	}

	item, index, ok := c.Lookup(itemID)
	if !ok {
		e.suppress(ReasonUnknownItem, containerID, itemID, nil)
		return false
	}

	if !c.AllowsDrag(item, index) {
		e.suppress(ReasonCannotDrag, containerID, itemID, nil)
		return false
	}

	e.mu.Lock()
	if e.session != nil {
		e.mu.Unlock()
		e.invariant("begin while dragging", "container_id", containerID, "item_id", itemID)
		e.suppress(ReasonAlreadyDragging, containerID, itemID, nil)
		return false
	}
	if pressSeq != nil && *pressSeq != e.releases {
		e.mu.Unlock()
		e.suppress(ReasonReleased, containerID, itemID, nil)
		return false
	}

	s := core.NewDragSession(e.newID(), c, item, index, e.clock.Now())
	if pressSeq != nil {
		if p := e.pointer; p.moved {
			s.Hover(p.containerID, p.index)
		}
		e.pointer = pointer{}
	}
	e.session = s
	e.handlers = handlers{onDragStart: c.OnDragStart, onDragEnd: c.OnDragEnd, onDrop: c.OnDrop}
	h := e.handlers
	snap := s.Clone()
	e.mu.Unlock()

	payload := snap.StartPayload()
	e.logger.Debug("drag started", "session_id", snap.ID, "container_id", containerID, "item_id", itemID, "index", index)

	if h.onDragStart != nil {
		h.onDragStart(payload)
	}
	e.callbacks.ExecuteCallbacks(CallbackDragStart, &CallbackContext{
		CallbackType: CallbackDragStart,
		Session:      &snap,
		Payload:      &payload,
	})

	return true
}

// UpdateHover moves the current target of the active session. No callback
// fires. Ignored while idle.
func (e *Engine) UpdateHover(containerID string, index int) {
	e.mu.Lock()
	if e.session == nil {
		e.mu.Unlock()
		e.invariant("hover while idle", "container_id", containerID, "index", index)
		return
	}
	e.session.Hover(containerID, index)
	sid := e.session.ID
	e.mu.Unlock()

	if e.config.TraceHover {
		e.logger.Debug("hover", "session_id", sid, "container_id", containerID, "index", index)
	}
}

// EndDrag completes the active session. onDragEnd always fires with the
// start payload; onDrop fires afterwards when the drop is legal and changes
// something. The computed result is returned. Ignored while idle.
func (e *Engine) EndDrag() (core.DropResult, bool) {
	e.mu.Lock()
	if e.session == nil {
		e.mu.Unlock()
		e.invariant("end while idle")
		return core.DropResult{}, false
	}
	s := e.session.Clone()
	h := e.handlers
	e.session = nil
	e.handlers = handlers{}
	e.mu.Unlock()

	dur := e.clock.Now().Sub(s.StartedAt)
	e.notifyEnd(s, h, dur)

	result, reason, ok := Calculate(s, e.registry)
	if !ok {
		e.suppress(reason, s.CurrentContainerID, s.ItemID, &s)
		return core.DropResult{}, false
	}

	e.logger.Debug("drop computed", "session_id", s.ID, "kind", result.Kind(),
		"from", result.RemovedFromContainerID, "removed_index", result.RemovedIndex,
		"to", result.AddedToContainerID, "added_index", result.AddedIndex)

	if h.onDrop != nil {
		h.onDrop(result)
	}
	e.callbacks.ExecuteCallbacks(CallbackDrop, &CallbackContext{
		CallbackType: CallbackDrop,
		Session:      &s,
		Result:       &result,
		Duration:     dur,
	})

	return result, true
}

// Cancel aborts the active session without a drop. onDragEnd still fires. It
// also withdraws pending delayed presses. It reports whether a session was
// cancelled.
func (e *Engine) Cancel() bool {
	e.gate.Release()
	return e.cancel(ReasonAborted, func(*core.DragSession) bool { return true })
}

func (e *Engine) handleUnregister(containerID string) {
	e.gate.Cancel(containerID)
	e.cancel(ReasonUnregistered, func(s *core.DragSession) bool {
		return s.SourceContainerID == containerID || s.CurrentContainerID == containerID
	})
}

func (e *Engine) cancel(reason string, match func(*core.DragSession) bool) bool {
	e.mu.Lock()
	if e.session == nil || !match(e.session) {
		e.mu.Unlock()
		return false
	}
	s := e.session.Clone()
	h := e.handlers
	e.session = nil
	e.handlers = handlers{}
	e.pointer = pointer{}
	e.mu.Unlock()

	dur := e.clock.Now().Sub(s.StartedAt)
	e.logger.Debug("drag cancelled", "session_id", s.ID, "reason", reason)
	e.notifyEnd(s, h, dur)

	payload := s.StartPayload()
	e.callbacks.ExecuteCallbacks(CallbackCancel, &CallbackContext{
		CallbackType: CallbackCancel,
		Session:      &s,
		Payload:      &payload,
		Reason:       reason,
		Duration:     dur,
	})

	return true
}

func (e *Engine) notifyEnd(s core.DragSession, h handlers, dur time.Duration) {
	payload := s.StartPayload()
	if h.onDragEnd != nil {
		h.onDragEnd(payload)
	}
	e.callbacks.ExecuteCallbacks(CallbackDragEnd, &CallbackContext{
		CallbackType: CallbackDragEnd,
		Session:      &s,
		Payload:      &payload,
		Duration:     dur,
	})
}

func (e *Engine) suppress(reason, containerID, itemID string, s *core.DragSession) {
	e.logger.Debug("drag suppressed", "reason", reason, "container_id", containerID, "item_id", itemID)
	e.callbacks.ExecuteCallbacks(CallbackSuppressed, &CallbackContext{
		CallbackType: CallbackSuppressed,
		Session:      s,
		Reason:       reason,
		ContainerID:  containerID,
		ItemID:       itemID,
	})
}

func (e *Engine) invariant(msg string, args ...any) {
	if e.config.WarnOnInvariantViolation {
		e.logger.Warn("ignored event: "+msg, args...)
		return
	}
	e.logger.Debug("ignored event: "+msg, args...)
}
