package engine

import (
	"fmt"
	"time"

	"github.com/hupe1980/sortable/core"
	"github.com/hupe1980/sortable/logging"
)

// CallbackType defines the lifecycle points at which engine-level observers
// are notified. Container callbacks (OnDragStart, OnDragEnd, OnDrop) are
// separate and carry the public payload contract; observers additionally see
// cancellations and suppressed interactions.
type CallbackType string

const (
	// CallbackDragStart fires once when a session begins.
	CallbackDragStart CallbackType = "drag_start"
	// CallbackDragEnd fires once when a session that began is over.
	CallbackDragEnd CallbackType = "drag_end"
	// CallbackDrop fires when a session produced a drop result.
	CallbackDrop CallbackType = "drop"
	// CallbackCancel fires when a session ended without a drop because it was
	// aborted or its container went away.
	CallbackCancel CallbackType = "cancel"
	// CallbackSuppressed fires when an interaction resolved to "no drop" or a
	// press did not become a drag.
	CallbackSuppressed CallbackType = "suppressed"
)

// CallbackContext carries the information an observer may need. Fields not
// relevant to a callback type are left zero.
type CallbackContext struct {
	// CallbackType indicates which lifecycle point triggered this execution.
	CallbackType CallbackType
	// Session is a snapshot of the session, nil when none was involved.
	Session *core.DragSession
	// Payload is the start payload for drag_start / drag_end / cancel.
	Payload *core.DragPayload
	// Result is set for drop.
	Result *core.DropResult
	// Reason explains suppressed and cancel notifications.
	Reason string
	// ContainerID and ItemID identify the press for suppressed notifications.
	ContainerID string
	ItemID      string
	// Duration is the session age for drag_end, drop and cancel.
	Duration time.Duration
}

// Callback is an engine-level observer.
//
// Callbacks run synchronously on the goroutine that caused the transition,
// after the engine has released its lock, so they may call back into the
// engine or the registry. A returned error is logged and never changes the
// outcome of the interaction.
type Callback interface {
	// Type returns the callback type this implementation handles.
	Type() CallbackType
	// Execute performs the callback logic.
	Execute(cbCtx *CallbackContext) error
}

// FunctionCallback wraps a function as a callback implementation.
//
// Example:
//
//	onDrop := NewFunctionCallback(CallbackDrop, func(c *CallbackContext) error {
//	    fmt.Println(c.Result.Kind())
//	    return nil
//	})
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(cbCtx *CallbackContext) error
}

// NewFunctionCallback creates a new function-based callback.
func NewFunctionCallback(callbackType CallbackType, fn func(cbCtx *CallbackContext) error) *FunctionCallback {
	return &FunctionCallback{callbackType: callbackType, fn: fn}
}

// Type returns the callback type this function handles.
func (c *FunctionCallback) Type() CallbackType { return c.callbackType }

// Execute calls the wrapped function.
func (c *FunctionCallback) Execute(cbCtx *CallbackContext) error { return c.fn(cbCtx) }

// CallbackManager routes notifications to registered observers.
//
// Callbacks are executed in registration order. Unlike a validation hook, a
// failing observer does not stop the remaining ones: every observer sees
// every notification, and failures are reported to the logger.
//
// Thread Safety:
// Register all callbacks before the engine starts handling pointer events.
// Execution is safe for concurrent use once registration is complete.
type CallbackManager struct {
	callbacks map[CallbackType][]Callback
	logger    logging.Logger
}

// NewCallbackManager creates an empty manager reporting failures to logger.
func NewCallbackManager(logger logging.Logger) *CallbackManager {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &CallbackManager{callbacks: make(map[CallbackType][]Callback), logger: logger}
}

// RegisterCallback adds a callback for its type.
func (cm *CallbackManager) RegisterCallback(callback Callback) {
	t := callback.Type()
	cm.callbacks[t] = append(cm.callbacks[t], callback)
}

// ExecuteCallbacks runs every callback registered for the type and returns
// the number of failures.
func (cm *CallbackManager) ExecuteCallbacks(callbackType CallbackType, cbCtx *CallbackContext) int {
	callbacks, exists := cm.callbacks[callbackType]
	if !exists {
		return 0
	}

	failed := 0
	for _, cb := range callbacks {
		if err := safeExecute(cb, cbCtx); err != nil {
			failed++
			cm.logger.Error("observer failed", "callback_type", string(callbackType), "error", err)
		}
	}

	return failed
}

func safeExecute(cb Callback, cbCtx *CallbackContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return cb.Execute(cbCtx)
}

// LoggingCallback writes lifecycle notifications to a logger.
type LoggingCallback struct {
	callbackType CallbackType
	logger       logging.Logger
}

// NewLoggingCallback creates a logging observer for one callback type.
func NewLoggingCallback(callbackType CallbackType, logger logging.Logger) *LoggingCallback {
	return &LoggingCallback{callbackType: callbackType, logger: logger}
}

// LoggingCallbacks returns logging observers for every callback type.
func LoggingCallbacks(logger logging.Logger) []Callback {
	return []Callback{
		NewLoggingCallback(CallbackDragStart, logger),
		NewLoggingCallback(CallbackDragEnd, logger),
		NewLoggingCallback(CallbackDrop, logger),
		NewLoggingCallback(CallbackCancel, logger),
		NewLoggingCallback(CallbackSuppressed, logger),
	}
}

// Type returns the callback type this logger handles.
func (c *LoggingCallback) Type() CallbackType { return c.callbackType }

// Execute logs the notification.
func (c *LoggingCallback) Execute(cbCtx *CallbackContext) error {
	if c.logger == nil {
		return nil
	}

	if dl, ok := c.logger.(*logging.DragLogger); ok && cbCtx.Session != nil {
		dl = dl.WithSession(cbCtx.Session.ID)
		switch {
		case cbCtx.Result != nil:
			r := cbCtx.Result
			dl.LogDrop(r.Kind(), r.RemovedFromContainerID, r.RemovedIndex, r.AddedToContainerID, r.AddedIndex, cbCtx.Duration)
			return nil
		case cbCtx.CallbackType == CallbackSuppressed:
			dl.LogSuppressed(cbCtx.Reason, cbCtx.Session.CurrentContainerID, cbCtx.Session.ItemID)
			return nil
		}
	}

	args := []any{"callback_type", string(c.callbackType)}
	if cbCtx.Payload != nil {
		args = append(args, "container_id", cbCtx.Payload.ContainerID, "item_id", cbCtx.Payload.ID, "index", cbCtx.Payload.Index)
	} else if cbCtx.ContainerID != "" {
		args = append(args, "container_id", cbCtx.ContainerID, "item_id", cbCtx.ItemID)
	}
	if cbCtx.Result != nil {
		args = append(args, "from", cbCtx.Result.RemovedFromContainerID, "removed_index", cbCtx.Result.RemovedIndex,
			"to", cbCtx.Result.AddedToContainerID, "added_index", cbCtx.Result.AddedIndex)
	}
	if cbCtx.Reason != "" {
		args = append(args, "reason", cbCtx.Reason)
	}
	if cbCtx.Duration > 0 {
		args = append(args, "duration", cbCtx.Duration)
	}

	c.logger.Info("drag lifecycle", args...)

	return nil
}
