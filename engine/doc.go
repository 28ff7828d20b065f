// Package engine implements the drag session manager of the sortable engine.
//
// The Engine owns the single drag session slot and coordinates the other
// components:
//
//	pointer primitives ─▶ delay.Gate ─▶ Engine (Idle ⇄ Dragging)
//	                                       │ hover: registry resolves targets
//	                                       ▼ release
//	                                  Calculate ─▶ callbacks
//
// # Session Lifecycle
//
//   - BeginDrag (or an admitted Press) creates the session and fires
//     onDragStart with {containerId, groupName, id, index, item}
//   - UpdateHover (or Move) tracks the current target; nothing fires
//   - EndDrag (or Release) fires onDragEnd with the start payload, then
//     onDrop when Calculate yields a result
//   - Cancel, or unregistering the source or current container, fires
//     onDragEnd without onDrop
//
// At most one session exists. A second BeginDrag while dragging is ignored,
// as are hover and end events while idle.
//
// # Drop Computation
//
// Calculate is a pure function over the session and the registry. Reorders
// within one container are always legal; transfers need both containers to
// carry the same non-empty group name. Picking an item up and putting it back
// in its own slot, dropping on a container that went away and dropping on a
// foreign group all resolve to "no drop" and are reported to observers as
// suppressed notifications, never as errors.
//
// # Callbacks
//
// Container callbacks (ContainerConfig.OnDragStart/OnDragEnd/OnDrop) belong
// to the source container and are captured when the session begins.
// Engine-level observers implement Callback and are routed by the
// CallbackManager; see LoggingCallback and the metrics package.
//
// The engine is advisory: it reports what should happen and never mutates
// container items. ApplyDrop helps collaborators apply a result.
package engine
