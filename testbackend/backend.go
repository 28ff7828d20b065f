// Package testbackend is a scripted input backend for the drag engine. It
// turns item-level driver calls (begin dragging item "1", hover over item
// "21", drop) into the engine's primitives, the way a pointer backend would,
// so collaborators can test their callback handling without real input.
package testbackend

import (
	"fmt"

	"github.com/hupe1980/sortable/core"
	"github.com/hupe1980/sortable/delay"
	"github.com/hupe1980/sortable/engine"
)

// ItemFinder locates the container currently holding an item.
type ItemFinder interface {
	FindItem(itemID string) (containerID string, index int, ok bool)
}

// Backend drives an engine by item id.
type Backend struct {
	eng    *engine.Engine
	finder ItemFinder
}

// New creates a backend. The finder is usually the engine's
// *registry.InMemoryRegistry.
func New(eng *engine.Engine, finder ItemFinder) *Backend {
	return &Backend{eng: eng, finder: finder}
}

// Engine returns the driven engine.
func (b *Backend) Engine() *engine.Engine { return b.eng }

// MouseDown presses an item, going through the container's delay.
func (b *Backend) MouseDown(itemID string) (*delay.Admission, error) {
	containerID, _, ok := b.finder.FindItem(itemID)
	if !ok {
		return nil, fmt.Errorf("mouse down on %q: %w", itemID, core.ErrInvalidItem)
	}
	return b.eng.Press(containerID, itemID), nil
}

// MouseMove moves the pointer over the slot currently held by itemID.
func (b *Backend) MouseMove(itemID string) error {
	containerID, index, ok := b.finder.FindItem(itemID)
	if !ok {
		return fmt.Errorf("mouse move over %q: %w", itemID, core.ErrInvalidItem)
	}
	b.eng.Move(containerID, index)
	return nil
}

// MouseUp releases the pointer.
func (b *Backend) MouseUp() (core.DropResult, bool) {
	return b.eng.Release()
}

// BeginDrag starts dragging the item directly, bypassing the press. It
// reports whether a session started.
func (b *Backend) BeginDrag(itemID string) bool {
	containerID, _, ok := b.finder.FindItem(itemID)
	if !ok {
		return false
	}
	return b.eng.BeginDrag(containerID, itemID)
}

// Hover moves the drag over a container slot.
func (b *Backend) Hover(containerID string, index int) {
	b.eng.UpdateHover(containerID, index)
}

// HoverItem moves the drag over the slot currently held by itemID.
func (b *Backend) HoverItem(itemID string) error {
	containerID, index, ok := b.finder.FindItem(itemID)
	if !ok {
		return fmt.Errorf("hover over %q: %w", itemID, core.ErrInvalidItem)
	}
	b.eng.UpdateHover(containerID, index)
	return nil
}

// EndDrag drops at the current hover target.
func (b *Backend) EndDrag() (core.DropResult, bool) {
	return b.eng.EndDrag()
}

// Reorder drags removedID onto the slot of addedID and drops it. The target
// slot is resolved before the drag begins. The bool reports whether a drop
// result was produced.
func (b *Backend) Reorder(removedID, addedID string) (core.DropResult, bool, error) {
	targetID, targetIndex, ok := b.finder.FindItem(addedID)
	if !ok {
		return core.DropResult{}, false, fmt.Errorf("reorder onto %q: %w", addedID, core.ErrInvalidItem)
	}
	if _, _, ok := b.finder.FindItem(removedID); !ok {
		return core.DropResult{}, false, fmt.Errorf("reorder %q: %w", removedID, core.ErrInvalidItem)
	}

	if !b.BeginDrag(removedID) {
		return core.DropResult{}, false, nil
	}
	b.eng.UpdateHover(targetID, targetIndex)
	res, dropped := b.eng.EndDrag()

	return res, dropped, nil
}
