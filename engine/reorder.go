package engine

import (
	"fmt"

	"github.com/hupe1980/sortable/core"
)

// Reasons reported for interactions that resolve to "no drop". They are
// expected interaction outcomes, not errors.
const (
	ReasonCannotDrag       = "cannot_drag"
	ReasonAlreadyDragging  = "already_dragging"
	ReasonUnknownContainer = "unknown_container"
	ReasonUnknownItem      = "unknown_item"
	ReasonDelayPending     = "delay_pending"
	ReasonReleased         = "released"
	ReasonNotHovered       = "not_hovered"
	ReasonSameSlot         = "same_slot"
	ReasonGroupMismatch    = "group_mismatch"
	ReasonTargetGone       = "target_gone"
	ReasonInvalidIndex     = "invalid_index"
	ReasonUnregistered     = "container_unregistered"
	ReasonAborted          = "aborted"
)

// Calculate computes the drop result of a completed session. The second
// return value is the reason when no result is produced.
//
// Rules:
//   - never hovered, or the target no longer resolves: no result
//   - same container: no result when the slot is unchanged, otherwise the
//     hover-tracked index is reported verbatim as the added index
//   - different containers: the groups must match
//   - the payload is the item snapshot taken when the session began
func Calculate(s core.DragSession, reg core.ContainerRegistry) (core.DropResult, string, bool) {
	if !s.Hovered {
		return core.DropResult{}, ReasonNotHovered, false
	}

	target, ok := reg.Resolve(s.CurrentContainerID)
	if !ok {
		return core.DropResult{}, ReasonTargetGone, false
	}

	if s.CurrentContainerID == s.SourceContainerID {
		if s.CurrentIndex == s.SourceIndex {
			return core.DropResult{}, ReasonSameSlot, false
		}
		if s.CurrentIndex < 0 || s.CurrentIndex >= len(target.Items) {
			return core.DropResult{}, ReasonInvalidIndex, false
		}
		return core.DropResult{
			ContainerID:            s.SourceContainerID,
			RemovedFromContainerID: s.SourceContainerID,
			RemovedIndex:           s.SourceIndex,
			AddedToContainerID:     s.SourceContainerID,
			AddedIndex:             s.CurrentIndex,
			Payload:                s.Item.Clone(),
		}, "", true
	}

	if !reg.GroupsMatch(s.SourceContainerID, s.CurrentContainerID) {
		return core.DropResult{}, ReasonGroupMismatch, false
	}
	// a transfer may append after the last item
	if s.CurrentIndex < 0 || s.CurrentIndex > len(target.Items) {
		return core.DropResult{}, ReasonInvalidIndex, false
	}

	return core.DropResult{
		RemovedFromContainerID: s.SourceContainerID,
		RemovedIndex:           s.SourceIndex,
		AddedToContainerID:     s.CurrentContainerID,
		AddedIndex:             s.CurrentIndex,
		Payload:                s.Item.Clone(),
	}, "", true
}

// ApplyDrop applies a drop result to the item slices of its containers and
// returns the new slices. For a reorder pass the same slice as src and dst;
// the returned dst equals the returned src. Inputs are not modified.
func ApplyDrop(src, dst []core.Item, r core.DropResult) ([]core.Item, []core.Item, error) {
	if r.RemovedIndex < 0 || r.RemovedIndex >= len(src) {
		return nil, nil, fmt.Errorf("removed index %d out of range [0,%d)", r.RemovedIndex, len(src))
	}
	if src[r.RemovedIndex].ID != r.Payload.ID {
		return nil, nil, fmt.Errorf("item at index %d is %q, expected %q", r.RemovedIndex, src[r.RemovedIndex].ID, r.Payload.ID)
	}

	newSrc := make([]core.Item, 0, len(src))
	newSrc = append(newSrc, src[:r.RemovedIndex]...)
	newSrc = append(newSrc, src[r.RemovedIndex+1:]...)

	if !r.IsTransfer() {
		if r.AddedIndex < 0 || r.AddedIndex > len(newSrc) {
			return nil, nil, fmt.Errorf("added index %d out of range [0,%d]", r.AddedIndex, len(newSrc))
		}
		out := insertAt(newSrc, r.AddedIndex, src[r.RemovedIndex])
		return out, out, nil
	}

	if r.AddedIndex < 0 || r.AddedIndex > len(dst) {
		return nil, nil, fmt.Errorf("added index %d out of range [0,%d]", r.AddedIndex, len(dst))
	}

	return newSrc, insertAt(dst, r.AddedIndex, src[r.RemovedIndex]), nil
}

// Apply performs a drop result on the registry, the way the owning
// collaborator of the containers would. Both new orders are validated
// before either container is written, so a rejected transfer leaves the
// item where it was.
func Apply(reg core.ContainerRegistry, r core.DropResult) error {
	src, ok := reg.Resolve(r.RemovedFromContainerID)
	if !ok {
		return fmt.Errorf("apply drop from %q: %w", r.RemovedFromContainerID, core.ErrContainerNotFound)
	}
	dst, ok := reg.Resolve(r.AddedToContainerID)
	if !ok {
		return fmt.Errorf("apply drop to %q: %w", r.AddedToContainerID, core.ErrContainerNotFound)
	}

	newSrc, newDst, err := ApplyDrop(src.Items, dst.Items, r)
	if err != nil {
		return err
	}

	if !r.IsTransfer() {
		return reg.SetItems(src.ID, newSrc)
	}

	for _, c := range []core.ContainerConfig{{ID: src.ID, Items: newSrc}, {ID: dst.ID, Items: newDst}} {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("apply drop: %w", err)
		}
	}

	if err := reg.SetItems(src.ID, newSrc); err != nil {
		return err
	}
	return reg.SetItems(dst.ID, newDst)
}

func insertAt(items []core.Item, idx int, it core.Item) []core.Item {
	out := make([]core.Item, 0, len(items)+1)
	out = append(out, items[:idx]...)
	out = append(out, it)
	out = append(out, items[idx:]...)
	return out
}
