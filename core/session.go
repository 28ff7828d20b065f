package core

import "time"

// DragState is the state of the drag session slot.
type DragState int

const (
	// StateIdle means no drag is in flight.
	StateIdle DragState = iota
	// StateDragging means a session is active.
	StateDragging
)

// String returns the string representation of the state.
func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragSession is the single process-wide record of an in-flight drag.
//
// Contract:
//   - ID, ItemID, Item, SourceContainerID, SourceIndex, GroupName and
//     StartedAt are fixed when the session begins
//   - CurrentContainerID / CurrentIndex follow the pointer; Hovered is false
//     until the first hover update
//   - Item is the snapshot taken at start and is what a drop reports
type DragSession struct {
	ID                string
	ItemID            string
	Item              Item
	SourceContainerID string
	SourceIndex       int
	GroupName         string
	StartedAt         time.Time

	CurrentContainerID string
	CurrentIndex       int
	Hovered            bool
}

// NewDragSession creates a session whose current target is its own origin.
func NewDragSession(id string, c Container, item Item, index int, now time.Time) *DragSession {
	return &DragSession{
		ID:                 id,
		ItemID:             item.ID,
		Item:               item.Clone(),
		SourceContainerID:  c.ID,
		SourceIndex:        index,
		GroupName:          c.GroupName,
		StartedAt:          now,
		CurrentContainerID: c.ID,
		CurrentIndex:       index,
	}
}

// Hover moves the current target.
func (s *DragSession) Hover(containerID string, index int) {
	s.CurrentContainerID = containerID
	s.CurrentIndex = index
	s.Hovered = true
}

// StartPayload returns the payload reported by onDragStart and onDragEnd.
func (s *DragSession) StartPayload() DragPayload {
	return DragPayload{
		ContainerID: s.SourceContainerID,
		GroupName:   s.GroupName,
		ID:          s.ItemID,
		Index:       s.SourceIndex,
		Item:        s.Item.Clone(),
	}
}

// Clone returns an independent copy.
func (s *DragSession) Clone() DragSession {
	c := *s
	c.Item = s.Item.Clone()
	return c
}
