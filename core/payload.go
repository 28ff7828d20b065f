package core

import "encoding/json"

// DragPayload is passed to onDragStart and onDragEnd. Field names of the JSON
// form are the contract consumers rely on.
type DragPayload struct {
	ContainerID string `json:"containerId"`
	GroupName   string `json:"groupName,omitempty"`
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Item        Item   `json:"item"`
}

// DropResult is the reorder/transfer instruction reported by onDrop. The engine
// never applies it; the owning collaborator does.
//
// RemovedFromContainerID and AddedToContainerID are always set. ContainerID is
// additionally set when both are the same container.
type DropResult struct {
	ContainerID            string
	RemovedFromContainerID string
	RemovedIndex           int
	AddedToContainerID     string
	AddedIndex             int
	Payload                Item
}

// IsTransfer reports whether the item moves between two containers.
func (r DropResult) IsTransfer() bool {
	return r.RemovedFromContainerID != r.AddedToContainerID
}

// Kind returns "transfer" or "reorder".
func (r DropResult) Kind() string {
	if r.IsTransfer() {
		return "transfer"
	}
	return "reorder"
}

type intraDrop struct {
	ContainerID  string `json:"containerId"`
	RemovedIndex int    `json:"removedIndex"`
	AddedIndex   int    `json:"addedIndex"`
	Payload      Item   `json:"payload"`
}

type crossDrop struct {
	RemovedFromContainerID string `json:"removedFromContainerId"`
	RemovedIndex           int    `json:"removedIndex"`
	AddedToContainerID     string `json:"addedToContainerId"`
	AddedIndex             int    `json:"addedIndex"`
	Payload                Item   `json:"payload"`
}

// MarshalJSON emits the intra-container shape for reorders and the
// cross-container shape for transfers.
func (r DropResult) MarshalJSON() ([]byte, error) {
	if !r.IsTransfer() {
		return json.Marshal(intraDrop{
			ContainerID:  r.RemovedFromContainerID,
			RemovedIndex: r.RemovedIndex,
			AddedIndex:   r.AddedIndex,
			Payload:      r.Payload,
		})
	}
	return json.Marshal(crossDrop{
		RemovedFromContainerID: r.RemovedFromContainerID,
		RemovedIndex:           r.RemovedIndex,
		AddedToContainerID:     r.AddedToContainerID,
		AddedIndex:             r.AddedIndex,
		Payload:                r.Payload,
	})
}
