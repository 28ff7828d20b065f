package testutil

import (
	"sync"

	"github.com/hupe1980/sortable/core"
)

// Recorder captures container callback invocations in order.
type Recorder struct {
	mu     sync.Mutex
	Starts []core.DragPayload
	Ends   []core.DragPayload
	Drops  []core.DropResult
	Order  []string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// OnDragStart records a start payload.
func (r *Recorder) OnDragStart(p core.DragPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Starts = append(r.Starts, p)
	r.Order = append(r.Order, "start")
}

// OnDragEnd records an end payload.
func (r *Recorder) OnDragEnd(p core.DragPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Ends = append(r.Ends, p)
	r.Order = append(r.Order, "end")
}

// OnDrop records a drop result.
func (r *Recorder) OnDrop(d core.DropResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Drops = append(r.Drops, d)
	r.Order = append(r.Order, "drop")
}

// Events returns a copy of the invocation order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.Order...)
}
