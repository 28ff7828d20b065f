package testutil

import (
	"time"

	"github.com/hupe1980/sortable/core"
)

// ContainerBuilder helps construct container configurations with fluent chaining.
// Example:
//
//	cfg := NewContainerBuilder("A").Group("g").Items("1", "2").Build()
type ContainerBuilder struct {
	cfg core.ContainerConfig
}

// NewContainerBuilder creates a builder for a container with the given id.
func NewContainerBuilder(id string) *ContainerBuilder {
	return &ContainerBuilder{cfg: core.ContainerConfig{ID: id}}
}

// Group sets the group name (chainable).
func (b *ContainerBuilder) Group(name string) *ContainerBuilder {
	b.cfg.GroupName = name
	return b
}

// Items appends items with a "text" field of "item <id>" (chainable).
func (b *ContainerBuilder) Items(ids ...string) *ContainerBuilder {
	for _, id := range ids {
		b.cfg.Items = append(b.cfg.Items, Item(id))
	}
	return b
}

// Delay sets the press delay (chainable).
func (b *ContainerBuilder) Delay(d time.Duration) *ContainerBuilder {
	b.cfg.Delay = d
	return b
}

// Portal marks the container as rendered through a portal (chainable).
func (b *ContainerBuilder) Portal() *ContainerBuilder {
	b.cfg.UsePortal = true
	return b
}

// CanDrag sets the drag predicate (chainable).
func (b *ContainerBuilder) CanDrag(fn func(core.Item, int) bool) *ContainerBuilder {
	b.cfg.CanDrag = fn
	return b
}

// Recorder wires all three container callbacks to r (chainable).
func (b *ContainerBuilder) Recorder(r *Recorder) *ContainerBuilder {
	b.cfg.OnDragStart = r.OnDragStart
	b.cfg.OnDragEnd = r.OnDragEnd
	b.cfg.OnDrop = r.OnDrop
	return b
}

// Build returns the configuration.
func (b *ContainerBuilder) Build() core.ContainerConfig {
	return b.cfg
}

// Item returns the item {id, text: "item <id>"} used throughout the tests.
func Item(id string) core.Item {
	return core.NewItem(id, "text", "item "+id)
}
