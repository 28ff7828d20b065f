package core

import (
	"fmt"
	"time"
)

// ContainerConfig is the per-list configuration a collaborator registers.
//
// GroupName empty means "no group": such a container only ever reorders its
// own items and never takes part in a cross-container transfer.
type ContainerConfig struct {
	// ID is the registry key. Required and unique at any instant.
	ID string
	// GroupName is the cross-container match key.
	GroupName string
	// Items is the ordered sequence backing the container.
	Items []Item
	// CanDrag gates session start per item. Nil allows every item.
	CanDrag func(item Item, index int) bool
	// Delay is the time a press must be held before it becomes a drag.
	Delay time.Duration
	// UsePortal records that the container renders outside its logical
	// ancestor. It has no effect on resolution.
	UsePortal bool

	// OnDragStart is invoked once when a session starting in this container begins.
	OnDragStart func(DragPayload)
	// OnDragEnd is invoked once when that session is over, whatever its outcome.
	OnDragEnd func(DragPayload)
	// OnDrop is invoked with the computed result of a legal, non no-op drop.
	OnDrop func(DropResult)
}

// Validate checks the static configuration rules.
func (c ContainerConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("container id is empty: %w", ErrInvalidContainer)
	}
	seen := make(map[string]struct{}, len(c.Items))
	for _, it := range c.Items {
		if it.ID == "" {
			return fmt.Errorf("container %q has an item without id: %w", c.ID, ErrInvalidContainer)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("container %q has duplicate item id %q: %w", c.ID, it.ID, ErrInvalidContainer)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// Container is a registered drop target as seen through the registry. It is a
// snapshot: mutating it does not affect the registry.
type Container struct {
	ContainerConfig
}

// HasGroup reports whether the container takes part in cross-container transfer.
func (c Container) HasGroup() bool { return c.GroupName != "" }

// AllowsDrag evaluates CanDrag for the item at index.
func (c Container) AllowsDrag(item Item, index int) bool {
	if c.CanDrag == nil {
		return true
	}
	return c.CanDrag(item, index)
}

// Lookup returns the item with the given id and its index.
func (c Container) Lookup(itemID string) (Item, int, bool) {
	idx := IndexOf(c.Items, itemID)
	if idx < 0 {
		return Item{}, -1, false
	}
	return c.Items[idx], idx, true
}

// ContainerRegistry tracks which containers currently exist. It is the single
// authority for group membership and item order, independent of where the
// containers are rendered.
type ContainerRegistry interface {
	// Register adds a container. Fails with ErrDuplicateContainer if the id is taken.
	Register(cfg ContainerConfig) error
	// Unregister removes a container and notifies unregister listeners.
	Unregister(containerID string) error
	// Resolve returns a snapshot of the container.
	Resolve(containerID string) (Container, bool)
	// GroupsMatch reports whether a drag may move from a to b.
	GroupsMatch(a, b string) bool
	// SetItems replaces the ordered items of a container.
	SetItems(containerID string, items []Item) error
	// OnUnregister subscribes to container removal.
	OnUnregister(fn func(containerID string))
}
