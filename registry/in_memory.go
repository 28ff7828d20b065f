package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/sortable/core"
)

// InMemoryRegistry is a core.ContainerRegistry storing containers in a process
// local map. It is safe for concurrent access. Configurations are copied on
// the way in and on the way out so callers cannot mutate registry state
// behind its back.
type InMemoryRegistry struct {
	mu         sync.RWMutex
	containers map[string]*core.Container

	listenersMu sync.RWMutex
	listeners   []func(containerID string)
}

// NewInMemoryRegistry constructs an empty registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{containers: make(map[string]*core.Container)}
}

// Register adds a container. An existing entry is never overwritten.
func (r *InMemoryRegistry) Register(cfg core.ContainerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.containers[cfg.ID]; ok {
		return fmt.Errorf("register %q: %w", cfg.ID, core.ErrDuplicateContainer)
	}

	cfg.Items = core.CloneItems(cfg.Items)
	r.containers[cfg.ID] = &core.Container{ContainerConfig: cfg}

	return nil
}

// Unregister removes a container. Listeners run after the lock is released so
// they may call back into the registry.
func (r *InMemoryRegistry) Unregister(containerID string) error {
	r.mu.Lock()
	if _, ok := r.containers[containerID]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("unregister %q: %w", containerID, core.ErrContainerNotFound)
	}
	delete(r.containers, containerID)
	r.mu.Unlock()

	r.listenersMu.RLock()
	listeners := append([]func(string){}, r.listeners...)
	r.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(containerID)
	}

	return nil
}

// Resolve returns a snapshot of the container.
func (r *InMemoryRegistry) Resolve(containerID string) (core.Container, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.containers[containerID]
	if !ok {
		return core.Container{}, false
	}

	return cloneContainer(c), true
}

// GroupsMatch is true iff both containers exist and are the same container or
// carry the same non-empty group name.
func (r *InMemoryRegistry) GroupsMatch(a, b string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ca, okA := r.containers[a]
	cb, okB := r.containers[b]
	if !okA || !okB {
		return false
	}
	if a == b {
		return true
	}

	return ca.HasGroup() && ca.GroupName == cb.GroupName
}

// SetItems replaces the ordered items of a registered container.
func (r *InMemoryRegistry) SetItems(containerID string, items []core.Item) error {
	cfg := core.ContainerConfig{ID: containerID, Items: items}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[containerID]
	if !ok {
		return fmt.Errorf("set items %q: %w", containerID, core.ErrContainerNotFound)
	}
	c.Items = core.CloneItems(items)

	return nil
}

// OnUnregister subscribes fn to container removal.
func (r *InMemoryRegistry) OnUnregister(fn func(containerID string)) {
	r.listenersMu.Lock()
	defer r.listenersMu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// IDs returns the registered container ids in sorted order.
func (r *InMemoryRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.containers))
	for id := range r.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Len returns the number of registered containers.
func (r *InMemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.containers)
}

// FindItem locates the container currently holding itemID. Lookup order is
// the sorted container id order, so the result is deterministic when an id
// appears in more than one container.
func (r *InMemoryRegistry) FindItem(itemID string) (containerID string, index int, ok bool) {
	for _, id := range r.IDs() {
		c, found := r.Resolve(id)
		if !found {
			continue
		}
		if idx := core.IndexOf(c.Items, itemID); idx >= 0 {
			return id, idx, true
		}
	}
	return "", -1, false
}

func cloneContainer(c *core.Container) core.Container {
	cp := *c
	cp.Items = core.CloneItems(c.Items)
	return cp
}
