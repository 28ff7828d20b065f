// Package delay implements the press-versus-drag gate. A press on a container
// configured with a delay only becomes a drag once the delay has elapsed while
// the press is still held; releasing earlier is a click.
package delay

import (
	"sync"
	"time"

	"github.com/hupe1980/sortable/core"
)

// State is the lifecycle state of an admission.
type State int

const (
	// Pending means the timer has not fired yet.
	Pending State = iota
	// Admitted means the press became a drag.
	Admitted
	// Cancelled means the press was released or replaced before the timer fired.
	Cancelled
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Admitted:
		return "admitted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Admission is a cancellable pending decision for one press.
type Admission struct {
	gate        *Gate
	ContainerID string
	ItemID      string
	Delay       time.Duration

	state   State
	timer   core.Timer
	onAdmit func()
}

// State returns the current state.
func (a *Admission) State() State {
	a.gate.mu.Lock()
	defer a.gate.mu.Unlock()
	return a.state
}

// Cancel withdraws a pending admission. It reports whether the admission was
// still pending.
func (a *Admission) Cancel() bool {
	a.gate.mu.Lock()
	defer a.gate.mu.Unlock()
	return a.gate.cancelLocked(a)
}

// Gate tracks at most one pending admission per container.
type Gate struct {
	clock core.Clock

	mu      sync.Mutex
	pending map[string]*Admission
}

// NewGate creates a gate scheduling its timers on clock.
func NewGate(clock core.Clock) *Gate {
	return &Gate{clock: clock, pending: make(map[string]*Admission)}
}

// Admit starts a gated press. With d <= 0, onAdmit runs synchronously before
// Admit returns. Otherwise onAdmit runs when the timer fires, unless the
// admission was cancelled first. A pending admission on the same container is
// replaced.
func (g *Gate) Admit(containerID, itemID string, d time.Duration, onAdmit func()) *Admission {
	a := &Admission{gate: g, ContainerID: containerID, ItemID: itemID, Delay: d, onAdmit: onAdmit}

	g.mu.Lock()
	if prev, ok := g.pending[containerID]; ok {
		g.cancelLocked(prev)
	}

	if d <= 0 {
		a.state = Admitted
		g.mu.Unlock()
		if onAdmit != nil {
			onAdmit()
		}
		return a
	}

	g.pending[containerID] = a
	a.timer = g.clock.AfterFunc(d, func() { g.fire(a) })
	g.mu.Unlock()

	return a
}

// Release cancels every pending admission, as a pointer-up does. It returns
// the number of admissions withdrawn.
func (g *Gate) Release() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for _, a := range g.pending {
		if g.cancelLocked(a) {
			n++
		}
	}
	return n
}

// Cancel withdraws the pending admission of one container, if any.
func (g *Gate) Cancel(containerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, ok := g.pending[containerID]
	if !ok {
		return false
	}
	return g.cancelLocked(a)
}

// Pending reports whether a press on the container is waiting for its delay.
func (g *Gate) Pending(containerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[containerID]
	return ok
}

// AnyPending reports whether any press is waiting.
func (g *Gate) AnyPending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending) > 0
}

func (g *Gate) fire(a *Admission) {
	g.mu.Lock()
	if a.state != Pending {
		g.mu.Unlock()
		return
	}
	a.state = Admitted
	if g.pending[a.ContainerID] == a {
		delete(g.pending, a.ContainerID)
	}
	g.mu.Unlock()

	if a.onAdmit != nil {
		a.onAdmit()
	}
}

// cancelLocked requires g.mu.
func (g *Gate) cancelLocked(a *Admission) bool {
	if a.state != Pending {
		return false
	}
	a.state = Cancelled
	if a.timer != nil {
		a.timer.Stop()
	}
	if g.pending[a.ContainerID] == a {
		delete(g.pending, a.ContainerID)
	}
	return true
}
