package delay

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hupe1980/sortable/clock"
)

func newManualGate() (*Gate, *clock.Manual) {
	c := clock.NewManual(time.Unix(0, 0))
	return NewGate(c), c
}

func TestAdmit_ZeroDelayIsSynchronous(t *testing.T) {
	g, _ := newManualGate()
	admitted := false

	a := g.Admit("A", "1", 0, func() { admitted = true })

	assert.True(t, admitted)
	assert.Equal(t, Admitted, a.State())
	assert.False(t, g.Pending("A"))
}

func TestAdmit_ReleaseBeforeDelayIsAClick(t *testing.T) {
	g, c := newManualGate()
	admitted := false

	a := g.Admit("A", "1", 200*time.Millisecond, func() { admitted = true })
	assert.True(t, g.Pending("A"))

	c.Advance(199 * time.Millisecond)
	assert.Equal(t, 1, g.Release())

	c.Advance(time.Second)
	assert.False(t, admitted)
	assert.Equal(t, Cancelled, a.State())
	assert.False(t, g.AnyPending())
	assert.Equal(t, 0, c.Pending(), "timer must be stopped")
}

func TestAdmit_HoldPastDelayAdmits(t *testing.T) {
	g, c := newManualGate()
	admitted := 0

	a := g.Admit("A", "1", 200*time.Millisecond, func() { admitted++ })
	c.Advance(200 * time.Millisecond)

	assert.Equal(t, 1, admitted)
	assert.Equal(t, Admitted, a.State())
	assert.False(t, g.Pending("A"))

	// late release is harmless
	assert.Equal(t, 0, g.Release())
	assert.False(t, a.Cancel())
	assert.Equal(t, 1, admitted)
}

func TestAdmit_NewPressReplacesPending(t *testing.T) {
	g, c := newManualGate()
	var got []string

	first := g.Admit("A", "1", 200*time.Millisecond, func() { got = append(got, "1") })
	c.Advance(100 * time.Millisecond)
	second := g.Admit("A", "2", 200*time.Millisecond, func() { got = append(got, "2") })

	assert.Equal(t, Cancelled, first.State())
	assert.Equal(t, Pending, second.State())

	c.Advance(150 * time.Millisecond)
	assert.Empty(t, got, "replaced press must not fire")

	c.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"2"}, got)
}

func TestAdmit_ContainersAreIndependent(t *testing.T) {
	g, c := newManualGate()
	var got []string

	g.Admit("A", "1", 100*time.Millisecond, func() { got = append(got, "A") })
	g.Admit("B", "11", 100*time.Millisecond, func() { got = append(got, "B") })

	assert.True(t, g.Cancel("A"))
	assert.False(t, g.Cancel("A"))

	c.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"B"}, got)
}

func TestAdmit_RealClockNoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	g := NewGate(clock.Real{})
	var fired atomic.Int32
	done := make(chan struct{})

	g.Admit("A", "1", 10*time.Millisecond, func() {
		fired.Add(1)
		close(done)
	})
	cancelled := g.Admit("B", "2", time.Hour, func() { fired.Add(1) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("admission did not fire")
	}

	require.True(t, cancelled.Cancel())
	assert.Equal(t, int32(1), fired.Load())
}
