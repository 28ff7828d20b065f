package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sortable/clock"
	"github.com/hupe1980/sortable/core"
	"github.com/hupe1980/sortable/engine"
	"github.com/hupe1980/sortable/registry"
)

func TestCollector_CountsLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := NewCollector("sortable", reg)

	containers := registry.NewInMemoryRegistry()
	require.NoError(t, containers.Register(core.ContainerConfig{ID: "A", GroupName: "g",
		Items: []core.Item{core.NewItem("1"), core.NewItem("2")}}))
	require.NoError(t, containers.Register(core.ContainerConfig{ID: "B", GroupName: "h",
		Items: []core.Item{core.NewItem("11")}}))

	clk := clock.NewManual(time.Unix(0, 0))
	eng := engine.New(func(o *engine.Options) {
		o.Registry = containers
		o.Clock = clk
		o.Callbacks = col.Callbacks()
	})

	require.True(t, eng.BeginDrag("A", "1"))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.ActiveSessions))
	clk.Advance(300 * time.Millisecond)
	eng.UpdateHover("A", 1)
	eng.EndDrag()

	require.True(t, eng.BeginDrag("A", "1"))
	eng.UpdateHover("B", 0)
	eng.EndDrag()

	require.True(t, eng.BeginDrag("A", "2"))
	eng.Cancel()

	assert.Equal(t, 3.0, testutil.ToFloat64(col.DragsStarted))
	assert.Equal(t, 3.0, testutil.ToFloat64(col.DragsEnded))
	assert.Equal(t, 0.0, testutil.ToFloat64(col.ActiveSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.Drops.WithLabelValues("reorder")))
	assert.Equal(t, 0.0, testutil.ToFloat64(col.Drops.WithLabelValues("transfer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.Suppressed.WithLabelValues(engine.ReasonGroupMismatch)))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.Cancels.WithLabelValues(engine.ReasonAborted)))

	n, err := testutil.GatherAndCount(reg, "sortable_drag_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewCollector_NilRegisterer(t *testing.T) {
	col := NewCollector("", nil)
	for _, cb := range col.Callbacks() {
		require.NoError(t, cb.Execute(&engine.CallbackContext{CallbackType: cb.Type(), Reason: "x"}))
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(col.DragsStarted))
}
