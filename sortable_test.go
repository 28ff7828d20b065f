package sortable

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sortable/clock"
	"github.com/hupe1980/sortable/core"
	"github.com/hupe1980/sortable/internal/testutil"
)

func ids(items []core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestBoard_DelayedTransferApplied(t *testing.T) {
	mc := clock.NewManual(time.Unix(0, 0))
	reg := prometheus.NewRegistry()
	b := New(func(o *Options) {
		o.Clock = mc
		o.MetricsRegisterer = reg
	})

	rec := testutil.NewRecorder()
	require.NoError(t, b.Register(testutil.NewContainerBuilder("A").Group("g").Items("1", "2").Delay(200*time.Millisecond).Recorder(rec).Build()))
	require.NoError(t, b.Register(testutil.NewContainerBuilder("B").Group("g").Items("11").Build()))

	b.Press("A", "1")
	b.Move("B", 1)
	assert.False(t, b.Dragging())

	mc.Advance(200 * time.Millisecond)
	require.True(t, b.Dragging())

	res, ok := b.Release()
	require.True(t, ok)
	assert.True(t, res.IsTransfer())
	assert.Equal(t, 1, res.AddedIndex)
	assert.Equal(t, []string{"start", "end", "drop"}, rec.Events())

	require.NoError(t, b.Apply(res))

	a, _ := b.Items("A")
	bb, _ := b.Items("B")
	assert.Equal(t, []string{"2"}, ids(a))
	assert.Equal(t, []string{"11", "1"}, ids(bb))

	require.NotNil(t, b.Metrics())
	assert.Equal(t, 1.0, promtest.ToFloat64(b.Metrics().DragsStarted))
	assert.Equal(t, 1.0, promtest.ToFloat64(b.Metrics().Drops.WithLabelValues("transfer")))
}

func TestBoard_ReorderAndUnregister(t *testing.T) {
	b := New()
	assert.Nil(t, b.Metrics())

	require.NoError(t, b.Register(testutil.NewContainerBuilder("A").Items("1", "2", "3").Build()))

	require.True(t, b.BeginDrag("A", "3"))
	b.UpdateHover("A", 0)
	res, ok := b.EndDrag()
	require.True(t, ok)
	require.NoError(t, b.Apply(res))

	items, ok := b.Items("A")
	require.True(t, ok)
	assert.Equal(t, []string{"3", "1", "2"}, ids(items))

	require.True(t, b.BeginDrag("A", "1"))
	require.NoError(t, b.Unregister("A"))
	assert.False(t, b.Dragging())

	_, ok = b.Items("A")
	assert.False(t, ok)
	assert.ErrorIs(t, b.Apply(res), core.ErrContainerNotFound)
}

func TestBoard_Cancel(t *testing.T) {
	b := New()
	rec := testutil.NewRecorder()
	require.NoError(t, b.Register(testutil.NewContainerBuilder("A").Items("1", "2").Recorder(rec).Build()))

	require.True(t, b.BeginDrag("A", "1"))
	b.UpdateHover("A", 1)
	assert.True(t, b.Cancel())

	_, ok := b.EndDrag()
	assert.False(t, ok)
	assert.Equal(t, []string{"start", "end"}, rec.Events())
	assert.Same(t, b.Registry(), b.Engine().Registry())
}

func TestBoard_ApplyRejectsDuplicateTransfer(t *testing.T) {
	b := New()
	require.NoError(t, b.Register(testutil.NewContainerBuilder("A").Group("g").Items("1", "2").Build()))
	require.NoError(t, b.Register(testutil.NewContainerBuilder("B").Group("g").Items("1", "9").Build()))

	require.True(t, b.BeginDrag("A", "1"))
	b.UpdateHover("B", 0)
	res, ok := b.EndDrag()
	require.True(t, ok)

	assert.ErrorIs(t, b.Apply(res), core.ErrInvalidContainer)

	a, _ := b.Items("A")
	bb, _ := b.Items("B")
	assert.Equal(t, []string{"1", "2"}, ids(a))
	assert.Equal(t, []string{"1", "9"}, ids(bb))
}
