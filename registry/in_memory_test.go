package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sortable/core"
)

// Interface compliance (compile-time assertion)
var _ core.ContainerRegistry = (*InMemoryRegistry)(nil)

func items(ids ...string) []core.Item {
	out := make([]core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(id, "text", "item "+id))
	}
	return out
}

func TestRegister_Duplicate(t *testing.T) {
	r := NewInMemoryRegistry()
	require.NoError(t, r.Register(core.ContainerConfig{ID: "A", GroupName: "g", Items: items("1")}))

	err := r.Register(core.ContainerConfig{ID: "A", GroupName: "other"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDuplicateContainer))

	c, ok := r.Resolve("A")
	require.True(t, ok)
	assert.Equal(t, "g", c.GroupName, "existing entry must not be overwritten")
	assert.Len(t, c.Items, 1)
}

func TestRegister_Invalid(t *testing.T) {
	r := NewInMemoryRegistry()

	err := r.Register(core.ContainerConfig{})
	assert.ErrorIs(t, err, core.ErrInvalidContainer)

	err = r.Register(core.ContainerConfig{ID: "A", Items: items("1", "1")})
	assert.ErrorIs(t, err, core.ErrInvalidContainer)
	assert.Equal(t, 0, r.Len())
}

func TestUnregister(t *testing.T) {
	r := NewInMemoryRegistry()
	require.NoError(t, r.Register(core.ContainerConfig{ID: "A"}))

	var removed []string
	r.OnUnregister(func(id string) { removed = append(removed, id) })

	require.NoError(t, r.Unregister("A"))
	_, ok := r.Resolve("A")
	assert.False(t, ok)
	assert.Equal(t, []string{"A"}, removed)

	assert.ErrorIs(t, r.Unregister("A"), core.ErrContainerNotFound)
	assert.Equal(t, []string{"A"}, removed, "listener must not fire for unknown ids")

	// the id is free again
	require.NoError(t, r.Register(core.ContainerConfig{ID: "A"}))
}

func TestUnregister_ListenerMayReenter(t *testing.T) {
	r := NewInMemoryRegistry()
	require.NoError(t, r.Register(core.ContainerConfig{ID: "A"}))
	require.NoError(t, r.Register(core.ContainerConfig{ID: "B"}))

	r.OnUnregister(func(string) {
		assert.Equal(t, []string{"B"}, r.IDs())
	})
	require.NoError(t, r.Unregister("A"))
}

func TestGroupsMatch(t *testing.T) {
	r := NewInMemoryRegistry()
	require.NoError(t, r.Register(core.ContainerConfig{ID: "A", GroupName: "g1"}))
	require.NoError(t, r.Register(core.ContainerConfig{ID: "B", GroupName: "g1"}))
	require.NoError(t, r.Register(core.ContainerConfig{ID: "C", GroupName: "g2"}))
	require.NoError(t, r.Register(core.ContainerConfig{ID: "D"}))
	require.NoError(t, r.Register(core.ContainerConfig{ID: "E"}))

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same group", "A", "B", true},
		{"different group", "A", "C", false},
		{"one undefined", "A", "D", false},
		{"both undefined", "D", "E", false},
		{"same container without group", "D", "D", true},
		{"same container with group", "A", "A", true},
		{"unknown source", "X", "A", false},
		{"unknown target", "A", "X", false},
		{"unknown self", "X", "X", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.GroupsMatch(tt.a, tt.b))
		})
	}
}

func TestResolve_ReturnsCopy(t *testing.T) {
	r := NewInMemoryRegistry()
	src := items("1", "2")
	require.NoError(t, r.Register(core.ContainerConfig{ID: "A", Items: src}))

	// mutating caller data after registration has no effect
	src[0].Fields["text"] = "changed"

	c, _ := r.Resolve("A")
	assert.Equal(t, "item 1", c.Items[0].Fields["text"])

	c.Items[1] = core.NewItem("zzz")
	c2, _ := r.Resolve("A")
	assert.Equal(t, "2", c2.Items[1].ID)
}

func TestSetItems(t *testing.T) {
	r := NewInMemoryRegistry()
	require.NoError(t, r.Register(core.ContainerConfig{ID: "A", Items: items("1", "2")}))

	require.NoError(t, r.SetItems("A", items("2", "1")))
	c, _ := r.Resolve("A")
	assert.Equal(t, "2", c.Items[0].ID)

	assert.ErrorIs(t, r.SetItems("B", nil), core.ErrContainerNotFound)
	assert.ErrorIs(t, r.SetItems("A", items("1", "1")), core.ErrInvalidContainer)
}

func TestFindItem(t *testing.T) {
	r := NewInMemoryRegistry()
	require.NoError(t, r.Register(core.ContainerConfig{ID: "A", Items: items("1", "2")}))
	require.NoError(t, r.Register(core.ContainerConfig{ID: "B", Items: items("11", "21")}))

	id, idx, ok := r.FindItem("21")
	require.True(t, ok)
	assert.Equal(t, "B", id)
	assert.Equal(t, 1, idx)

	_, _, ok = r.FindItem("nope")
	assert.False(t, ok)
}

func TestPortalContainerResolvesLikeAnyOther(t *testing.T) {
	r := NewInMemoryRegistry()
	require.NoError(t, r.Register(core.ContainerConfig{ID: "A", GroupName: "g", UsePortal: true}))
	require.NoError(t, r.Register(core.ContainerConfig{ID: "B", GroupName: "g"}))

	assert.True(t, r.GroupsMatch("A", "B"))
	assert.True(t, r.GroupsMatch("B", "A"))
}
