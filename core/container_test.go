package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  ContainerConfig
		err  error
	}{
		{"ok", ContainerConfig{ID: "A", Items: []Item{NewItem("1"), NewItem("2")}}, nil},
		{"empty list", ContainerConfig{ID: "A"}, nil},
		{"missing id", ContainerConfig{}, ErrInvalidContainer},
		{"item without id", ContainerConfig{ID: "A", Items: []Item{{}}}, ErrInvalidContainer},
		{"duplicate item", ContainerConfig{ID: "A", Items: []Item{NewItem("1"), NewItem("1")}}, ErrInvalidContainer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestContainer_AllowsDragAndLookup(t *testing.T) {
	c := Container{ContainerConfig{ID: "A", GroupName: "g", Items: []Item{NewItem("1"), NewItem("2")}}}

	assert.True(t, c.HasGroup())
	assert.True(t, c.AllowsDrag(c.Items[0], 0))

	c.CanDrag = func(it Item, _ int) bool { return it.ID != "2" }
	assert.True(t, c.AllowsDrag(c.Items[0], 0))
	assert.False(t, c.AllowsDrag(c.Items[1], 1))

	it, idx, ok := c.Lookup("2")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "2", it.ID)

	_, idx, ok = c.Lookup("9")
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	assert.False(t, Container{}.HasGroup())
}
