package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewItem(t *testing.T) {
	it := NewItem("1", "text", "item 1", 42, "ignored", "odd")

	assert.Equal(t, "1", it.ID)
	assert.Equal(t, map[string]any{"text": "item 1"}, it.Fields)

	v, ok := it.Get("text")
	assert.True(t, ok)
	assert.Equal(t, "item 1", v)
}

func TestItem_CloneIsolation(t *testing.T) {
	it := NewItem("1", "text", "a")
	c := it.Clone()
	c.Fields["text"] = "b"

	assert.Equal(t, "a", it.Fields["text"])
}

func TestItem_RecordKeepsID(t *testing.T) {
	it := Item{ID: "1", Fields: map[string]any{"id": "shadow", "text": "x"}}
	assert.Equal(t, map[string]any{"id": "1", "text": "x"}, it.Record())
}

func TestItem_JSON(t *testing.T) {
	data, err := json.Marshal(NewItem("1", "text", "item 1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","text":"item 1"}`, string(data))

	var it Item
	require.NoError(t, json.Unmarshal([]byte(`{"id":"7","done":true,"n":2}`), &it))
	assert.Equal(t, "7", it.ID)
	assert.Equal(t, map[string]any{"done": true, "n": 2.0}, it.Fields)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"text":"x"}`), &it), ErrInvalidItem)
}

func TestItem_YAML(t *testing.T) {
	var items []Item
	require.NoError(t, yaml.Unmarshal([]byte("- {id: 1, text: one}\n- {id: b}\n"), &items))

	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "one", items[0].Fields["text"])
	assert.Equal(t, "b", items[1].ID)
	assert.Empty(t, items[1].Fields)

	var it Item
	assert.Error(t, yaml.Unmarshal([]byte("{text: x}"), &it))
}

func TestIndexOfAndCloneItems(t *testing.T) {
	items := []Item{NewItem("a"), NewItem("b")}

	assert.Equal(t, 1, IndexOf(items, "b"))
	assert.Equal(t, -1, IndexOf(items, "z"))
	assert.Nil(t, CloneItems(nil))

	c := CloneItems(items)
	c[0].ID = "x"
	assert.Equal(t, "a", items[0].ID)
}
