package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropResult_MarshalJSON(t *testing.T) {
	payload := NewItem("1", "text", "item 1")

	t.Run("reorder", func(t *testing.T) {
		r := DropResult{
			ContainerID:            "A",
			RemovedFromContainerID: "A",
			RemovedIndex:           0,
			AddedToContainerID:     "A",
			AddedIndex:             1,
			Payload:                payload,
		}
		assert.False(t, r.IsTransfer())
		assert.Equal(t, "reorder", r.Kind())

		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"containerId":"A","removedIndex":0,"addedIndex":1,"payload":{"id":"1","text":"item 1"}}`, string(data))
	})

	t.Run("transfer", func(t *testing.T) {
		r := DropResult{
			RemovedFromContainerID: "A",
			RemovedIndex:           0,
			AddedToContainerID:     "B",
			AddedIndex:             2,
			Payload:                payload,
		}
		assert.True(t, r.IsTransfer())
		assert.Equal(t, "transfer", r.Kind())

		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"removedFromContainerId":"A","removedIndex":0,"addedToContainerId":"B","addedIndex":2,"payload":{"id":"1","text":"item 1"}}`, string(data))
	})
}

func TestDragPayload_JSON(t *testing.T) {
	data, err := json.Marshal(DragPayload{ContainerID: "A", ID: "1", Index: 0, Item: NewItem("1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"containerId":"A","id":"1","index":0,"item":{"id":"1"}}`, string(data))
}
