package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sortable/core"
	"github.com/hupe1980/sortable/internal/testutil"
	"github.com/hupe1980/sortable/logging"
)

type capturingLogger struct {
	logging.NoOpLogger
	errors []string
}

func (c *capturingLogger) Error(msg string, _ ...any) { c.errors = append(c.errors, msg) }

func TestCallbackManager_RunsAllInOrder(t *testing.T) {
	log := &capturingLogger{}
	cm := NewCallbackManager(log)

	var order []int
	cm.RegisterCallback(NewFunctionCallback(CallbackDrop, func(*CallbackContext) error {
		order = append(order, 1)
		return errors.New("first fails")
	}))
	cm.RegisterCallback(NewFunctionCallback(CallbackDrop, func(*CallbackContext) error {
		order = append(order, 2)
		return nil
	}))
	cm.RegisterCallback(NewFunctionCallback(CallbackDragStart, func(*CallbackContext) error {
		order = append(order, 99)
		return nil
	}))

	failed := cm.ExecuteCallbacks(CallbackDrop, &CallbackContext{CallbackType: CallbackDrop})
	assert.Equal(t, 1, failed)
	assert.Equal(t, []int{1, 2}, order)
	assert.Len(t, log.errors, 1)

	assert.Equal(t, 0, cm.ExecuteCallbacks(CallbackCancel, &CallbackContext{}))
}

func TestLoggingCallbacks_WithDragLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelDebug, Output: &buf})

	reg := newRegistry(t,
		testutil.NewContainerBuilder("A").Group("g").Items("1", "2").Build(),
		testutil.NewContainerBuilder("B").Group("g").Items("11").Build(),
	)
	eng := New(func(o *Options) {
		o.Registry = reg
		o.Callbacks = LoggingCallbacks(logger)
		o.NewSessionID = func() string { return "sess-1" }
	})

	require.True(t, eng.BeginDrag("A", "1"))
	eng.UpdateHover("B", 1)
	_, ok := eng.EndDrag()
	require.True(t, ok)

	var drop map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		if m["msg"] == "drop completed" {
			drop = m
		}
	}
	require.NotNil(t, drop)
	assert.Equal(t, "transfer", drop["kind"])
	assert.Equal(t, "sess-1", drop["session_id"])
	assert.Equal(t, "B", drop["to"])
}

func TestLoggingCallback_PlainLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewZerologLogger(&buf, logging.LogLevelInfo)

	cb := NewLoggingCallback(CallbackDragStart, logger)
	payload := core.DragPayload{ContainerID: "A", ID: "1"}
	require.NoError(t, cb.Execute(&CallbackContext{CallbackType: CallbackDragStart, Payload: &payload}))

	assert.Contains(t, buf.String(), `"callback_type":"drag_start"`)
	assert.Contains(t, buf.String(), `"container_id":"A"`)
}
