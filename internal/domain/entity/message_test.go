package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireMessage_ClassifyStringData(t *testing.T) {
	var w WireMessage
	require.NoError(t, json.Unmarshal([]byte(`{"application":"app","action":"preview","data":"https://a.test","mode":"demo"}`), &w))

	msg := w.Classify()
	assert.Equal(t, ActionPreview, msg.Action)
	assert.Equal(t, "https://a.test", msg.Data)
	assert.True(t, msg.IsDemo())
}

func TestWireMessage_ClassifyLoadObjectData(t *testing.T) {
	var w WireMessage
	require.NoError(t, json.Unmarshal([]byte(`{"application":"app","action":"load","data":{"title":"Hello"},"href":"https://a.test/x","sourceFrame":"app/mainframe"}`), &w))

	msg := w.Classify()
	assert.Equal(t, ActionLoad, msg.Action)
	assert.Equal(t, "Hello", msg.Data)
	assert.Equal(t, "https://a.test/x", msg.Href)
	assert.Equal(t, "app/mainframe", msg.SourceFrame)
}

func TestWireMessage_ClassifyMissingAndOtherData(t *testing.T) {
	assert.Equal(t, "", WireMessage{Action: "escape"}.Classify().Data)
	assert.Equal(t, "", WireMessage{Data: json.RawMessage("null")}.Classify().Data)
	assert.Equal(t, "5", WireMessage{Data: json.RawMessage("5")}.Classify().Data)
}

func TestNewWireMessage_RoundTrips(t *testing.T) {
	w := NewWireMessage("app", ActionSearch, `cats "and" dogs`)
	assert.Equal(t, `cats "and" dogs`, w.Classify().Data)
	assert.Nil(t, NewWireMessage("app", ActionEscape, "").Data)
}

func TestAction_Known(t *testing.T) {
	assert.True(t, ActionEscape.Known())
	assert.False(t, Action("teleport").Known())
}

func TestInputEvent_IsEscape(t *testing.T) {
	assert.True(t, InputEvent{Kind: InputKeyDown, Key: "Escape"}.IsEscape())
	assert.True(t, InputEvent{Kind: InputKeyDown, Key: "Esc"}.IsEscape())
	assert.True(t, InputEvent{Kind: InputKeyDown, KeyCode: KeyCodeEscape}.IsEscape())
	assert.False(t, InputEvent{Kind: InputKeyDown, Key: "Enter", KeyCode: KeyCodeEscape}.IsEscape())
	assert.False(t, InputEvent{Kind: InputClick, Key: "Escape"}.IsEscape())
}
