package entity

import (
	"bytes"
	"encoding/json"
)

// Action identifies what a protocol message asks the preview session to do.
type Action string

const (
	ActionCopy     Action = "copy"
	ActionPreview  Action = "preview"
	ActionSearch   Action = "search"
	ActionLoad     Action = "load"
	ActionNavigate Action = "navigate"
	ActionEscape   Action = "escape"
)

// ModeDemo marks a message sent from the product demonstration page.
const ModeDemo = "demo"

// Known reports whether a is one of the protocol actions.
func (a Action) Known() bool {
	switch a {
	case ActionCopy, ActionPreview, ActionSearch, ActionLoad, ActionNavigate, ActionEscape:
		return true
	}
	return false
}

// WireMessage is the cross-frame envelope exchanged over same-origin postMessage.
type WireMessage struct {
	Application string          `json:"application"`
	Action      string          `json:"action"`
	Data        json.RawMessage `json:"data,omitempty"`
	Href        string          `json:"href,omitempty"`
	SourceFrame string          `json:"sourceFrame,omitempty"`
	Mode        string          `json:"mode,omitempty"`
}

// ProtocolMessage is a classified inbound message. It lives for one handling step.
type ProtocolMessage struct {
	Action      Action
	Data        string
	Href        string
	SourceFrame string
	Mode        string
}

// IsDemo reports whether the message carries the demo marker.
func (m ProtocolMessage) IsDemo() bool {
	return m.Mode == ModeDemo
}

// loadPayload is the object form of a "load" message's data.
type loadPayload struct {
	Title string `json:"title"`
}

// Classify converts a wire envelope into a ProtocolMessage.
// Data may be a JSON string, a {"title": ...} object, or any other JSON value,
// which is kept verbatim.
func (w WireMessage) Classify() ProtocolMessage {
	return ProtocolMessage{
		Action:      Action(w.Action),
		Data:        decodeData(w.Data),
		Href:        w.Href,
		SourceFrame: w.SourceFrame,
		Mode:        w.Mode,
	}
}

func decodeData(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '{':
		var p loadPayload
		if err := json.Unmarshal(trimmed, &p); err == nil && p.Title != "" {
			return p.Title
		}
	}
	return string(trimmed)
}

// NewWireMessage builds an envelope with a string payload.
func NewWireMessage(application string, action Action, data string) WireMessage {
	w := WireMessage{Application: application, Action: string(action)}
	if data != "" {
		// Marshalling a string cannot fail.
		encoded, _ := json.Marshal(data)
		w.Data = encoded
	}
	return w
}

// RawMessage is an undecoded cross-frame message with its sender origin.
type RawMessage struct {
	Origin string
	Data   []byte
}
