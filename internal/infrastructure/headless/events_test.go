package headless

import (
	"strings"
	"testing"

	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAll(t *testing.T) {
	script := `
# open two previews then escape
{"type":"message","message":{"application":"better-previews","action":"preview","data":"https://a.test/"}}

{"type":"click","target":"page-link"}
{"type":"keydown","key":"Escape"}
{"type":"control","control":"wb-nav-away"}
{"type":"feedback","status":"started","data":"5"}
{"type":"csp","blockedURI":"https://evil.test/x.js","frame":"better-previews/mainframe"}
{"type":"close"}
`
	events, err := DecodeAll(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, events, 7)

	assert.Equal(t, EventMessage, events[0].Type)
	assert.JSONEq(t, `{"application":"better-previews","action":"preview","data":"https://a.test/"}`, string(events[0].Message))
	assert.Equal(t, "page-link", events[1].Target)
	assert.Equal(t, "wb-nav-away", events[3].Control)
	assert.Equal(t, "5", events[4].Data)
	assert.Equal(t, "better-previews/mainframe", events[5].Frame)
	assert.Equal(t, EventClose, events[6].Type)
}

func TestDecoder_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		line   string
	}{
		{name: "malformed json", script: "{\"type\":\"click\"}\n{nope", line: "line 2"},
		{name: "unknown type", script: `{"type":"hover"}`, line: "line 1"},
		{name: "message without envelope", script: `{"type":"message"}`, line: "line 1"},
		{name: "keydown without key", script: `{"type":"keydown"}`, line: "line 1"},
		{name: "control without class", script: `{"type":"control"}`, line: "line 1"},
		{name: "feedback without status", script: "\n\n{\"type\":\"feedback\"}", line: "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAll(strings.NewReader(tt.script))
			require.ErrorIs(t, err, ErrInvalidEvent)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestEvent_Input(t *testing.T) {
	tests := []struct {
		event Event
		want  entity.InputEvent
		ok    bool
	}{
		{Event{Type: EventKeyDown, KeyCode: 27}, entity.InputEvent{Kind: entity.InputKeyDown, KeyCode: 27}, true},
		{Event{Type: EventClick, Target: "x"}, entity.InputEvent{Kind: entity.InputClick, Target: "x"}, true},
		{Event{Type: EventScroll}, entity.InputEvent{Kind: entity.InputScroll}, true},
		{Event{Type: EventCSP, BlockedURI: "u"}, entity.InputEvent{Kind: entity.InputCSPReport, BlockedURI: "u"}, true},
		{Event{Type: EventClose}, entity.InputEvent{}, false},
	}
	for _, tt := range tests {
		got, ok := tt.event.Input()
		assert.Equal(t, tt.ok, ok, tt.event.Type)
		assert.Equal(t, tt.want, got, tt.event.Type)
	}
}
