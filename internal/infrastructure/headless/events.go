package headless

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/previewr/internal/domain/entity"
)

// EventType names a scripted host event.
type EventType string

const (
	EventMessage  EventType = "message"
	EventKeyDown  EventType = "keydown"
	EventClick    EventType = "click"
	EventScroll   EventType = "scroll"
	EventClose    EventType = "close"
	EventControl  EventType = "control"
	EventFeedback EventType = "feedback"
	EventCSP      EventType = "csp"
)

// maxLineSize bounds one script line.
const maxLineSize = 1 << 20

// ErrInvalidEvent is wrapped by every script decoding error.
var ErrInvalidEvent = errors.New("invalid event")

// Event is one line of an event script.
//
//	{"type":"message","message":{"application":"better-previews","action":"preview","data":"https://a.test/"}}
//	{"type":"keydown","key":"Escape"}
//	{"type":"click","target":"page-link"}
//	{"type":"control","control":"wb-nav-away"}
//	{"type":"feedback","status":"started","data":"5"}
type Event struct {
	Type EventType `json:"type"`

	// Origin overrides the sender origin of a message; the document origin by default.
	Origin  string          `json:"origin,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`

	Key     string `json:"key,omitempty"`
	KeyCode int    `json:"keyCode,omitempty"`
	Target  string `json:"target,omitempty"`

	Control string `json:"control,omitempty"`
	Status  string `json:"status,omitempty"`
	Data    string `json:"data,omitempty"`

	BlockedURI string `json:"blockedURI,omitempty"`
	// Frame is the browsing context that raised a CSP report.
	Frame string `json:"frame,omitempty"`
}

// Validate checks that the fields required by the event type are present.
func (e Event) Validate() error {
	switch e.Type {
	case EventMessage:
		if len(bytes.TrimSpace(e.Message)) == 0 {
			return fmt.Errorf("%w: message event without message", ErrInvalidEvent)
		}
	case EventKeyDown:
		if e.Key == "" && e.KeyCode == 0 {
			return fmt.Errorf("%w: keydown without key", ErrInvalidEvent)
		}
	case EventControl:
		if e.Control == "" {
			return fmt.Errorf("%w: control event without control", ErrInvalidEvent)
		}
	case EventFeedback:
		if e.Status == "" {
			return fmt.Errorf("%w: feedback event without status", ErrInvalidEvent)
		}
	case EventClick, EventScroll, EventClose, EventCSP:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	return nil
}

// Input converts key, click, scroll and CSP events to host input events.
func (e Event) Input() (entity.InputEvent, bool) {
	switch e.Type {
	case EventKeyDown:
		return entity.InputEvent{Kind: entity.InputKeyDown, Key: e.Key, KeyCode: e.KeyCode, Target: e.Target}, true
	case EventClick:
		return entity.InputEvent{Kind: entity.InputClick, Target: e.Target}, true
	case EventScroll:
		return entity.InputEvent{Kind: entity.InputScroll, Target: e.Target}, true
	case EventCSP:
		return entity.InputEvent{Kind: entity.InputCSPReport, BlockedURI: e.BlockedURI}, true
	}
	return entity.InputEvent{}, false
}

// Decoder reads events from a JSON-lines script.
// Blank lines and lines starting with '#' are skipped.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Decoder{scanner: scanner}
}

// Line returns the number of the last line read.
func (d *Decoder) Line() int {
	return d.line
}

// Next returns the next event, or io.EOF after the last one.
func (d *Decoder) Next() (Event, error) {
	for d.scanner.Scan() {
		d.line++
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return Event{}, fmt.Errorf("line %d: %w: %v", d.line, ErrInvalidEvent, err)
		}
		if err := event.Validate(); err != nil {
			return Event{}, fmt.Errorf("line %d: %w", d.line, err)
		}
		return event, nil
	}
	if err := d.scanner.Err(); err != nil {
		return Event{}, fmt.Errorf("read script: %w", err)
	}
	return Event{}, io.EOF
}

// DecodeAll reads every event of a script.
func DecodeAll(r io.Reader) ([]Event, error) {
	d := NewDecoder(r)
	var events []Event
	for {
		event, err := d.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
}
