package entity

// InputKind is the type of a raw host document event.
type InputKind string

const (
	InputKeyDown   InputKind = "keydown"
	InputClick     InputKind = "click"
	InputScroll    InputKind = "scroll"
	InputCSPReport InputKind = "securitypolicyviolation"
)

// KeyCodeEscape is the legacy key code for Escape.
const KeyCodeEscape = 27

// InputEvent is a raw event observed on the host document.
type InputEvent struct {
	Kind    InputKind
	Key     string
	KeyCode int
	// Target identifies the DOM node the event was dispatched to.
	Target string
	// BlockedURI is set for CSP violation reports.
	BlockedURI string
}

// IsEscape reports whether a key-down event is the Escape key,
// by key name when present, else by legacy key code.
func (e InputEvent) IsEscape() bool {
	if e.Kind != InputKeyDown {
		return false
	}
	if e.Key != "" {
		return e.Key == "Escape" || e.Key == "Esc"
	}
	return e.KeyCode == KeyCodeEscape
}
