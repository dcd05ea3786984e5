package entity

// Control is a button attached to the overlay title bar.
type Control struct {
	Index    int
	CSSClass string
	Title    string
	OnClick  func()
}

// Overlay control classes.
const (
	ControlNavBack  = "nav-back"
	ControlNavAway  = "wb-nav-away"
	ControlSettings = "wb-settings"
)

// PlacementOptions describe where and how the overlay is shown.
type PlacementOptions struct {
	Width     string
	Height    string
	Top       string
	Side      Position
	Margin    int
	ZIndex    int
	Classes   []string
	Hidden    bool
	ShadowEl  string
	FrameName string
}

// Article is the result of reader-mode extraction.
type Article struct {
	Title   string
	Byline  string
	Content string
}
