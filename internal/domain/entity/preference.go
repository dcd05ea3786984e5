package entity

// Preference keys recognized by the preview session.
const (
	PrefAutoHide         = "automatically-hide-previews"
	PrefSearchEngine     = "search-engine"
	PrefDisableIncognito = "disable-incognito-google"
	PrefCloseOnEsc       = "close-on-esc"
	PrefWidth            = "previewr-width"
	PrefHeight           = "previewr-height"
	PrefPosition         = "previewr-position"
	PrefFeedbackData     = "feedback-data"
)

// Default preference values.
const (
	DefaultAutoHide         = false
	DefaultSearchEngine     = "google"
	DefaultDisableIncognito = false
	DefaultCloseOnEsc       = true
	DefaultWidth            = "55"
	DefaultHeight           = "80"
	DefaultPosition         = PositionRight
)

// Position is the screen side the overlay is anchored to.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// ParsePosition returns the matching Position, defaulting to right.
func ParsePosition(s string) Position {
	if Position(s) == PositionLeft {
		return PositionLeft
	}
	return PositionRight
}
