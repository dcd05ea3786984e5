package port

import (
	"context"
	"io"
)

// HostDocument is the page the preview overlay is embedded in.
type HostDocument interface {
	// Origin is the document's own scheme://host[:port].
	Origin() string
	// Location is the current document URL.
	Location() string
	// IsTopLevel is false when the document is itself framed.
	IsTopLevel() bool
	// Name is the browsing context name (window.name).
	Name() string
	// Snapshot returns a fresh copy of the document markup.
	Snapshot() io.Reader
	// MaxZIndex is the highest numeric z-index used by the page, or 0.
	MaxZIndex() int
}

// HostWindow performs browser-level actions on behalf of overlay controls.
type HostWindow interface {
	OpenInNewTab(ctx context.Context, url string) error
	OpenSettings(ctx context.Context) error
}
