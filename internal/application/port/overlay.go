package port

import (
	"context"
	"errors"

	"github.com/bnema/previewr/internal/domain/entity"
)

// ErrOverlayClosed is returned when acting on a surface that has been closed.
var ErrOverlayClosed = errors.New("overlay closed")

// OverlayOpenOptions configure a new overlay surface.
// FrameName is applied to the framed sub-document when the surface is built,
// so "load" messages can be attributed to it later.
type OverlayOpenOptions struct {
	Title     string
	IconURL   string
	TargetURL string
	// HTML replaces TargetURL when set (reader mode).
	HTML      string
	Placement entity.PlacementOptions
	// OnClose is emitted once when the surface closes, whatever triggered it.
	OnClose func()
}

// FeedbackHandler receives progress signals from the embedded feedback form.
type FeedbackHandler func(ctx context.Context, status entity.FeedbackProgress, data string)

// OverlaySurface creates overlay windows on the host page.
type OverlaySurface interface {
	Open(ctx context.Context, opts OverlayOpenOptions) (OverlayHandle, error)
}

// OverlayHandle is a live overlay window.
type OverlayHandle interface {
	SetTargetURL(ctx context.Context, url string)
	SetHTML(ctx context.Context, html string)
	SetTitle(ctx context.Context, title string)
	SetIcon(ctx context.Context, iconURL string)
	// Restore un-minimizes and un-hides the surface.
	Restore(ctx context.Context)
	// Close removes the surface and emits OnClose.
	Close(ctx context.Context)

	AddControl(ctx context.Context, control entity.Control)
	RemoveControl(ctx context.Context, cssClass string)
	AddClass(ctx context.Context, class string)
	RemoveClass(ctx context.Context, class string)

	// SetFeedbackHandler replaces the feedback form progress subscriber.
	SetFeedbackHandler(handler FeedbackHandler)

	// FrameName identifies the framed sub-document.
	FrameName() string
	// Contains reports whether the DOM node belongs to the surface's subtree.
	Contains(nodeID string) bool
}
