package usecase

import (
	"context"
	"encoding/json"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/logging"
)

// InputWatcher reacts to raw host document events.
type InputWatcher interface {
	HandleEvent(ctx context.Context, event entity.InputEvent)
}

// OverlayController is the part of the preview session the outside watchers need.
type OverlayController interface {
	IsOpen() bool
	ContainsTarget(nodeID string) bool
	CloseOverlay(ctx context.Context)
}

// EscapeKeyWatcher turns Escape key-downs into "escape" protocol messages
// routed through the same dispatcher as cross-frame messages.
type EscapeKeyWatcher struct {
	dispatcher    port.MessageDispatcher
	document      port.HostDocument
	applicationID string
	frameName     string
}

// NewEscapeKeyWatcher creates an escape key watcher.
func NewEscapeKeyWatcher(dispatcher port.MessageDispatcher, document port.HostDocument, applicationID string) *EscapeKeyWatcher {
	return &EscapeKeyWatcher{
		dispatcher:    dispatcher,
		document:      document,
		applicationID: applicationID,
		frameName:     FrameName(applicationID),
	}
}

// HandleEvent implements InputWatcher.
func (w *EscapeKeyWatcher) HandleEvent(ctx context.Context, event entity.InputEvent) {
	if !event.IsEscape() {
		return
	}

	wire := entity.WireMessage{
		Application: w.applicationID,
		Action:      string(entity.ActionEscape),
		Href:        w.document.Location(),
		SourceFrame: w.frameName,
	}
	data, err := json.Marshal(wire)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to encode escape message")
		return
	}

	w.dispatcher.Dispatch(ctx, entity.RawMessage{Origin: w.document.Origin(), Data: data})
}

// OutsideWatcher closes the overlay when the user clicks or scrolls outside
// of it and the auto-hide preference is on.
type OutsideWatcher struct {
	kind    entity.InputKind
	overlay OverlayController
	prefs   port.Preferences
}

// NewClickOutsideWatcher watches clicks.
func NewClickOutsideWatcher(overlay OverlayController, prefs port.Preferences) *OutsideWatcher {
	return &OutsideWatcher{kind: entity.InputClick, overlay: overlay, prefs: prefs}
}

// NewScrollOutsideWatcher watches scrolls.
func NewScrollOutsideWatcher(overlay OverlayController, prefs port.Preferences) *OutsideWatcher {
	return &OutsideWatcher{kind: entity.InputScroll, overlay: overlay, prefs: prefs}
}

// Kind returns the event kind the watcher reacts to.
func (w *OutsideWatcher) Kind() entity.InputKind {
	return w.kind
}

// HandleEvent implements InputWatcher.
func (w *OutsideWatcher) HandleEvent(ctx context.Context, event entity.InputEvent) {
	if event.Kind != w.kind {
		return
	}
	if !readBool(ctx, w.prefs, entity.PrefAutoHide, entity.DefaultAutoHide) {
		return
	}
	if !w.overlay.IsOpen() || w.overlay.ContainsTarget(event.Target) {
		return
	}

	logging.FromContext(ctx).Debug().Str("kind", string(event.Kind)).Str("target", event.Target).Msg("auto-hiding preview")
	w.overlay.CloseOverlay(ctx)
}

// CSPViolationWatcher logs content security policy violations raised by the
// overlay's own framed document.
type CSPViolationWatcher struct {
	document  port.HostDocument
	frameName string
}

// NewCSPViolationWatcher creates a CSP violation watcher.
func NewCSPViolationWatcher(document port.HostDocument, applicationID string) *CSPViolationWatcher {
	return &CSPViolationWatcher{document: document, frameName: FrameName(applicationID)}
}

// HandleEvent implements InputWatcher.
func (w *CSPViolationWatcher) HandleEvent(ctx context.Context, event entity.InputEvent) {
	if event.Kind != entity.InputCSPReport || w.document.Name() != w.frameName {
		return
	}
	logging.FromContext(ctx).Error().Str("blocked_uri", event.BlockedURI).Msg("CSP error")
}

// Watchers fans an event out to every watcher, in order.
type Watchers []InputWatcher

// HandleEvent implements InputWatcher.
func (ws Watchers) HandleEvent(ctx context.Context, event entity.InputEvent) {
	for _, w := range ws {
		w.HandleEvent(ctx, event)
	}
}
