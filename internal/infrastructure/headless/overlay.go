package headless

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/logging"
)

// ErrUnknownControl is returned when clicking a control the overlay does not have.
var ErrUnknownControl = errors.New("unknown overlay control")

// OverlayState is a point-in-time copy of a headless overlay.
type OverlayState struct {
	Open      bool
	FrameName string
	TargetURL string
	HTML      string
	Title     string
	IconURL   string
	Controls  []string
	Classes   []string
	Restores  int
	Placement entity.PlacementOptions
}

// Surface is an OverlaySurface that keeps overlays in memory.
type Surface struct {
	doc *Document

	mu      sync.Mutex
	current *Overlay
	opened  int
}

var _ port.OverlaySurface = (*Surface)(nil)

// NewSurface creates a surface. doc may be nil; when set, page elements nested
// under the overlay's shadow element count as part of the overlay.
func NewSurface(doc *Document) *Surface {
	return &Surface{doc: doc}
}

// Open implements port.OverlaySurface.
func (s *Surface) Open(ctx context.Context, opts port.OverlayOpenOptions) (port.OverlayHandle, error) {
	if opts.TargetURL == "" && opts.HTML == "" {
		return nil, fmt.Errorf("overlay needs a target url or html")
	}

	o := &Overlay{
		opts:     opts,
		target:   opts.TargetURL,
		html:     opts.HTML,
		title:    opts.Title,
		icon:     opts.IconURL,
		controls: make(map[string]entity.Control),
		classes:  make(map[string]bool),
		doc:      s.doc,
	}
	for _, class := range opts.Placement.Classes {
		o.classes[class] = true
	}

	s.mu.Lock()
	s.current = o
	s.opened++
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("frame", opts.Placement.FrameName).
		Int("z_index", opts.Placement.ZIndex).
		Msg("headless overlay opened")
	return o, nil
}

// Current returns the most recently opened overlay, or nil.
func (s *Surface) Current() *Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Opened counts overlays created by this surface.
func (s *Surface) Opened() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

// State describes the current overlay; a surface that never opened one is closed.
func (s *Surface) State() OverlayState {
	if o := s.Current(); o != nil {
		return o.State()
	}
	return OverlayState{}
}

// Overlay is a headless OverlayHandle.
type Overlay struct {
	opts port.OverlayOpenOptions
	doc  *Document

	mu       sync.Mutex
	target   string
	html     string
	title    string
	icon     string
	restores int
	closed   bool
	controls map[string]entity.Control
	classes  map[string]bool
	feedback port.FeedbackHandler
}

var _ port.OverlayHandle = (*Overlay)(nil)

// SetTargetURL implements port.OverlayHandle.
func (o *Overlay) SetTargetURL(_ context.Context, url string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.target, o.html = url, ""
}

// SetHTML implements port.OverlayHandle.
func (o *Overlay) SetHTML(_ context.Context, html string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.html = html
}

// SetTitle implements port.OverlayHandle.
func (o *Overlay) SetTitle(_ context.Context, title string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.title = title
}

// SetIcon implements port.OverlayHandle.
func (o *Overlay) SetIcon(_ context.Context, iconURL string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.icon = iconURL
}

// Restore implements port.OverlayHandle.
func (o *Overlay) Restore(context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.restores++
}

// Close implements port.OverlayHandle. OnClose runs once, after the lock is released.
func (o *Overlay) Close(ctx context.Context) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.mu.Unlock()

	logging.FromContext(ctx).Debug().Msg("headless overlay closed")
	if o.opts.OnClose != nil {
		o.opts.OnClose()
	}
}

// AddControl implements port.OverlayHandle.
func (o *Overlay) AddControl(_ context.Context, control entity.Control) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.controls[control.CSSClass] = control
}

// RemoveControl implements port.OverlayHandle.
func (o *Overlay) RemoveControl(_ context.Context, cssClass string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.controls, cssClass)
}

// AddClass implements port.OverlayHandle.
func (o *Overlay) AddClass(_ context.Context, class string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.classes[class] = true
}

// RemoveClass implements port.OverlayHandle.
func (o *Overlay) RemoveClass(_ context.Context, class string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.classes, class)
}

// SetFeedbackHandler implements port.OverlayHandle.
func (o *Overlay) SetFeedbackHandler(handler port.FeedbackHandler) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.feedback = handler
}

// FrameName implements port.OverlayHandle.
func (o *Overlay) FrameName() string {
	return o.opts.Placement.FrameName
}

// Contains implements port.OverlayHandle. Overlay nodes are addressed as the
// shadow element id or "<shadow element>/<child>".
func (o *Overlay) Contains(nodeID string) bool {
	root := o.opts.Placement.ShadowEl
	if root == "" || nodeID == "" {
		return false
	}
	if nodeID == root || strings.HasPrefix(nodeID, root+"/") {
		return true
	}
	return o.doc != nil && o.doc.Contains(root, nodeID)
}

// ClickControl runs the OnClick of the control with the given class.
func (o *Overlay) ClickControl(cssClass string) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return port.ErrOverlayClosed
	}
	control, ok := o.controls[cssClass]
	o.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownControl, cssClass)
	}
	if control.OnClick != nil {
		control.OnClick()
	}
	return nil
}

// EmitFeedback delivers a feedback form progress signal to the subscriber.
func (o *Overlay) EmitFeedback(ctx context.Context, status entity.FeedbackProgress, data string) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return port.ErrOverlayClosed
	}
	handler := o.feedback
	o.mu.Unlock()

	if handler != nil {
		handler(ctx, status, data)
	}
	return nil
}

// State returns a copy of the overlay's current state.
func (o *Overlay) State() OverlayState {
	o.mu.Lock()
	defer o.mu.Unlock()

	controls := make([]entity.Control, 0, len(o.controls))
	for _, c := range o.controls {
		controls = append(controls, c)
	}
	sort.Slice(controls, func(i, j int) bool { return controls[i].Index < controls[j].Index })
	names := make([]string, len(controls))
	for i, c := range controls {
		names[i] = c.CSSClass
	}

	classes := make([]string, 0, len(o.classes))
	for c := range o.classes {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	return OverlayState{
		Open:      !o.closed,
		FrameName: o.opts.Placement.FrameName,
		TargetURL: o.target,
		HTML:      o.html,
		Title:     o.title,
		IconURL:   o.icon,
		Controls:  names,
		Classes:   classes,
		Restores:  o.restores,
		Placement: o.opts.Placement,
	}
}
