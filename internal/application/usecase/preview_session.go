package usecase

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"sync"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
	domainurl "github.com/bnema/previewr/internal/domain/url"
	"github.com/bnema/previewr/internal/logging"
)

// DefaultFaviconService is the favicon lookup prefix; the hostname is appended.
const DefaultFaviconService = "https://www.google.com/s2/favicons?domain="

// ReaderFailureHTML is shown when reader-mode extraction finds no article.
const ReaderFailureHTML = "<h1>Failed to parse article</h1>"

// FrameName returns the name given to the overlay's framed sub-document.
func FrameName(applicationID string) string {
	return applicationID + "/mainframe"
}

// PreviewConfig holds the static settings of a preview session.
type PreviewConfig struct {
	ApplicationID  string
	FaviconService string
	ReaderMode     bool
	Placement      PlacementConfig
}

// PreviewSessionDeps are the collaborators of a preview session.
// Only Overlay is required.
type PreviewSessionDeps struct {
	Overlay     port.OverlaySurface
	Preferences port.Preferences
	Clipboard   port.Clipboard
	Extractor   port.ArticleExtractor
	Document    port.HostDocument
	Window      port.HostWindow
	Feedback    *FeedbackBridge
	// Sanitize canonicalizes candidate URLs, returning domainurl.BlankURL to block.
	Sanitize func(string) string
}

// PreviewState is a point-in-time copy of the session fields.
type PreviewState struct {
	CurrentURL  string
	Stack       []string
	OverlayOpen bool
	ReaderMode  bool
	Demo        bool
}

// PreviewSession owns the preview overlay of one host document: the URL it
// shows, the back-history and the reader/demo flags.
//
// Two locks are used. overlayMu serializes every command sent to the overlay
// surface so only one handle can ever be created. mu guards the fields and is
// never held while calling a collaborator, so a surface that emits OnClose
// synchronously from Close does not deadlock. Lock order is overlayMu, then mu.
type PreviewSession struct {
	cfg       PreviewConfig
	deps      PreviewSessionDeps
	copier    *CopyTextUseCase
	frameName string

	overlayMu sync.Mutex

	mu         sync.Mutex
	handle     port.OverlayHandle
	generation uint64
	current    *url.URL
	stack      entity.NavigationStack
	readerMode bool
	demo       bool
}

// NewPreviewSession creates a closed preview session.
func NewPreviewSession(cfg PreviewConfig, deps PreviewSessionDeps) *PreviewSession {
	if cfg.FaviconService == "" {
		cfg.FaviconService = DefaultFaviconService
	}
	if cfg.Placement == (PlacementConfig{}) {
		cfg.Placement = DefaultPlacementConfig()
	}
	if deps.Sanitize == nil {
		deps.Sanitize = domainurl.Sanitize
	}

	return &PreviewSession{
		cfg:        cfg,
		deps:       deps,
		copier:     NewCopyTextUseCase(deps.Clipboard),
		frameName:  FrameName(cfg.ApplicationID),
		readerMode: cfg.ReaderMode,
	}
}

// FrameName returns the frame identity given to the overlay.
func (s *PreviewSession) FrameName() string {
	return s.frameName
}

// HandleMessage applies one accepted protocol message.
// Rejected messages leave the session unchanged; nothing is returned to the caller.
func (s *PreviewSession) HandleMessage(ctx context.Context, msg entity.ProtocolMessage) {
	log := logging.FromContext(ctx)

	if !msg.Action.Known() {
		log.Warn().Str("action", string(msg.Action)).Msg("unhandled action")
		return
	}

	if msg.IsDemo() {
		s.mu.Lock()
		s.demo = true
		s.mu.Unlock()
	}

	var target string
	switch msg.Action {
	case entity.ActionCopy:
		s.copier.Copy(ctx, msg.Data)
		return
	case entity.ActionPreview:
		target = msg.Data
	case entity.ActionSearch:
		target = s.resolveSearch(ctx, msg.Data)
	case entity.ActionLoad:
		s.applyLoad(ctx, msg)
		return
	case entity.ActionNavigate:
		target = msg.Href
		if target == "" {
			target = msg.Data
		}
	case entity.ActionEscape:
		s.handleEscape(ctx)
		return
	}

	u, ok := s.validate(ctx, target)
	if !ok {
		return
	}

	s.mu.Lock()
	if s.current != nil && s.current.String() != u.String() {
		s.stack.Push(s.current)
	}
	s.current = u
	s.mu.Unlock()

	s.render(ctx)
}

// PreviewURL shows u without touching the back-history.
func (s *PreviewSession) PreviewURL(ctx context.Context, u *url.URL) {
	if u == nil {
		return
	}
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()

	s.render(ctx)
}

// NavBack shows the most recent URL of the back-history.
// The URL being left is not pushed, so back never oscillates.
func (s *PreviewSession) NavBack(ctx context.Context) {
	s.mu.Lock()
	last, ok := s.stack.Pop()
	if ok {
		s.current = last
	}
	s.mu.Unlock()

	if !ok {
		logging.FromContext(ctx).Debug().Msg("go back: history empty")
		return
	}

	logging.FromContext(ctx).Debug().Str("url", last.String()).Msg("go back")
	s.render(ctx)
}

// CloseOverlay closes the overlay if one is open. The session fields are
// reset by the surface's OnClose; reset runs again here in case the surface
// did not emit it.
func (s *PreviewSession) CloseOverlay(ctx context.Context) {
	s.overlayMu.Lock()
	defer s.overlayMu.Unlock()

	s.mu.Lock()
	handle, gen := s.handle, s.generation
	s.mu.Unlock()

	if handle == nil {
		return
	}

	handle.Close(ctx)
	s.reset(ctx, gen)
}

// SetReaderMode toggles reader mode for subsequent previews.
func (s *PreviewSession) SetReaderMode(enabled bool) {
	s.mu.Lock()
	s.readerMode = enabled
	s.mu.Unlock()
}

// IsOpen reports whether an overlay handle exists.
func (s *PreviewSession) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// ContainsTarget reports whether nodeID lies inside the open overlay.
func (s *PreviewSession) ContainsTarget(nodeID string) bool {
	s.mu.Lock()
	handle := s.handle
	s.mu.Unlock()

	return handle != nil && handle.Contains(nodeID)
}

// State returns a copy of the session fields.
func (s *PreviewSession) State() PreviewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := PreviewState{
		Stack:       s.stack.Hrefs(),
		OverlayOpen: s.handle != nil,
		ReaderMode:  s.readerMode,
		Demo:        s.demo,
	}
	if s.current != nil {
		st.CurrentURL = s.current.String()
	}
	return st
}

// reset is the single state-reset routine, shared by every closing path.
// A stale generation means the handle it belonged to is already gone.
func (s *PreviewSession) reset(ctx context.Context, gen uint64) {
	s.mu.Lock()
	if s.handle == nil || s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.handle = nil
	s.current = nil
	s.stack.Clear()
	s.mu.Unlock()

	logging.FromContext(ctx).Info().Msg("preview closed")
}

func (s *PreviewSession) validate(ctx context.Context, candidate string) (*url.URL, bool) {
	log := logging.FromContext(ctx)

	if candidate == "" {
		log.Debug().Msg("message without target URL ignored")
		return nil, false
	}

	sanitized := s.deps.Sanitize(candidate)
	if sanitized == domainurl.BlankURL {
		log.Error().Str("url", candidate).Msg("target URL blocked by sanitizer")
		return nil, false
	}

	u, err := domainurl.ParseAbsolute(sanitized)
	if err != nil {
		log.Error().Err(err).Str("url", candidate).Msg("invalid target URL")
		return nil, false
	}
	return u, true
}

func (s *PreviewSession) resolveSearch(ctx context.Context, query string) string {
	prefs := s.deps.Preferences
	engine := readString(ctx, prefs, entity.PrefSearchEngine, domainurl.DefaultSearchEngine().ID)

	disableIncognito := false
	if engine == domainurl.GoogleEngineID {
		disableIncognito = readBool(ctx, prefs, entity.PrefDisableIncognito, entity.DefaultDisableIncognito)
	}

	resolved, known := domainurl.BuildSearchURL(engine, query, disableIncognito)
	if !known {
		logging.FromContext(ctx).Warn().Str("engine", engine).Msg("unknown search engine, using default")
	}
	return resolved
}

func (s *PreviewSession) applyLoad(ctx context.Context, msg entity.ProtocolMessage) {
	log := logging.FromContext(ctx)

	s.overlayMu.Lock()
	defer s.overlayMu.Unlock()

	s.mu.Lock()
	handle := s.handle
	s.mu.Unlock()

	if handle == nil {
		log.Debug().Msg("load ignored: overlay closed")
		return
	}
	if msg.SourceFrame != handle.FrameName() {
		log.Debug().Str("source_frame", msg.SourceFrame).Msg("load ignored: foreign frame")
		return
	}

	handle.SetTitle(ctx, msg.Data)
	if host := domainurl.Hostname(msg.Href); host != "" {
		handle.SetIcon(ctx, domainurl.FaviconURL(s.cfg.FaviconService, host))
	}
}

func (s *PreviewSession) handleEscape(ctx context.Context) {
	if !s.IsOpen() {
		return
	}
	if !readBool(ctx, s.deps.Preferences, entity.PrefCloseOnEsc, entity.DefaultCloseOnEsc) {
		logging.FromContext(ctx).Debug().Msg("escape ignored: close-on-esc disabled")
		return
	}
	s.CloseOverlay(ctx)
}

// render opens or updates the overlay for the current URL. A call whose URL
// was replaced or reset while it built the content leaves the overlay alone.
func (s *PreviewSession) render(ctx context.Context) {
	s.mu.Lock()
	demo := s.demo
	s.mu.Unlock()

	zIndex := 0
	if s.deps.Document != nil {
		zIndex = s.deps.Document.MaxZIndex()
	}
	placement := ComputePlacement(ctx, s.deps.Preferences, s.cfg.Placement, demo, zIndex, s.frameName)

	s.mu.Lock()
	current, reader := s.current, s.readerMode
	s.mu.Unlock()
	if current == nil {
		return
	}
	log := logging.FromContext(logging.WithURL(ctx, current.String()))

	host := current.Hostname()
	icon := domainurl.FaviconURL(s.cfg.FaviconService, host)
	var content string
	if reader {
		content = s.readerHTML(ctx)
	}

	s.overlayMu.Lock()
	s.mu.Lock()
	handle, latest := s.handle, s.current
	s.mu.Unlock()

	// A close or a newer preview may have run while the content was built.
	// A newer preview has its own render queued behind overlayMu.
	if latest != current {
		s.overlayMu.Unlock()
		log.Debug().Msg("preview superseded before it was shown")
		return
	}

	if handle == nil {
		var ok bool
		if handle, ok = s.open(ctx, host, icon, current, content, placement); !ok {
			s.overlayMu.Unlock()
			return
		}
	} else {
		log.Debug().Msg("restoring overlay")
		handle.Restore(ctx)
		if reader {
			handle.SetHTML(ctx, content)
		} else {
			handle.SetTargetURL(ctx, current.String())
		}
		handle.SetTitle(ctx, host)
		handle.SetIcon(ctx, icon)
	}

	handle.RemoveControl(ctx, entity.ControlNavBack)
	s.mu.Lock()
	depth := s.stack.Len()
	s.mu.Unlock()
	if depth > 0 {
		handle.AddControl(ctx, entity.Control{
			Index:    0,
			CSSClass: entity.ControlNavBack,
			Title:    "Go Back",
			OnClick:  func() { s.NavBack(ctx) },
		})
	}
	s.overlayMu.Unlock()

	log.Info().Int("history", depth).Bool("reader", reader).Msg("preview shown")

	if s.deps.Feedback != nil {
		s.deps.Feedback.Refresh(ctx, handle)
	}
}

// open creates the overlay surface. Must be called with overlayMu held.
func (s *PreviewSession) open(
	ctx context.Context,
	host, icon string,
	current *url.URL,
	content string,
	placement entity.PlacementOptions,
) (port.OverlayHandle, bool) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	opts := port.OverlayOpenOptions{
		Title:     host,
		IconURL:   icon,
		Placement: placement,
		OnClose:   func() { s.reset(ctx, gen) },
	}
	if content != "" {
		opts.HTML = content
	} else {
		opts.TargetURL = current.String()
	}

	log.Debug().Str("url", current.String()).Str("width", placement.Width).Str("height", placement.Height).Msg("creating overlay")
	handle, err := s.deps.Overlay.Open(ctx, opts)
	if err == nil && handle == nil {
		err = fmt.Errorf("overlay surface returned no handle")
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to open overlay")
		s.mu.Lock()
		s.current = nil
		s.stack.Clear()
		s.mu.Unlock()
		return nil, false
	}

	s.mu.Lock()
	s.handle = handle
	s.mu.Unlock()

	handle.AddControl(ctx, entity.Control{
		Index:    2,
		CSSClass: entity.ControlNavAway,
		Title:    "Open in New Tab",
		OnClick:  func() { s.openInNewTab(ctx) },
	})
	handle.AddControl(ctx, entity.Control{
		Index:    3,
		CSSClass: entity.ControlSettings,
		Title:    "Extension Settings",
		OnClick:  func() { s.openSettings(ctx) },
	})
	return handle, true
}

func (s *PreviewSession) readerHTML(ctx context.Context) string {
	log := logging.FromContext(ctx)

	if s.deps.Extractor == nil || s.deps.Document == nil {
		log.Error().Msg("reader mode unavailable: no extractor or document")
		return ReaderFailureHTML
	}

	article := s.deps.Extractor.Extract(ctx, s.deps.Document.Snapshot(), s.deps.Document.Location())
	if article == nil {
		log.Error().Msg("article extraction failed")
		return ReaderFailureHTML
	}

	return fmt.Sprintf("<h1>%s</h1> <p>%s</p> %s",
		html.EscapeString(article.Title),
		html.EscapeString(article.Byline),
		article.Content,
	)
}

func (s *PreviewSession) openInNewTab(ctx context.Context) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil || s.deps.Window == nil {
		return
	}
	log.Info().Str("url", current.String()).Msg("open in new tab")
	if err := s.deps.Window.OpenInNewTab(ctx, current.String()); err != nil {
		log.Warn().Err(err).Msg("open in new tab failed")
	}
}

func (s *PreviewSession) openSettings(ctx context.Context) {
	if s.deps.Window == nil {
		return
	}
	if err := s.deps.Window.OpenSettings(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("open settings failed")
	}
}
