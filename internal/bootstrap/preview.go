// Package bootstrap wires one preview session per host document.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/application/usecase"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/infrastructure/clipboard"
	"github.com/bnema/previewr/internal/infrastructure/config"
	"github.com/bnema/previewr/internal/infrastructure/headless"
	"github.com/bnema/previewr/internal/infrastructure/messaging"
	"github.com/bnema/previewr/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/previewr/internal/infrastructure/preferences"
	"github.com/bnema/previewr/internal/infrastructure/readability"
	"github.com/bnema/previewr/internal/infrastructure/telemetry"
	"github.com/bnema/previewr/internal/logging"
	"github.com/bnema/previewr/internal/ui/mainloop"
)

// ErrFramedDocument is returned for a host document that is itself framed.
// Only top-level documents get a preview session.
var ErrFramedDocument = errors.New("host document is framed")

// PreviewInput holds the collaborators of a preview runtime.
type PreviewInput struct {
	Config   *config.Config
	Document *headless.Document
	// Database defaults to a lazily opened sqlite file at Config.Database.Path.
	Database port.DatabaseProvider
	// Clipboard defaults to an in-process clipboard.
	Clipboard port.Clipboard
}

// PreviewReport is the observable state of a preview runtime.
type PreviewReport struct {
	Session        usecase.PreviewState
	Overlay        headless.OverlayState
	OverlaysOpened int
	Tabs           []string
	SettingsOpened int
	Router         messaging.Stats
	Telemetry      telemetry.Stats
	ScrollsMerged  uint64
}

// Preview is a running preview session with its message router, input
// watchers and event loop.
type Preview struct {
	Session     *usecase.PreviewSession
	Router      *messaging.MessageRouter
	Watchers    usecase.Watchers
	Preferences *preferences.Store
	Telemetry   *telemetry.Sink
	Feedback    *usecase.FeedbackBridge
	Surface     *headless.Surface
	Window      *headless.Window
	Document    *headless.Document
	Loop        *mainloop.Loop

	// frameWatcher sees CSP reports raised inside the overlay frame.
	frameWatcher usecase.InputWatcher
	coalescer    *mainloop.Coalescer
	scrollEpoch  uint64
	db           port.DatabaseProvider
	ownsDB       bool
}

// NewPreview wires a preview session for the document.
func NewPreview(ctx context.Context, in PreviewInput) (*Preview, error) {
	if in.Config == nil {
		in.Config = config.DefaultConfig()
	}
	if in.Document == nil {
		return nil, fmt.Errorf("preview needs a host document")
	}
	if !in.Document.IsTopLevel() {
		return nil, ErrFramedDocument
	}
	cfg := in.Config

	p := &Preview{
		Document: in.Document,
		db:       in.Database,
	}
	if p.db == nil {
		p.db = sqlite.NewLazyDB(cfg.Database.Path)
		p.ownsDB = true
	}
	if in.Clipboard == nil {
		in.Clipboard = clipboard.NewMemory()
	}

	appID := cfg.Preview.ApplicationID
	p.Preferences = preferences.NewStore(sqlite.NewLazyPreferenceRepository(p.db), cfg.Preferences.CacheTTL)
	p.Telemetry = telemetry.NewSink(ctx, sqlite.NewLazyTelemetryRepository(p.db), telemetry.Options{
		Enabled:         cfg.Telemetry.Enabled,
		QueueSize:       cfg.Telemetry.QueueSize,
		EventsPerSecond: cfg.Telemetry.EventsPerSecond,
		Burst:           cfg.Telemetry.Burst,
	})
	p.Feedback = usecase.NewFeedbackBridge(p.Preferences, p.Telemetry)
	p.Surface = headless.NewSurface(in.Document)
	p.Window = headless.NewWindow()

	p.Session = usecase.NewPreviewSession(usecase.PreviewConfig{
		ApplicationID:  appID,
		FaviconService: cfg.Preview.FaviconService,
		ReaderMode:     cfg.Preview.ReaderMode,
		Placement: usecase.PlacementConfig{
			TopOffset:  cfg.Preview.TopOffset,
			SideMargin: cfg.Preview.SideMargin,
			DemoWidth:  cfg.Preview.Demo.Width,
			DemoHeight: cfg.Preview.Demo.Height,
			DemoTop:    cfg.Preview.Demo.Top,
		},
	}, usecase.PreviewSessionDeps{
		Overlay:     p.Surface,
		Preferences: p.Preferences,
		Clipboard:   in.Clipboard,
		Extractor:   readability.NewExtractor(),
		Document:    in.Document,
		Window:      p.Window,
		Feedback:    p.Feedback,
	})

	p.Router = messaging.NewMessageRouter(ctx, in.Document.Origin(), appID, p.Session)
	p.Watchers = usecase.Watchers{
		usecase.NewEscapeKeyWatcher(p.Router, in.Document, appID),
		usecase.NewClickOutsideWatcher(p.Session, p.Preferences),
		usecase.NewScrollOutsideWatcher(p.Session, p.Preferences),
		usecase.NewCSPViolationWatcher(in.Document, appID),
	}
	p.frameWatcher = usecase.NewCSPViolationWatcher(in.Document.WithName(p.Session.FrameName()), appID)

	p.Loop = mainloop.New()
	p.coalescer = mainloop.NewCoalescer(p.Loop.PostFunc)

	logging.FromContext(logging.WithComponent(ctx, "bootstrap")).Debug().
		Str("session_id", p.Telemetry.SessionID()).
		Str("origin", in.Document.Origin()).
		Str("frame", p.Session.FrameName()).
		Msg("preview session installed")
	return p, nil
}

// Run drives the event loop until ctx is done or Shutdown is called.
func (p *Preview) Run(ctx context.Context) error {
	return p.Loop.Run(ctx)
}

// Post queues a scripted event on the event loop. Back-to-back scroll events
// share one loop task that still applies each of them in order. Post is meant
// to be called from a single reader goroutine.
func (p *Preview) Post(ctx context.Context, event headless.Event) error {
	if event.Type == headless.EventScroll {
		p.coalescer.Post("scroll-"+strconv.FormatUint(p.scrollEpoch, 10), func() {
			p.apply(ctx, event)
		})
		return nil
	}
	p.scrollEpoch++
	return p.Loop.Post(func() { p.apply(ctx, event) })
}

func (p *Preview) apply(ctx context.Context, event headless.Event) {
	if err := p.Apply(ctx, event); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("event", string(event.Type)).Msg("event not applied")
	}
}

// Apply handles one scripted event immediately, on the caller's goroutine.
func (p *Preview) Apply(ctx context.Context, event headless.Event) error {
	ctx = logging.WithSessionID(ctx, p.Telemetry.SessionID())
	switch event.Type {
	case headless.EventMessage:
		origin := event.Origin
		if origin == "" {
			origin = p.Document.Origin()
		}
		p.Router.Dispatch(ctx, entity.RawMessage{Origin: origin, Data: event.Message})
		return nil

	case headless.EventCSP:
		input, _ := event.Input()
		if event.Frame != "" && event.Frame == p.Session.FrameName() {
			p.frameWatcher.HandleEvent(ctx, input)
			return nil
		}
		p.Watchers.HandleEvent(ctx, input)
		return nil

	case headless.EventKeyDown, headless.EventClick, headless.EventScroll:
		input, _ := event.Input()
		p.Watchers.HandleEvent(ctx, input)
		return nil

	case headless.EventClose:
		if overlay := p.openOverlay(); overlay != nil {
			overlay.Close(ctx)
		}
		return nil

	case headless.EventControl:
		overlay := p.openOverlay()
		if overlay == nil {
			return port.ErrOverlayClosed
		}
		return overlay.ClickControl(event.Control)

	case headless.EventFeedback:
		overlay := p.openOverlay()
		if overlay == nil {
			return port.ErrOverlayClosed
		}
		return overlay.EmitFeedback(ctx, entity.FeedbackProgress(event.Status), event.Data)
	}
	return fmt.Errorf("%w: unknown type %q", headless.ErrInvalidEvent, event.Type)
}

func (p *Preview) openOverlay() *headless.Overlay {
	overlay := p.Surface.Current()
	if overlay == nil || !overlay.State().Open {
		return nil
	}
	return overlay
}

// ApplyConfig applies the settings that may change while running.
func (p *Preview) ApplyConfig(ctx context.Context, cfg *config.Config) {
	if cfg == nil {
		return
	}
	p.Session.SetReaderMode(cfg.Preview.ReaderMode)
	logging.FromContext(ctx).Info().Bool("reader_mode", cfg.Preview.ReaderMode).Msg("configuration applied")
}

// Report returns the current observable state.
func (p *Preview) Report() PreviewReport {
	return PreviewReport{
		Session:        p.Session.State(),
		Overlay:        p.Surface.State(),
		OverlaysOpened: p.Surface.Opened(),
		Tabs:           p.Window.Tabs(),
		SettingsOpened: p.Window.SettingsOpened(),
		Router:         p.Router.Stats(),
		Telemetry:      p.Telemetry.Stats(),
		ScrollsMerged:  p.coalescer.Merged(),
	}
}

// Shutdown stops the loop after queued events ran, then flushes side effects
// and closes the database. Run must have been started, or never be started.
func (p *Preview) Shutdown(ctx context.Context) error {
	p.Loop.Close()
	select {
	case <-p.Loop.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return p.close()
}

// Close releases resources without waiting for the loop.
func (p *Preview) Close() error {
	p.Loop.Close()
	return p.close()
}

func (p *Preview) close() error {
	p.coalescer.Destroy()
	p.Feedback.Wait()
	p.Telemetry.Close()
	if p.ownsDB {
		return p.db.Close()
	}
	return nil
}
