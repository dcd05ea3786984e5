package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/application/port/mocks"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// prefStore is the in-memory state behind storedPrefs.
type prefStore struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
}

func (p *prefStore) get(_ context.Context, key string) (json.RawMessage, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.values[key]
	return v, ok, nil
}

func (p *prefStore) put(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.values[key] = raw
	p.mu.Unlock()
	return nil
}

// storedPrefs returns a preferences mock that answers from kv and keeps
// what is put into it.
func storedPrefs(t *testing.T, kv map[string]any) *mocks.MockPreferences {
	t.Helper()

	store := &prefStore{values: make(map[string]json.RawMessage)}
	for k, v := range kv {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		store.values[k] = raw
	}

	prefs := mocks.NewMockPreferences(t)
	prefs.EXPECT().Get(mock.Anything, mock.Anything).RunAndReturn(store.get).Maybe()
	prefs.EXPECT().Put(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(store.put).Maybe()
	return prefs
}

// failingPrefs returns a preferences mock whose every read fails.
func failingPrefs(t *testing.T) *mocks.MockPreferences {
	t.Helper()

	prefs := mocks.NewMockPreferences(t)
	prefs.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, false, errStore).Maybe()
	return prefs
}

// rawPref encodes v the way the preference store keeps it.
func rawPref(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

// overlayRecorder hands out fakeHandles from a MockOverlaySurface and
// remembers every open.
type overlayRecorder struct {
	mu      sync.Mutex
	opened  []port.OverlayOpenOptions
	handles []*fakeHandle
}

func (r *overlayRecorder) open(_ context.Context, opts port.OverlayOpenOptions) (port.OverlayHandle, error) {
	h := &fakeHandle{
		opts:      opts,
		frameName: opts.Placement.FrameName,
		targetURL: opts.TargetURL,
		html:      opts.HTML,
		title:     opts.Title,
		icon:      opts.IconURL,
		classes:   map[string]bool{},
		nodes:     map[string]bool{"overlay-root": true},
	}
	r.mu.Lock()
	r.opened = append(r.opened, opts)
	r.handles = append(r.handles, h)
	r.mu.Unlock()
	return h, nil
}

func (r *overlayRecorder) last() *fakeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.handles) == 0 {
		return nil
	}
	return r.handles[len(r.handles)-1]
}

type fakeHandle struct {
	mu        sync.Mutex
	opts      port.OverlayOpenOptions
	frameName string
	targetURL string
	html      string
	title     string
	icon      string
	restores  int
	closed    bool
	controls  []entity.Control
	classes   map[string]bool
	nodes     map[string]bool
	feedback  port.FeedbackHandler
}

func (h *fakeHandle) SetTargetURL(_ context.Context, u string) {
	h.mu.Lock()
	h.targetURL = u
	h.mu.Unlock()
}

func (h *fakeHandle) SetHTML(_ context.Context, s string) {
	h.mu.Lock()
	h.html = s
	h.mu.Unlock()
}

func (h *fakeHandle) SetTitle(_ context.Context, t string) {
	h.mu.Lock()
	h.title = t
	h.mu.Unlock()
}

func (h *fakeHandle) SetIcon(_ context.Context, u string) {
	h.mu.Lock()
	h.icon = u
	h.mu.Unlock()
}

func (h *fakeHandle) Restore(context.Context) {
	h.mu.Lock()
	h.restores++
	h.mu.Unlock()
}

// Close emits OnClose synchronously, like the real surface does.
func (h *fakeHandle) Close(context.Context) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	onClose := h.opts.OnClose
	h.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

func (h *fakeHandle) AddControl(_ context.Context, c entity.Control) {
	h.mu.Lock()
	h.controls = append(h.controls, c)
	h.mu.Unlock()
}

func (h *fakeHandle) RemoveControl(_ context.Context, cssClass string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.controls[:0]
	for _, c := range h.controls {
		if c.CSSClass != cssClass {
			kept = append(kept, c)
		}
	}
	h.controls = kept
}

func (h *fakeHandle) AddClass(_ context.Context, class string) {
	h.mu.Lock()
	h.classes[class] = true
	h.mu.Unlock()
}

func (h *fakeHandle) RemoveClass(_ context.Context, class string) {
	h.mu.Lock()
	delete(h.classes, class)
	h.mu.Unlock()
}

func (h *fakeHandle) SetFeedbackHandler(handler port.FeedbackHandler) {
	h.mu.Lock()
	h.feedback = handler
	h.mu.Unlock()
}

func (h *fakeHandle) FrameName() string { return h.frameName }

func (h *fakeHandle) Contains(nodeID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.nodes[nodeID]
}

func (h *fakeHandle) control(cssClass string) (entity.Control, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.controls {
		if c.CSSClass == cssClass {
			return c, true
		}
	}
	return entity.Control{}, false
}

func (h *fakeHandle) hasClass(class string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.classes[class]
}

type fakeClipboard struct {
	written []string
	err     error
}

func (c *fakeClipboard) WriteText(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.written = append(c.written, text)
	return nil
}

func (c *fakeClipboard) ReadText(context.Context) (string, error) {
	if len(c.written) == 0 {
		return "", nil
	}
	return c.written[len(c.written)-1], nil
}

type fakeDocument struct {
	origin   string
	location string
	topLevel bool
	name     string
	markup   string
	zIndex   int
}

func (d fakeDocument) Origin() string      { return d.origin }
func (d fakeDocument) Location() string    { return d.location }
func (d fakeDocument) IsTopLevel() bool    { return d.topLevel }
func (d fakeDocument) Name() string        { return d.name }
func (d fakeDocument) Snapshot() io.Reader { return bytes.NewBufferString(d.markup) }
func (d fakeDocument) MaxZIndex() int      { return d.zIndex }

type fakeWindow struct {
	tabs     []string
	settings int
}

func (w *fakeWindow) OpenInNewTab(_ context.Context, u string) error {
	w.tabs = append(w.tabs, u)
	return nil
}

func (w *fakeWindow) OpenSettings(context.Context) error {
	w.settings++
	return nil
}

type fakeDispatcher struct {
	raws []entity.RawMessage
}

func (d *fakeDispatcher) Dispatch(_ context.Context, raw entity.RawMessage) {
	d.raws = append(d.raws, raw)
}

var errStore = errors.New("store unavailable")
