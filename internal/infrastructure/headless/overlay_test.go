package headless

import (
	"context"
	"testing"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openOverlay(t *testing.T, s *Surface, onClose func()) *Overlay {
	t.Helper()
	handle, err := s.Open(context.Background(), port.OverlayOpenOptions{
		Title:     "a.test",
		IconURL:   "https://icons.test/?domain=a.test",
		TargetURL: "https://a.test/",
		Placement: entity.PlacementOptions{
			Classes:   []string{"no-max", "no-full"},
			ShadowEl:  "search-preview-window",
			FrameName: "better-previews/mainframe",
		},
		OnClose: onClose,
	})
	require.NoError(t, err)
	return handle.(*Overlay)
}

func TestSurface_OpenRecordsState(t *testing.T) {
	s := NewSurface(nil)
	assert.False(t, s.State().Open)

	o := openOverlay(t, s, nil)
	ctx := context.Background()
	o.AddControl(ctx, entity.Control{Index: 3, CSSClass: entity.ControlSettings})
	o.AddControl(ctx, entity.Control{Index: 0, CSSClass: entity.ControlNavBack})
	o.AddControl(ctx, entity.Control{Index: 2, CSSClass: entity.ControlNavAway})
	o.AddClass(ctx, entity.ShowFooterClass)
	o.Restore(ctx)
	o.SetTitle(ctx, "b.test")

	state := s.State()
	assert.True(t, state.Open)
	assert.Equal(t, "better-previews/mainframe", state.FrameName)
	assert.Equal(t, "https://a.test/", state.TargetURL)
	assert.Equal(t, "b.test", state.Title)
	assert.Equal(t, []string{entity.ControlNavBack, entity.ControlNavAway, entity.ControlSettings}, state.Controls)
	assert.Equal(t, []string{"no-full", "no-max", entity.ShowFooterClass}, state.Classes)
	assert.Equal(t, 1, state.Restores)
	assert.Equal(t, 1, s.Opened())
}

func TestSurface_OpenRequiresContent(t *testing.T) {
	_, err := NewSurface(nil).Open(context.Background(), port.OverlayOpenOptions{Title: "empty"})
	assert.Error(t, err)
}

func TestOverlay_HTMLReplacesTarget(t *testing.T) {
	o := openOverlay(t, NewSurface(nil), nil)
	ctx := context.Background()

	o.SetHTML(ctx, "<h1>Reader</h1>")
	assert.Equal(t, "<h1>Reader</h1>", o.State().HTML)

	o.SetTargetURL(ctx, "https://b.test/")
	assert.Equal(t, "https://b.test/", o.State().TargetURL)
	assert.Empty(t, o.State().HTML)
}

func TestOverlay_CloseEmitsOnce(t *testing.T) {
	closes := 0
	o := openOverlay(t, NewSurface(nil), func() { closes++ })

	o.Close(context.Background())
	o.Close(context.Background())

	assert.Equal(t, 1, closes)
	assert.False(t, o.State().Open)
}

func TestOverlay_ClickControl(t *testing.T) {
	o := openOverlay(t, NewSurface(nil), nil)
	clicked := 0
	o.AddControl(context.Background(), entity.Control{CSSClass: entity.ControlNavAway, OnClick: func() { clicked++ }})

	require.NoError(t, o.ClickControl(entity.ControlNavAway))
	assert.Equal(t, 1, clicked)

	assert.ErrorIs(t, o.ClickControl(entity.ControlNavBack), ErrUnknownControl)

	o.RemoveControl(context.Background(), entity.ControlNavAway)
	assert.ErrorIs(t, o.ClickControl(entity.ControlNavAway), ErrUnknownControl)

	o.Close(context.Background())
	assert.ErrorIs(t, o.ClickControl(entity.ControlNavAway), port.ErrOverlayClosed)
}

func TestOverlay_EmitFeedback(t *testing.T) {
	o := openOverlay(t, NewSurface(nil), nil)
	ctx := context.Background()

	require.NoError(t, o.EmitFeedback(ctx, entity.FeedbackStarted, "4"), "no subscriber is fine")

	var got []string
	o.SetFeedbackHandler(func(_ context.Context, status entity.FeedbackProgress, data string) {
		got = append(got, string(status)+":"+data)
	})
	require.NoError(t, o.EmitFeedback(ctx, entity.FeedbackCompleted, "great"))
	assert.Equal(t, []string{"completed:great"}, got)

	o.Close(ctx)
	assert.ErrorIs(t, o.EmitFeedback(ctx, entity.FeedbackStarted, "1"), port.ErrOverlayClosed)
}

func TestOverlay_Contains(t *testing.T) {
	doc := newHostDocument(t)
	o := openOverlay(t, NewSurface(doc), nil)

	assert.True(t, o.Contains("search-preview-window"))
	assert.True(t, o.Contains("search-preview-window/title"))
	assert.True(t, o.Contains("overlay-close"), "page element under the shadow element")
	assert.False(t, o.Contains("page-link"))
	assert.False(t, o.Contains(""))
}
