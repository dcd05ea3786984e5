package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/logging"
)

// FeedbackBridge connects the overlay's embedded feedback form to
// persistence and telemetry. Its side effects are best-effort: failures
// are logged and never reach the preview session.
type FeedbackBridge struct {
	prefs     port.Preferences
	telemetry port.Telemetry
	now       func() time.Time

	wg sync.WaitGroup
}

// NewFeedbackBridge creates a feedback bridge. Either collaborator may be nil.
func NewFeedbackBridge(prefs port.Preferences, telemetry port.Telemetry) *FeedbackBridge {
	return &FeedbackBridge{
		prefs:     prefs,
		telemetry: telemetry,
		now:       time.Now,
	}
}

// Refresh shows the feedback footer when the user is eligible and
// (re)subscribes to the form's progress signals on handle.
func (b *FeedbackBridge) Refresh(ctx context.Context, handle port.OverlayHandle) {
	if handle == nil {
		return
	}

	if b.eligible(ctx) {
		handle.AddClass(ctx, entity.ShowFooterClass)
	}

	handle.SetFeedbackHandler(func(ctx context.Context, status entity.FeedbackProgress, data string) {
		b.onProgress(ctx, handle, status, data)
	})
}

// Wait blocks until pending persistence writes have finished.
func (b *FeedbackBridge) Wait() {
	b.wg.Wait()
}

func (b *FeedbackBridge) eligible(ctx context.Context) bool {
	raw, ok := readRaw(ctx, b.prefs, entity.PrefFeedbackData)
	if !ok {
		return false
	}

	var data entity.FeedbackData
	if err := json.Unmarshal(raw, &data); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("feedback data unreadable")
		return false
	}
	return data.Status == entity.FeedbackEligible
}

func (b *FeedbackBridge) onProgress(ctx context.Context, handle port.OverlayHandle, status entity.FeedbackProgress, data string) {
	log := logging.FromContext(ctx)

	switch status {
	case entity.FeedbackStarted:
		rating, err := strconv.Atoi(strings.TrimSpace(data))
		if err != nil {
			log.Warn().Str("rating", data).Msg("feedback rating is not a number")
		}

		update := entity.FeedbackData{
			Status:    entity.FeedbackHonored,
			Timestamp: b.now().UnixMilli(),
			Rating:    rating,
		}
		b.persist(ctx, update)
		b.fire(ctx, map[string]any{
			"action":      "rate_experience",
			"star_rating": rating,
		})

	case entity.FeedbackCompleted:
		handle.RemoveClass(ctx, entity.ShowFooterClass)
		b.fire(ctx, map[string]any{
			"action":        "submit_feedback",
			"feedback_text": data,
		})

	default:
		log.Debug().Str("status", string(status)).Msg("ignoring feedback progress")
	}
}

func (b *FeedbackBridge) persist(ctx context.Context, update entity.FeedbackData) {
	if b.prefs == nil {
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer recoverSideEffect(ctx, "feedback persist")

		if err := b.prefs.Put(ctx, entity.PrefFeedbackData, update); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("failed to persist feedback state")
		}
	}()
}

func (b *FeedbackBridge) fire(ctx context.Context, props map[string]any) {
	if b.telemetry == nil {
		return
	}
	defer recoverSideEffect(ctx, "feedback telemetry")
	b.telemetry.FireEvent(ctx, entity.FeedbackEventName, props)
}

func recoverSideEffect(ctx context.Context, what string) {
	if r := recover(); r != nil {
		logging.FromContext(ctx).Error().Interface("panic", r).Str("side_effect", what).Msg("side effect panicked")
	}
}
