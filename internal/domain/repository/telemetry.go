package repository

import (
	"context"

	"github.com/bnema/previewr/internal/domain/entity"
)

// TelemetryRepository stores emitted telemetry events.
type TelemetryRepository interface {
	// Save appends an event.
	Save(ctx context.Context, event *entity.TelemetryEvent) error

	// GetRecent returns the most recent events, newest first.
	GetRecent(ctx context.Context, limit int) ([]*entity.TelemetryEvent, error)
}
