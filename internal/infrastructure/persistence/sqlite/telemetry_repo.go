package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/domain/repository"
)

type telemetryRepo struct {
	db *sql.DB
}

// NewTelemetryRepository creates a new SQLite-backed telemetry repository.
func NewTelemetryRepository(db *sql.DB) repository.TelemetryRepository {
	return &telemetryRepo{db: db}
}

func (r *telemetryRepo) Save(ctx context.Context, event *entity.TelemetryEvent) error {
	if event == nil {
		return fmt.Errorf("telemetry event is nil")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	props := event.Properties
	if props == nil {
		props = map[string]any{}
	}
	encoded, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("encode telemetry properties: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO telemetry_events (session_id, name, properties, created_at) VALUES (?, ?, ?, ?)`,
		event.SessionID, event.Name, string(encoded), event.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save telemetry event %q: %w", event.Name, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		event.ID = id
	}
	return nil
}

func (r *telemetryRepo) GetRecent(ctx context.Context, limit int) ([]*entity.TelemetryEvent, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, name, properties, created_at
		FROM telemetry_events
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list telemetry events: %w", err)
	}
	defer rows.Close()

	var events []*entity.TelemetryEvent
	for rows.Next() {
		var (
			e       entity.TelemetryEvent
			props   string
			created int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Name, &props, &created); err != nil {
			return nil, fmt.Errorf("scan telemetry event: %w", err)
		}
		if err := json.Unmarshal([]byte(props), &e.Properties); err != nil {
			return nil, fmt.Errorf("decode telemetry properties: %w", err)
		}
		e.CreatedAt = time.UnixMilli(created)
		events = append(events, &e)
	}
	return events, rows.Err()
}
