package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/previewr/internal/domain/repository"
	"github.com/bnema/previewr/internal/logging"
)

type preferenceRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewPreferenceRepository creates a new SQLite-backed preference repository.
func NewPreferenceRepository(db *sql.DB) repository.PreferenceRepository {
	return &preferenceRepo{db: db, now: time.Now}
}

func (r *preferenceRepo) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get preference %q: %w", key, err)
	}
	return json.RawMessage(value), true, nil
}

func (r *preferenceRepo) Put(ctx context.Context, key string, value json.RawMessage) error {
	log := logging.FromContext(ctx)

	if key == "" {
		return fmt.Errorf("preference key cannot be empty")
	}
	if !json.Valid(value) {
		return fmt.Errorf("preference %q: value is not valid JSON", key)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), r.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put preference %q: %w", key, err)
	}

	log.Debug().Str("key", key).Int("len", len(value)).Msg("preference stored")
	return nil
}

func (r *preferenceRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete preference %q: %w", key, err)
	}
	return nil
}

func (r *preferenceRepo) All(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		out[key] = json.RawMessage(value)
	}
	return out, rows.Err()
}
