package repository

import (
	"context"
	"encoding/json"
)

// PreferenceRepository defines key-value persistence for user preferences.
// Values are stored as raw JSON.
type PreferenceRepository interface {
	// Get returns the stored value for key.
	// Returns (nil, false, nil) if the key was never set.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Put saves or replaces the value for key.
	Put(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// All returns every stored preference.
	All(ctx context.Context) (map[string]json.RawMessage, error)
}
