package port

import (
	"context"
	"encoding/json"
)

// Preferences is asynchronous key-value access to user preferences.
type Preferences interface {
	// Get returns the raw JSON value, or false when the key is absent.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	// Put stores value encoded as JSON.
	Put(ctx context.Context, key string, value any) error
}
