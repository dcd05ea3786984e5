package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/logging"
)

// readBool returns the stored boolean for key, or def when the value is
// absent, unreadable or the store fails. Strings "true"/"false" are accepted.
func readBool(ctx context.Context, prefs port.Preferences, key string, def bool) bool {
	raw, ok := readRaw(ctx, prefs, key)
	if !ok {
		return def
	}

	var v bool
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, perr := strconv.ParseBool(strings.TrimSpace(s)); perr == nil {
			return parsed
		}
	}

	logging.FromContext(ctx).Warn().Str("key", key).RawJSON("value", raw).Msg("preference is not a boolean, using default")
	return def
}

// readString returns the stored string for key. Numbers are returned in
// their literal form, so a width stored as 60 reads as "60".
func readString(ctx context.Context, prefs port.Preferences, key, def string) string {
	raw, ok := readRaw(ctx, prefs, key)
	if !ok {
		return def
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return def
		}
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	logging.FromContext(ctx).Warn().Str("key", key).RawJSON("value", raw).Msg("preference is not a string, using default")
	return def
}

func readRaw(ctx context.Context, prefs port.Preferences, key string) (json.RawMessage, bool) {
	if prefs == nil {
		return nil, false
	}
	raw, ok, err := prefs.Get(ctx, key)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("preference read failed, using default")
		return nil, false
	}
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}
