package entity

import "time"

// TelemetryEvent is one fire-and-forget analytics event.
type TelemetryEvent struct {
	ID         int64
	SessionID  string
	Name       string
	Properties map[string]any
	CreatedAt  time.Time
}
