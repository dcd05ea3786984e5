package port

import "context"

// Telemetry emits fire-and-forget analytics events.
// Implementations must not block the caller and swallow their own failures.
type Telemetry interface {
	FireEvent(ctx context.Context, name string, properties map[string]any)
}
