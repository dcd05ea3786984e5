package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/previewr/internal/logging"
)

// StartupTimer records how long each startup phase took.
// Safe for use from parallel initialization goroutines.
type StartupTimer struct {
	start  time.Time
	mu     sync.Mutex
	phases map[string]time.Duration
	order  []string
}

// NewStartupTimer creates a timer starting now.
func NewStartupTimer() *StartupTimer {
	return &StartupTimer{
		start:  time.Now(),
		phases: make(map[string]time.Duration),
	}
}

// Track runs fn and records its duration under phase.
func (t *StartupTimer) Track(phase string, fn func() error) error {
	begin := time.Now()
	err := fn()
	t.MarkDuration(phase, time.Since(begin))
	return err
}

// MarkDuration records d for phase. A phase recorded twice keeps its first position.
func (t *StartupTimer) MarkDuration(phase string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, seen := t.phases[phase]; !seen {
		t.order = append(t.order, phase)
	}
	t.phases[phase] = d
}

// Phases returns the recorded phases in the order they were first recorded.
func (t *StartupTimer) Phases() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.order...)
}

// LogDebug writes the phase durations at debug level.
func (t *StartupTimer) LogDebug(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := logging.FromContext(ctx).Debug().Dur("total", time.Since(t.start))
	for _, phase := range t.order {
		event = event.Dur(phase, t.phases[phase])
	}
	event.Msg("startup timing")
}
