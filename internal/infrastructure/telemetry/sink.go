// Package telemetry implements the fire-and-forget event sink.
package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/domain/repository"
	"github.com/bnema/previewr/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// DefaultQueueSize bounds events waiting for the worker.
	// When the queue is full, new events are dropped.
	DefaultQueueSize = 100

	saveTimeout = 5 * time.Second
)

// Options configure a Sink.
type Options struct {
	Enabled         bool
	QueueSize       int
	EventsPerSecond float64
	Burst           int
}

// Stats counts sink outcomes.
type Stats struct {
	Accepted    uint64
	RateLimited uint64
	QueueFull   uint64
	Stored      uint64
	Failed      uint64
}

// Sink queues telemetry events and persists them from one background worker.
// FireEvent never blocks.
type Sink struct {
	repo      repository.TelemetryRepository
	sessionID string
	enabled   bool
	limiter   *rate.Limiter
	now       func() time.Time

	queue     chan *entity.TelemetryEvent
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closed    atomic.Bool
	ctx       context.Context // Base context for the worker

	accepted    atomic.Uint64
	rateLimited atomic.Uint64
	queueFull   atomic.Uint64
	stored      atomic.Uint64
	failed      atomic.Uint64
}

var _ port.Telemetry = (*Sink)(nil)

// NewSink starts a sink. repo may be nil, in which case events are only logged.
func NewSink(ctx context.Context, repo repository.TelemetryRepository, opts Options) *Sink {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	limit := rate.Inf
	if opts.EventsPerSecond > 0 {
		limit = rate.Limit(opts.EventsPerSecond)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	s := &Sink{
		repo:      repo,
		sessionID: uuid.NewString(),
		enabled:   opts.Enabled,
		limiter:   rate.NewLimiter(limit, opts.Burst),
		now:       time.Now,
		queue:     make(chan *entity.TelemetryEvent, opts.QueueSize),
		done:      make(chan struct{}),
		ctx:       context.WithoutCancel(ctx),
	}

	s.wg.Add(1)
	go s.worker()
	return s
}

// SessionID identifies this process's events.
func (s *Sink) SessionID() string {
	return s.sessionID
}

// FireEvent implements port.Telemetry.
func (s *Sink) FireEvent(ctx context.Context, name string, properties map[string]any) {
	if !s.enabled || s.closed.Load() || name == "" {
		return
	}
	log := logging.FromContext(ctx)

	if !s.limiter.Allow() {
		s.rateLimited.Add(1)
		log.Debug().Str("event", name).Msg("telemetry rate limited, dropping event")
		return
	}

	props := make(map[string]any, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	event := &entity.TelemetryEvent{
		SessionID:  s.sessionID,
		Name:       name,
		Properties: props,
		CreatedAt:  s.now(),
	}

	// Non-blocking send to async queue
	select {
	case s.queue <- event:
		s.accepted.Add(1)
	default:
		s.queueFull.Add(1)
		log.Warn().Str("event", name).Msg("telemetry queue full, dropping event")
	}
}

// Close stops the worker after it has stored every queued event.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)
	})
	s.wg.Wait()
}

// Stats returns a snapshot of the sink counters.
func (s *Sink) Stats() Stats {
	return Stats{
		Accepted:    s.accepted.Load(),
		RateLimited: s.rateLimited.Load(),
		QueueFull:   s.queueFull.Load(),
		Stored:      s.stored.Load(),
		Failed:      s.failed.Load(),
	}
}

func (s *Sink) worker() {
	defer s.wg.Done()

	log := logging.FromContext(s.ctx).With().
		Str("component", "telemetry-worker").
		Str("session_id", s.sessionID).
		Logger()

	for {
		select {
		case event := <-s.queue:
			s.store(event)
		case <-s.done:
			log.Debug().Int("remaining", len(s.queue)).Msg("draining telemetry queue")
			for {
				select {
				case event := <-s.queue:
					s.store(event)
				default:
					log.Debug().Msg("telemetry worker shutdown complete")
					return
				}
			}
		}
	}
}

func (s *Sink) store(event *entity.TelemetryEvent) {
	log := logging.FromContext(s.ctx)
	log.Info().
		Str("event", event.Name).
		Interface("properties", event.Properties).
		Msg("telemetry")

	if s.repo == nil {
		s.stored.Add(1)
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, saveTimeout)
	defer cancel()

	if err := s.repo.Save(ctx, event); err != nil {
		s.failed.Add(1)
		log.Warn().Err(err).Str("event", event.Name).Msg("failed to store telemetry event")
		return
	}
	s.stored.Add(1)
}
