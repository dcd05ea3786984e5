// Package mainloop runs host document work on a single goroutine, in the
// order it was posted.
package mainloop

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/previewr/internal/logging"
)

// ErrClosed is returned when posting to a stopped loop.
var ErrClosed = errors.New("mainloop: closed")

// Loop is an unbounded FIFO task queue drained by one goroutine.
// Post never blocks, so tasks may post follow-up work.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	running bool
}

// New creates a stopped loop; call Run to start it.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post enqueues fn.
func (l *Loop) Post(fn func()) error {
	if fn == nil {
		return nil
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// PostFunc adapts Post to callers that have no use for the error.
func (l *Loop) PostFunc(fn func()) {
	_ = l.Post(fn)
}

// Run drains the queue until ctx is done or Close is called. Tasks queued
// before Close still run. A panicking task is logged and does not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errors.New("mainloop: already running")
	}
	l.running = true
	l.mu.Unlock()
	defer close(l.done)

	for {
		fn, closed := l.next()
		if fn != nil {
			l.exec(ctx, fn)
			continue
		}
		if closed {
			return nil
		}

		select {
		case <-ctx.Done():
			l.Close()
		case <-l.wake:
		}
	}
}

// Close stops accepting tasks.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, l.closed
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, false
}

func (l *Loop) exec(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error().
				Interface("panic", r).
				Str("component", "mainloop").
				Msg("task panicked")
		}
	}()
	fn()
}
