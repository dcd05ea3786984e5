package mainloop

import "sync"

// Coalescer folds bursts of same-key callbacks into one loop task. The task
// runs every callback of the burst in the order they were posted, so no
// event is lost; only the number of loop wakeups shrinks.
type Coalescer struct {
	mu        sync.Mutex
	pending   map[string][]func()
	post      func(func())
	destroyed bool
	merged    uint64
}

// NewCoalescer creates a coalescer scheduling through post.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		pending: make(map[string][]func()),
		post:    post,
	}
}

// Post appends fn to the burst for key, scheduling a task only when none is
// pending for it.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, scheduled := c.pending[key]
	c.pending[key] = append(c.pending[key], fn)
	if scheduled {
		c.merged++
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.post(func() { c.flush(key) })
}

// Merged returns how many posts were folded into an already pending task.
func (c *Coalescer) Merged() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.merged
}

// Destroy drops pending callbacks and ignores later posts.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.pending = map[string][]func(){}
	c.mu.Unlock()
}

func (c *Coalescer) flush(key string) {
	c.mu.Lock()
	burst := c.pending[key]
	delete(c.pending, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if destroyed {
		return
	}
	for _, fn := range burst {
		fn()
	}
}
