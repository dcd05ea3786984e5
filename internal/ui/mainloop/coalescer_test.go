package mainloop

import (
	"slices"
	"testing"
)

func TestCoalescerMergesScrollBurst(t *testing.T) {
	queue := make([]func(), 0, 8)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	var order []int
	for i := 1; i <= 5; i++ {
		v := i
		c.Post("scroll", func() { order = append(order, v) })
	}

	if len(queue) != 1 {
		t.Fatalf("expected 1 scheduled callback, got %d", len(queue))
	}
	queue[0]()

	if want := []int{1, 2, 3, 4, 5}; !slices.Equal(order, want) {
		t.Fatalf("expected every callback in post order, got %v", order)
	}
	if got := c.Merged(); got != 4 {
		t.Fatalf("Merged() = %d, want 4", got)
	}
}

func TestCoalescerKeysAreIndependent(t *testing.T) {
	queue := make([]func(), 0, 4)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	ran := map[string]bool{}
	c.Post("scroll", func() { ran["scroll"] = true })
	c.Post("click", func() { ran["click"] = true })

	if len(queue) != 2 {
		t.Fatalf("expected 2 scheduled callbacks, got %d", len(queue))
	}
	for _, fn := range queue {
		fn()
	}
	if !ran["scroll"] || !ran["click"] {
		t.Fatalf("expected both callbacks to run, got %v", ran)
	}

	c.Post("scroll", func() {})
	if len(queue) != 3 {
		t.Fatalf("expected a new task once the previous one flushed, got %d", len(queue))
	}
}

func TestCoalescerDropsWorkAfterDestroy(t *testing.T) {
	queue := make([]func(), 0, 4)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	ran := false
	c.Post("scroll", func() { ran = true })
	c.Destroy()

	if len(queue) != 1 {
		t.Fatalf("expected one queued callback before destroy, got %d", len(queue))
	}
	queue[0]()

	if ran {
		t.Fatalf("expected queued work to be dropped after destroy")
	}

	c.Post("scroll", func() { ran = true })
	if len(queue) != 1 {
		t.Fatalf("expected no new callback after destroy, got %d", len(queue))
	}
}

func TestNewCoalescerPanicsOnNilPost(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected NewCoalescer to panic when post is nil")
		}
	}()

	_ = NewCoalescer(nil)
}
