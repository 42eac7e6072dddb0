// Package live provides observable values and combinators that derive new
// observables from existing ones.
package live

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Observable is a read-only view of a value that changes over time.
type Observable[T any] interface {
	// Value returns the current value and whether one was ever set.
	Value() (T, bool)
	// Subscribe registers fn and delivers the current value to it, if any,
	// ahead of every later value.
	Subscribe(fn func(T)) Subscription
	// OnChange registers fn for values set after the call returns.
	OnChange(fn func(T)) Subscription
}

type Subscription interface {
	Unsubscribe()
}

type CellOption[T any] func(*Cell[T])

// WithEqual makes Set a no-op when the new value equals the current one.
func WithEqual[T any](equal func(a, b T) bool) CellOption[T] {
	return func(c *Cell[T]) {
		c.equal = equal
	}
}

// Cell holds a value and notifies subscribers whenever it is set.
//
// Deliveries are queued. The goroutine that finds the queue idle drains it,
// so a Set issued from inside a callback is delivered once the current
// delivery finishes, and each subscriber sees values in the order they were
// set.
type Cell[T any] struct {
	mu          sync.Mutex
	value       T
	hasValue    bool
	equal       func(a, b T) bool
	seq         uint64
	subscribers []*subscriber[T]
	queue       []delivery[T]
	dispatching bool

	// lifecycle serializes subscriber-count transitions and their hooks.
	lifecycle  sync.Mutex
	onActive   func()
	onInactive func()
}

type subscriber[T any] struct {
	cell   *Cell[T]
	fn     func(T)
	since  uint64
	active atomic.Bool
}

type delivery[T any] struct {
	seq    uint64
	value  T
	target *subscriber[T]
}

var _ Observable[int] = (*Cell[int])(nil)

func NewCell[T any](opts ...CellOption[T]) *Cell[T] {
	c := &Cell[T]{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCellOf returns a cell that already holds initial.
func NewCellOf[T any](initial T, opts ...CellOption[T]) *Cell[T] {
	c := NewCell(opts...)
	c.value = initial
	c.hasValue = true
	return c
}

func (c *Cell[T]) Value() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.hasValue
}

func (c *Cell[T]) Set(value T) {
	if c.enqueue(value) {
		c.drain()
	}
}

// enqueue stores value and queues its delivery without delivering it. It
// reports false when value was dropped as equal to the current one.
func (c *Cell[T]) enqueue(value T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasValue && c.equal != nil && c.equal(c.value, value) {
		return false
	}
	c.value = value
	c.hasValue = true
	c.seq++
	c.queue = append(c.queue, delivery[T]{seq: c.seq, value: value})
	return true
}

func (c *Cell[T]) Subscribe(fn func(T)) Subscription {
	return c.observe(fn, true)
}

func (c *Cell[T]) OnChange(fn func(T)) Subscription {
	return c.observe(fn, false)
}

func (c *Cell[T]) observe(fn func(T), replay bool) Subscription {
	c.lifecycle.Lock()
	c.mu.Lock()
	s := &subscriber[T]{cell: c, fn: fn, since: c.seq}
	s.active.Store(true)
	c.subscribers = append(c.subscribers, s)
	first := len(c.subscribers) == 1
	replayed := replay && c.hasValue
	if replayed {
		c.queue = append(c.queue, delivery[T]{value: c.value, target: s})
	}
	c.mu.Unlock()

	if first && c.onActive != nil {
		c.onActive()
	}
	c.lifecycle.Unlock()

	if replayed {
		c.drain()
	}
	return s
}

func (s *subscriber[T]) Unsubscribe() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}

	c := s.cell
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	c.subscribers = slices.DeleteFunc(c.subscribers, func(other *subscriber[T]) bool {
		return other == s
	})
	last := len(c.subscribers) == 0
	c.mu.Unlock()

	if last && c.onInactive != nil {
		c.onInactive()
	}
}

func (c *Cell[T]) subscriberCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subscribers)
}

func (c *Cell[T]) drain() {
	c.mu.Lock()
	if c.dispatching {
		c.mu.Unlock()
		return
	}
	c.dispatching = true
	c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			c.mu.Lock()
			c.dispatching = false
			c.mu.Unlock()
			panic(r)
		}
	}()

	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.dispatching = false
			c.mu.Unlock()
			return
		}

		next := c.queue[0]
		c.queue[0] = delivery[T]{}
		c.queue = c.queue[1:]

		var targets []*subscriber[T]
		if next.target != nil {
			targets = []*subscriber[T]{next.target}
		} else {
			targets = make([]*subscriber[T], 0, len(c.subscribers))
			for _, s := range c.subscribers {
				// Subscribers registered after this value was set already
				// got it (or a newer one) through replay.
				if s.since < next.seq {
					targets = append(targets, s)
				}
			}
		}
		c.mu.Unlock()

		for _, s := range targets {
			if s.active.Load() {
				s.fn(next.value)
			}
		}
	}
}
