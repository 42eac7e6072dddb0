package live

import (
	"reflect"
	"sync"
)

type MergeOption[T any] func(*mergeConfig[T])

type mergeConfig[T any] struct {
	distinct bool
	equal    func(a, b T) bool
}

// WithoutDistinct republishes every merged value, equal or not.
func WithoutDistinct[T any]() MergeOption[T] {
	return func(cfg *mergeConfig[T]) {
		cfg.distinct = false
	}
}

// WithMergeEqual replaces reflect.DeepEqual as the comparison used to drop
// unchanged merged values.
func WithMergeEqual[T any](equal func(a, b T) bool) MergeOption[T] {
	return func(cfg *mergeConfig[T]) {
		cfg.equal = equal
	}
}

// Merger2 publishes merge(a, b) whenever either source changes.
//
// It only watches its sources while it has subscribers of its own. Values
// the sources held before activation are never merged on their own: a merge
// happens in response to a change notification, and only once the other
// source has a value.
type Merger2[A, B, T any] struct {
	first  Observable[A]
	second Observable[B]
	merge  func(A, B) T
	out    *Cell[T]

	mu       sync.Mutex
	upstream []Subscription

	// computing serializes reading the sources with queueing the result.
	computing sync.Mutex
}

var _ Observable[int] = (*Merger2[int, int, int])(nil)

func Merge2[A, B, T any](first Observable[A], second Observable[B], merge func(A, B) T, opts ...MergeOption[T]) *Merger2[A, B, T] {
	cfg := mergeConfig[T]{distinct: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var cellOpts []CellOption[T]
	if cfg.distinct {
		equal := cfg.equal
		if equal == nil {
			equal = deepEqual[T]
		}
		// The cell compares against its current value, which is the last
		// value this merger emitted.
		cellOpts = append(cellOpts, WithEqual(equal))
	}

	m := &Merger2[A, B, T]{
		first:  first,
		second: second,
		merge:  merge,
		out:    NewCell(cellOpts...),
	}
	m.out.onActive = m.activate
	m.out.onInactive = m.deactivate

	return m
}

func (m *Merger2[A, B, T]) Value() (T, bool) {
	return m.out.Value()
}

func (m *Merger2[A, B, T]) Subscribe(fn func(T)) Subscription {
	return m.out.Subscribe(fn)
}

func (m *Merger2[A, B, T]) OnChange(fn func(T)) Subscription {
	return m.out.OnChange(fn)
}

// Active reports whether the merger is currently attached to its sources.
func (m *Merger2[A, B, T]) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.upstream) > 0
}

func (m *Merger2[A, B, T]) activate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.upstream = append(m.upstream,
		m.first.OnChange(func(a A) {
			m.recompute(func() (T, bool) {
				b, ok := m.second.Value()
				if !ok {
					var zero T
					return zero, false
				}
				return m.merge(a, b), true
			})
		}),
		m.second.OnChange(func(b B) {
			m.recompute(func() (T, bool) {
				a, ok := m.first.Value()
				if !ok {
					var zero T
					return zero, false
				}
				return m.merge(a, b), true
			})
		}),
	)
}

// recompute reads the other source, merges and queues the result as one
// step, so merged values reach the output in the order they were computed
// and the last one always reflects the latest value of both sources.
// Delivery happens after the step, outside the lock.
func (m *Merger2[A, B, T]) recompute(compute func() (T, bool)) {
	if m.queueMerged(compute) {
		m.out.drain()
	}
}

func (m *Merger2[A, B, T]) queueMerged(compute func() (T, bool)) bool {
	m.computing.Lock()
	defer m.computing.Unlock()

	merged, ok := compute()
	return ok && m.out.enqueue(merged)
}

func (m *Merger2[A, B, T]) deactivate() {
	m.mu.Lock()
	upstream := m.upstream
	m.upstream = nil
	m.mu.Unlock()

	for _, sub := range upstream {
		sub.Unsubscribe()
	}
}

func deepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}
