// Package ring provides a fixed-capacity circular buffer with
// non-blocking try-semantics, safe for concurrent use from multiple
// goroutines. It is the storage layer under pkg/channel: the buffer
// never suspends a caller, it only reports full or empty.
package ring

import (
	"sync"
	"sync/atomic"

	"github.com/LVC1D/ring-buffer/pkg/common/validation"
)

// Buffer is a bounded FIFO ring over a power-of-two slot array. One
// slot is reserved to distinguish full from empty, so a Buffer of
// declared capacity c holds at most c-1 values.
//
// All slot and cursor mutation is serialized by a single mutex scoped
// to one push or pop. The cursors themselves are atomics so that
// IsEmpty, IsFull and Len stay lock-free; those reads are advisory
// under concurrent mutation and callers must re-validate with TryPush
// or TryPop before acting on them.
type Buffer[T any] struct {
	slots    []T
	capacity uint64
	mask     uint64
	head     atomic.Uint64 // next write position
	tail     atomic.Uint64 // next read position
	mu       sync.Mutex
}

// New creates a Buffer with the given declared capacity. The capacity
// must be a power of two; anything else is a programming error in the
// caller's setup and New panics.
func New[T any](capacity uint64) *Buffer[T] {
	if err := validation.ValidatePowerOfTwo("ring", "capacity", capacity); err != nil {
		panic(err)
	}
	return &Buffer[T]{
		slots:    make([]T, capacity),
		capacity: capacity,
		mask:     capacity - 1,
	}
}

// TryPush stores v at the head cursor and advances it. It returns
// false, leaving the buffer untouched, when the buffer is full.
func (b *Buffer[T]) TryPush(v T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	head := b.head.Load()
	next := (head + 1) & b.mask
	if next == b.tail.Load() {
		return false
	}

	b.slots[head] = v
	b.head.Store(next)
	return true
}

// TryPop removes and returns the value at the tail cursor. It returns
// ok=false when the buffer is empty. The vacated slot is zeroed so the
// buffer never retains a value it no longer owns.
func (b *Buffer[T]) TryPop() (T, bool) {
	var zero T

	b.mu.Lock()
	defer b.mu.Unlock()

	tail := b.tail.Load()
	if tail == b.head.Load() {
		return zero, false
	}

	v := b.slots[tail]
	b.slots[tail] = zero
	b.tail.Store((tail + 1) & b.mask)
	return v, true
}

// IsEmpty reports whether the buffer currently holds no values.
// Advisory only under concurrent mutation.
func (b *Buffer[T]) IsEmpty() bool {
	return b.head.Load() == b.tail.Load()
}

// IsFull reports whether the buffer is currently at capacity.
// Advisory only under concurrent mutation.
func (b *Buffer[T]) IsFull() bool {
	return (b.head.Load()+1)&b.mask == b.tail.Load()
}

// Len returns the number of values currently resident.
func (b *Buffer[T]) Len() uint64 {
	head := b.head.Load()
	tail := b.tail.Load()
	return (head - tail + b.capacity) & b.mask
}

// Cap returns the usable capacity (declared capacity minus the
// reserved slot).
func (b *Buffer[T]) Cap() uint64 {
	return b.capacity - 1
}

// Capacity returns the declared capacity.
func (b *Buffer[T]) Capacity() uint64 {
	return b.capacity
}

// Reset releases every resident value and empties the buffer. Only the
// live range between tail and head is touched; slots outside it hold
// no value. The channel layer calls this when the last handle is gone.
func (b *Buffer[T]) Reset() {
	var zero T

	b.mu.Lock()
	defer b.mu.Unlock()

	head := b.head.Load()
	for cur := b.tail.Load(); cur != head; cur = (cur + 1) & b.mask {
		b.slots[cur] = zero
	}
	b.head.Store(0)
	b.tail.Store(0)
}
