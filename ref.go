package syncell

import (
	"sync/atomic"

	"github.com/kvark/syncell/internal/word"
)

// Ref is a shared view of a cell's value, obtained from Borrow. It is a
// proof that read access is currently valid, not an owner of the value.
//
// A Ref belongs to the goroutine that borrowed it and must be released
// exactly once, normally via defer. The caller must not write through
// Ptr: other goroutines may be reading concurrently.
type Ref[T any] struct {
	state    *atomic.Uint64
	value    *T
	released bool
}

// Get returns a copy of the value.
func (r *Ref[T]) Get() T {
	if r.released {
		panic(ErrReleased)
	}
	return *r.value
}

// Ptr returns a pointer to the value, for values too large to copy.
// The pointee must be treated as read-only and must not be retained
// past Release.
func (r *Ref[T]) Ptr() *T {
	if r.released {
		panic(ErrReleased)
	}
	return r.value
}

// Release gives up this view's share of the state word, decrementing
// the reader count. It cannot fail and must be called exactly once; a
// second call panics with ErrReleased.
func (r *Ref[T]) Release() {
	if r.released {
		panic(ErrReleased)
	}
	r.released = true
	r.state.Add(^uint64(0))
}

// RefMut is the exclusive view of a cell's value, obtained from
// BorrowMut. While it is live no other view of any kind exists, so the
// holder may read and write freely.
//
// A RefMut belongs to the goroutine that borrowed it and must be
// released exactly once, normally via defer.
type RefMut[T any] struct {
	state    *atomic.Uint64
	value    *T
	released bool
}

// Get returns a copy of the value.
func (m *RefMut[T]) Get() T {
	if m.released {
		panic(ErrReleased)
	}
	return *m.value
}

// Set replaces the value.
func (m *RefMut[T]) Set(v T) {
	if m.released {
		panic(ErrReleased)
	}
	*m.value = v
}

// Ptr returns a read-write pointer to the value. It must not be
// retained past Release.
func (m *RefMut[T]) Ptr() *T {
	if m.released {
		panic(ErrReleased)
	}
	return m.value
}

// Release clears the write bit, returning the cell to quiescence. It
// cannot fail and must be called exactly once; a second call panics
// with ErrReleased.
//
// The atomic clear is also the release fence that publishes every write
// made under this guard to the next successful borrower on any
// goroutine.
func (m *RefMut[T]) Release() {
	if m.released {
		panic(ErrReleased)
	}
	m.released = true
	m.state.And(^word.WriteBit)
}
