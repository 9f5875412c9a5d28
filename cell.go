package syncell

import (
	"sync/atomic"

	"github.com/kvark/syncell/internal/word"
)

// Cell holds a value of type T and arbitrates access to it through a
// single atomic state word. Any number of goroutines may call Borrow
// and BorrowMut concurrently; the word guarantees that an exclusive
// view never coexists with any other view.
//
// A Cell must not be copied after first use.
type Cell[T any] struct {
	state atomic.Uint64
	value T
}

// New creates a quiescent cell holding value.
func New[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

// Borrow acquires a shared (read-only) view of the value.
//
// Algorithm:
//  1. Optimistically increment the reader count, observing the previous
//     word. There is no non-blocking primitive that can test-and-increment
//     in one step, so the increment comes first; any attempt that
//     increments while a writer is present sees the write bit in the
//     previous value and is solely responsible for undoing its own
//     increment. No other goroutine ever compensates for it.
//  2. If the previous word had the write bit set, undo the increment,
//     then panic with ErrWriteConflict.
//  3. Otherwise the count now correctly includes this borrow.
//
// Borrow never blocks: it either succeeds or panics within two atomic
// instructions.
func (c *Cell[T]) Borrow() *Ref[T] {
	old := word.Word(c.state.Add(1) - 1)
	if old.Writing() {
		c.state.Add(^uint64(0))
		panic(ErrWriteConflict)
	}
	if old.Readers() == word.MaxReaders {
		// The increment carried into the write bit. Undoing it
		// restores the word bit-for-bit.
		c.state.Add(^uint64(0))
		panic(ErrReaderOverflow)
	}
	return &Ref[T]{state: &c.state, value: &c.value}
}

// BorrowMut acquires the exclusive (read-write) view of the value.
//
// Algorithm:
//  1. Atomically set the write bit, observing the previous word.
//  2. If the write bit was already set, another exclusive borrow is
//     live: panic with ErrWriteConflict. The bit is NOT cleared - it
//     belongs to the other guard, not to this attempt.
//  3. If the previous word was nonzero (readers present), clear the bit
//     this attempt just set, then panic with ErrReadConflict.
//  4. A previous word of exactly zero means the cell was quiescent and
//     exclusive access is validly held.
//
// Like Borrow, BorrowMut never blocks.
func (c *Cell[T]) BorrowMut() *RefMut[T] {
	old := word.Word(c.state.Or(word.WriteBit))
	if old.Writing() {
		panic(ErrWriteConflict)
	}
	if old.Readers() > 0 {
		c.state.And(^word.WriteBit)
		panic(ErrReadConflict)
	}
	return &RefMut[T]{state: &c.state, value: &c.value}
}

// Unwrap returns the protected value, ending the cell's useful life.
//
// The caller must hold the only reference to the cell and no guard may
// be live. Sole ownership already makes a live guard impossible at a
// correct call site, so the quiescence check is an assertion in
// debug builds (-tags syncell_debug), not a runtime barrier.
func (c *Cell[T]) Unwrap() T {
	assertQuiescent(&c.state)
	return c.value
}

// GetMut returns a direct pointer to the value, bypassing the atomic
// protocol. Same precondition and same debug-build assertion as Unwrap:
// the caller holds the only reference to the cell, so no guard can be
// live.
func (c *Cell[T]) GetMut() *T {
	assertQuiescent(&c.state)
	return &c.value
}
