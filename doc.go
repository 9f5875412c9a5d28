// Package syncell provides a runtime-checked cell that can be shared
// between goroutines.
//
// A Cell holds one value and hands out either any number of concurrent
// read-only views (Ref) or a single exclusive read-write view (RefMut),
// enforcing shared-xor-exclusive access at run time with a single atomic
// word. It is the concurrent analogue of a single-goroutine runtime
// borrow check: where a single-goroutine cell relies on the owning scope
// to prevent aliasing, this one detects violations coming from
// independent goroutines racing for the same memory, using only atomic
// read-modify-write instructions. No locks, no waiting, no retry loops.
//
// # Main principles
//
//  1. If you change the state word and the change turns out fine, you
//     reverse it on Release.
//  2. If you found a conflict, you still undo your own change, and only
//     then panic.
//
// A conflicting borrow is a usage-contract violation, never an expected
// outcome, so it is fatal: the failing attempt fully restores the state
// word and panics with [ErrWriteConflict] or [ErrReadConflict]. There is
// no recoverable variant. Continuing after a detected aliasing violation
// would trade a crash for silent memory corruption.
//
// # State word layout
//
// The whole protocol runs on one 64-bit word:
//
//	[Write:1][Readers:63]
//
// Borrow increments the reader count and checks the previous value for
// the write bit; BorrowMut sets the write bit and checks the previous
// value for anything at all. Either operation completes in one or two
// atomic instructions - the fast path is wait-free.
//
// The 63-bit count bounds concurrent shared borrows to 2^63-1; an
// increment that would carry into the write bit aborts with
// [ErrReaderOverflow] instead of wrapping.
//
// # Usage
//
//	cell := syncell.New(0)
//
//	// Exclusive access:
//	w := cell.BorrowMut()
//	w.Set(w.Get() + 1)
//	w.Release()
//
//	// Shared access, any number concurrently:
//	r := cell.Borrow()
//	defer r.Release()
//	fmt.Println(r.Get())
//
// Release every guard exactly once, normally with defer so that every
// exit path, including a panic, restores the guard's share of the state.
//
// # Intended layering
//
// The cell assumes, but does not require, that callers wrap it in a
// coarser synchronization layer (an outer sync.RWMutex, a channel-owned
// structure) that already prevents conflicting access. The atomic
// protocol is a cheap, independent re-verification of that assumption -
// a crash-on-violation safety net, not a substitute for real exclusion
// where exclusion is needed for liveness.
package syncell
