package syncell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvark/syncell/internal/word"
)

// mustPanicWith runs f and asserts it panics with exactly the given
// sentinel.
func mustPanicWith(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		require.Equal(t, want, recover())
	}()
	f()
	t.Fatal("expected panic, got none")
}

// TestValid exercises the full happy path: one exclusive mutation
// followed by two overlapping shared reads, ending quiescent.
func TestValid(t *testing.T) {
	cell := New(uint8(0))

	w := cell.BorrowMut()
	w.Set(w.Get() + 1)
	w.Release()

	r1 := cell.Borrow()
	r2 := cell.Borrow()
	require.Equal(t, uint8(2), r1.Get()+r2.Get())
	r1.Release()
	r2.Release()

	require.True(t, word.Word(cell.state.Load()).Quiescent())
}

// TestWriteWriteConflict: a second exclusive borrow while one is live
// must abort, and must not disturb the live guard's write bit.
func TestWriteWriteConflict(t *testing.T) {
	cell := New(0)
	w := cell.BorrowMut()

	before := cell.state.Load()
	mustPanicWith(t, ErrWriteConflict, func() { cell.BorrowMut() })
	require.Equal(t, before, cell.state.Load(), "failed borrow must leave the word untouched")

	// The surviving guard still works and still restores quiescence.
	w.Set(42)
	require.Equal(t, 42, w.Get())
	w.Release()
	require.Zero(t, cell.state.Load())
}

// TestReadWriteConflict: an exclusive borrow while readers are live
// must abort after undoing its own write bit, leaving the readers
// intact and the cell usable.
func TestReadWriteConflict(t *testing.T) {
	cell := New(0)
	r := cell.Borrow()

	before := cell.state.Load()
	mustPanicWith(t, ErrReadConflict, func() { cell.BorrowMut() })
	require.Equal(t, before, cell.state.Load(), "failed borrow must restore the word exactly")

	// The word was not corrupted: further shared borrows succeed.
	r2 := cell.Borrow()
	require.Equal(t, uint64(2), word.Word(cell.state.Load()).Readers())
	r2.Release()
	r.Release()
	require.Zero(t, cell.state.Load())
}

// TestWriteReadConflict: a shared borrow while a writer is live must
// abort after undoing its own increment, and the writer's later release
// must still return the cell to quiescence.
func TestWriteReadConflict(t *testing.T) {
	cell := New(0)
	w := cell.BorrowMut()

	before := cell.state.Load()
	mustPanicWith(t, ErrWriteConflict, func() { cell.Borrow() })
	require.Equal(t, before, cell.state.Load(), "aborted increment must be undone")

	w.Release()
	require.Zero(t, cell.state.Load())
}

// TestReaderOverflow pins the overflow policy: a shared borrow that
// would carry the count into the write bit aborts and restores the
// word, instead of silently wrapping.
func TestReaderOverflow(t *testing.T) {
	cell := New(0)
	cell.state.Store(word.MaxReaders)

	mustPanicWith(t, ErrReaderOverflow, func() { cell.Borrow() })
	require.Equal(t, word.MaxReaders, cell.state.Load())
}

// TestRepeatedBorrowCycles verifies quiescence after every
// borrow/release pattern, not just the first.
func TestRepeatedBorrowCycles(t *testing.T) {
	cell := New(0)

	for i := 0; i < 100; i++ {
		w := cell.BorrowMut()
		w.Set(i)
		w.Release()

		readers := make([]*Ref[int], i%7)
		for j := range readers {
			readers[j] = cell.Borrow()
		}
		require.Equal(t, uint64(i%7), word.Word(cell.state.Load()).Readers())
		for _, r := range readers {
			require.Equal(t, i, r.Get())
			r.Release()
		}
		require.Zero(t, cell.state.Load())
	}
}

// TestUnwrap returns the value from a quiescent cell.
func TestUnwrap(t *testing.T) {
	cell := New("payload")
	w := cell.BorrowMut()
	w.Set("updated")
	w.Release()

	require.Equal(t, "updated", cell.Unwrap())
}

// TestGetMut bypasses the protocol under sole ownership.
func TestGetMut(t *testing.T) {
	cell := New(10)
	*cell.GetMut() += 5

	r := cell.Borrow()
	defer r.Release()
	require.Equal(t, 15, r.Get())
}

// TestGuardsSeeSameSlot verifies all access paths reach one storage
// location.
func TestGuardsSeeSameSlot(t *testing.T) {
	type payload struct{ a, b int }

	cell := New(payload{a: 1})

	w := cell.BorrowMut()
	w.Ptr().b = 2
	w.Release()

	r := cell.Borrow()
	require.Equal(t, payload{a: 1, b: 2}, r.Get())
	require.Equal(t, 2, r.Ptr().b)
	r.Release()

	require.Equal(t, payload{a: 1, b: 2}, cell.Unwrap())
}

// TestDeferredReleaseOnPanic verifies that a deferred Release restores
// the state even when the scope unwinds, so a cell survives a panicking
// consumer.
func TestDeferredReleaseOnPanic(t *testing.T) {
	cell := New(0)

	func() {
		defer func() { _ = recover() }()
		w := cell.BorrowMut()
		defer w.Release()
		panic("consumer failure")
	}()

	require.Zero(t, cell.state.Load(), "deferred release must run during unwinding")
	w := cell.BorrowMut()
	w.Release()
}
