// Package word defines the bit layout of the cell's atomic state word.
//
// Word packs the entire access state of a cell into a single 64-bit value:
// - Top 1 bit: Write flag (an exclusive borrow is live)
// - Bottom 63 bits: Reader count (number of live shared borrows)
//
// This encoding is what allows every borrow decision to be made from the
// previous value of one atomic read-modify-write instruction, with no lock
// and no retry loop.
package word

import "strconv"

// Word is a decoded snapshot of a cell's state.
// Layout: [Write:1][Readers:63]
//
// Example: 0x8000000000000000 is an exclusive borrow, 0x0000000000000003
// is three live shared borrows.
type Word uint64

const (
	// WriteBit is the most-significant bit, set while an exclusive
	// borrow is live.
	WriteBit uint64 = 1 << 63

	// ReaderMask extracts the reader count (low 63 bits).
	ReaderMask = WriteBit - 1

	// MaxReaders is the hard ceiling on concurrent shared borrows.
	// One more increment would carry into the write bit; a borrow that
	// hits the ceiling is aborted rather than allowed to wrap.
	MaxReaders uint64 = ReaderMask
)

// Writing reports whether an exclusive borrow is live.
//
// When the write bit is set the reader count carries no meaning: no
// shared guard can be live at the same time, and any nonzero count is a
// transient left by a concurrent borrow attempt that will undo it.
//
//go:nosplit
func (w Word) Writing() bool {
	return uint64(w)&WriteBit != 0
}

// Readers returns the live shared-borrow count.
//
//go:nosplit
func (w Word) Readers() uint64 {
	return uint64(w) & ReaderMask
}

// Quiescent reports whether no borrow of any kind is live.
//
//go:nosplit
func (w Word) Quiescent() bool {
	return w == 0
}

// String returns a human-readable representation of the state.
//
// Format: "writing" for an exclusive borrow, "N readers" otherwise.
// Used only in assertion failures and debugging, never on the hot path.
func (w Word) String() string {
	if w.Writing() {
		return "writing"
	}
	return strconv.FormatUint(w.Readers(), 10) + " readers"
}
