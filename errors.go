package syncell

import "errors"

// Borrow violations are fatal: these values are panic payloads, never
// returned. Tests recover them to assert on the exact failure.
var (
	// ErrWriteConflict reports a borrow of either kind attempted while
	// an exclusive borrow is live.
	ErrWriteConflict = errors.New("syncell: mutably borrowed elsewhere")

	// ErrReadConflict reports an exclusive borrow attempted while one
	// or more shared borrows are live.
	ErrReadConflict = errors.New("syncell: immutably borrowed elsewhere")

	// ErrReaderOverflow reports a shared borrow that would push the
	// reader count past MaxReaders into the write bit.
	ErrReaderOverflow = errors.New("syncell: shared borrow count overflow")

	// ErrReleased reports use of a guard after its Release.
	ErrReleased = errors.New("syncell: guard already released")
)
