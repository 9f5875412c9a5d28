//go:build syncell_debug

package syncell

import (
	"sync/atomic"

	"github.com/kvark/syncell/internal/word"
)

// assertQuiescent backs the direct-access operations in debug builds.
// Their precondition (sole ownership of the cell) already rules out live
// guards at a correct call site; this catches the incorrect ones.
func assertQuiescent(state *atomic.Uint64) {
	if w := word.Word(state.Load()); !w.Quiescent() {
		panic("BUG: syncell: direct access with live guards (" + w.String() + ")")
	}
}
