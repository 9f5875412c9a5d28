//go:build !syncell_debug

package syncell

import "sync/atomic"

// Release builds skip the direct-access quiescence check entirely; the
// compiler removes the call.
func assertQuiescent(*atomic.Uint64) {}
