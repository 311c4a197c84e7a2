//go:build !pprof

package profile

import "sync"

// Modes returns the list of supported profiling modes. Without the pprof
// build tag, no profiler is linked in and the list is empty.
var Modes = sync.OnceValue(
	func() []string {
		return nil
	},
)

func start(string, string, bool) interface{ Stop() } {
	return ignore{}
}
