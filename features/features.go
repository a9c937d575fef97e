// Package features gates experimental behavior behind named runtime
// flags. Flags default to off and are safe to toggle concurrently.
package features

import "sync"

// Feature names a toggleable capability.
type Feature string

const (
	// ParallelDispatch lets pass runners work independent subtrees
	// concurrently.
	ParallelDispatch Feature = "parallel-dispatch"
	// StreamingParser enables buffered-window parsing for inputs larger
	// than the parser's buffer.
	StreamingParser Feature = "streaming-parser"
	// DebugMode enables verbose tracing regardless of environment flags.
	DebugMode Feature = "debug-mode"
	// Profiling starts the diagnostics agent in the CLI.
	Profiling Feature = "profiling"
)

var (
	mu      sync.RWMutex
	enabled = map[Feature]bool{}
)

// Enabled reports whether f is on.
func Enabled(f Feature) bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled[f]
}

// Set turns f on or off.
func Set(f Feature, on bool) {
	mu.Lock()
	defer mu.Unlock()
	if on {
		enabled[f] = true
		return
	}
	delete(enabled, f)
}

// List returns the enabled features.
func List() []Feature {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Feature, 0, len(enabled))
	for f := range enabled {
		res = append(res, f)
	}
	return res
}
