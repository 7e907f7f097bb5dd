//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"
)

// Modes returns the sorted names of the supported profiling modes.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// options translates p into pkg/profile options. The mode option comes
// first; ok is false when the mode is unknown.
func options(p Profiler) (opts []func(*profile.Profile), ok bool) {
	fn, ok := mode[p.Mode]
	if !ok {
		return nil, false
	}

	opts = append(opts, fn, profile.NoShutdownHook)

	if p.Dir != "" {
		opts = append(opts, profile.ProfilePath(p.Dir))
	}

	if p.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return opts, true
}

func start(p Profiler) Stopper {
	opts, ok := options(p)
	if !ok {
		return ignore{}
	}

	return profile.Start(opts...)
}
