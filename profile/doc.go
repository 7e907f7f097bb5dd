// Package profile provides optional runtime profiling for helix.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag. Without the tag [Modes] is empty and [Profiler.Start]
// returns a no-op [Stopper].
//
//	go build -tags pprof .
//	helix --pprof-mode cpu --pprof-dir ./profiles script.hx
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// The default output directory is the profile subdirectory of the helix
// cache directory, e.g. $XDG_CACHE_HOME/helix/pprof.
package profile
