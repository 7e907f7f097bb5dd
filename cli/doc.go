// Package cli contains the command line interface for helix.
//
// # Usage
//
//	helix [flags] [file ...]        # run scripts, or start the REPL
//	helix run --watch main.hx       # re-run whenever main.hx changes
//	helix fmt json main.hx          # print the syntax tree as JSON
//	helix init                      # write the configuration script
//	helix version --require '>=0.1'
//
// # Configuration
//
// Flag defaults are read from config.hx in the user configuration directory.
// The script is executed and each top-level binding supplies the flag of the
// same name, with hyphens written as underscores:
//
//	let log_level = "debug"
//	let max_call_depth = 4096
//
// Flags given on the command line take precedence.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout, or none
//   - --[no-]log-caller: include the source location
//   - --[no-]log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: profile kind (allocs, block, clock, cpu, goroutine, heap,
//     mem, mutex, thread, trace)
//   - --pprof-dir: output directory (default ~/.cache/helix/pprof)
package cli
