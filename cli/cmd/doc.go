// Package cmd implements the helix subcommands: run, fmt, init and version.
//
// Every command is a kong command struct whose Run method receives the
// [context.Context] bound by the CLI. Script failures are reported to the
// command's error stream as compiler-style diagnostics and returned as
// [ErrScriptFailed].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
