// Package log provides a concurrency-safe leveled logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("script loaded", slog.String("file", "main.hx"))
//	logger.Error("script failed", slog.Any("error", err))
//
// # Configuration
//
// Loggers are configured with functional options when created:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with options applied on top of an
// existing configuration.
//
// # Default Logger
//
// The package-level functions such as [Info] and [ErrorContext] write to a
// default logger on [os.Stderr]. [Config] reconfigures it.
//
// # Context-Aware Logging
//
// Every level has a context-aware and a context-unaware variant. The
// unaware variants use [DefaultContextProvider], which returns
// [context.TODO] unless replaced.
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Messages below the configured level are
// discarded. The interpreter traces every statement and call at
// [LevelTrace].
//
// # Time Formatting
//
// [WithTimeLayout] accepts any named layout from the [time] package (such as
// "RFC3339" or "Kitchen"), a few short aliases ("ms", "us", "ns"), or a custom
// layout string. The layout "none" omits timestamps.
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON]. With [WithPretty] enabled, text output is colorized
// key=value pairs and JSON output is an indented object. Colors are only
// emitted when the output is a terminal.
package log
