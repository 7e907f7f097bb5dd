package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// swapDefault points the default logger at buf for the duration of a test.
func swapDefault(t *testing.T, buf *bytes.Buffer, opts ...Option) {
	t.Helper()

	original := Default()

	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	})

	Config(append([]Option{WithOutput(buf)}, opts...)...)
}

func TestPackage_Functions(t *testing.T) {
	var buf bytes.Buffer

	swapDefault(t, &buf,
		WithLevel(LevelTrace),
		WithFormat(FormatText),
		WithPretty(false))

	ctx := context.Background()

	tests := []struct {
		name  string
		log   func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"TraceContext", func(m string, a ...slog.Attr) { TraceContext(ctx, m, a...) }, "TRACE"},
		{"DebugContext", func(m string, a ...slog.Attr) { DebugContext(ctx, m, a...) }, "DEBUG"},
		{"InfoContext", func(m string, a ...slog.Attr) { InfoContext(ctx, m, a...) }, "INFO"},
		{"WarnContext", func(m string, a ...slog.Attr) { WarnContext(ctx, m, a...) }, "WARN"},
		{"ErrorContext", func(m string, a ...slog.Attr) { ErrorContext(ctx, m, a...) }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			tt.log("package message", slog.String("key", "value"))

			out := buf.String()
			for _, want := range []string{"level=" + tt.level, "package message", "key=value"} {
				if !strings.Contains(out, want) {
					t.Errorf("output %q does not contain %q", out, want)
				}
			}
		})
	}
}

func TestPackage_Config(t *testing.T) {
	var buf bytes.Buffer

	swapDefault(t, &buf, WithLevel(LevelError), WithPretty(false))

	Info("dropped")

	if buf.Len() != 0 {
		t.Errorf("info logged at error level: %q", buf.String())
	}

	// Later calls keep earlier settings they do not override.
	Config(WithLevel(LevelInfo))
	Info("kept")

	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("output = %q", buf.String())
	}

	if Default().Level() != LevelInfo {
		t.Errorf("Default().Level() = %v", Default().Level())
	}
}

func TestPackage_CallerIsUserCode(t *testing.T) {
	var buf bytes.Buffer

	swapDefault(t, &buf, WithCaller(true), WithPretty(false))

	Info("where")

	if !strings.Contains(buf.String(), "pkg_test.go") {
		t.Errorf("source does not name the caller: %q", buf.String())
	}
}

func TestPackage_With(t *testing.T) {
	var buf bytes.Buffer

	swapDefault(t, &buf, WithPretty(false))

	With(slog.String("component", "repl")).Info("ready")

	if !strings.Contains(buf.String(), "component=repl") {
		t.Errorf("output = %q", buf.String())
	}
}
