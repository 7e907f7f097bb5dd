package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func prettyLogger(buf *bytes.Buffer, format Format) Logger {
	return Make(buf,
		WithFormat(format),
		WithPretty(true),
		WithTimeLayout("none"),
		WithLevel(LevelTrace))
}

func TestPretty_Text(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
		want string
	}{
		{
			name: "scalars",
			log: func(l Logger) {
				l.Info("eval",
					slog.String("file", "main.hx"),
					slog.Int("line", 3),
					slog.Bool("ok", true),
					slog.Float64("ratio", 0.5))
			},
			want: "level=INFO msg=eval file=main.hx line=3 ok=true ratio=0.5\n",
		},
		{
			name: "trace_level_name",
			log:  func(l Logger) { l.Trace("step") },
			want: "level=TRACE msg=step\n",
		},
		{
			name: "with_attrs_kept",
			log: func(l Logger) {
				l.With(slog.String("file", "a.hx")).Warn("slow")
			},
			want: "level=WARN msg=slow file=a.hx\n",
		},
		{
			name: "groups_flattened",
			log: func(l Logger) {
				l.With(slog.String("file", "a.hx")).
					WithGroup("call").
					With(slog.String("name", "f")).
					Debug("enter", slog.Int("depth", 1))
			},
			want: "level=DEBUG msg=enter file=a.hx call.name=f call.depth=1\n",
		},
		{
			name: "inline_group",
			log: func(l Logger) {
				l.Info("v", slog.Group("value",
					slog.String("type", "Integer"),
					slog.String("repr", "42")))
			},
			want: "level=INFO msg=v value.type=Integer value.repr=42\n",
		},
		{
			name: "error_and_nil",
			log: func(l Logger) {
				l.Error("failed",
					slog.Any("error", errors.New("boom")),
					slog.Any("result", nil))
			},
			want: "level=ERROR msg=failed error=boom result=null\n",
		},
		{
			name: "duration",
			log: func(l Logger) {
				l.Info("done", slog.Duration("elapsed", 1500*time.Millisecond))
			},
			want: "level=INFO msg=done elapsed=1.5s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(prettyLogger(&buf, FormatText))

			if buf.String() != tt.want {
				t.Errorf("got  %q\nwant %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPretty_JSON(t *testing.T) {
	var buf bytes.Buffer

	prettyLogger(&buf, FormatJSON).
		WithGroup("call").
		Info("enter",
			slog.String("name", "f"),
			slog.String("note", "a, b"),
			slog.Group("empty"),
			slog.Int("depth", 2))

	want := `{
  level: INFO,
  msg: enter,
  call: {
    name: f,
    note: "a, b",
    depth: 2
  }
}
`

	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPretty_Timestamp(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithPretty(true), WithTimeLayout("2006")).Info("m")

	year := time.Now().Format("2006")
	if !strings.HasPrefix(buf.String(), "time="+year+" ") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPretty_Filtering(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithPretty(true), WithLevel(LevelWarn)).Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("info logged at warn: %q", buf.String())
	}
}
