package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by pretty output. Styles are bound to a
// renderer for the handler's writer, so colors are dropped automatically
// when the writer is not a terminal.
type palette struct {
	key    lipgloss.Style
	str    lipgloss.Style
	num    lipgloss.Style
	yes    lipgloss.Style
	no     lipgloss.Style
	null   lipgloss.Style
	other  lipgloss.Style
	levels [5]lipgloss.Style // trace, debug, info, warn, error
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		null:  fg("8"),
		other: fg("4"),
		levels: [5]lipgloss.Style{
			fg("5"),
			fg("4"),
			fg("2"),
			fg("3").Bold(true),
			fg("1").Bold(true),
		},
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.levels[4]
	case l >= slog.LevelWarn:
		return p.levels[3]
	case l >= slog.LevelInfo:
		return p.levels[2]
	case l >= slog.LevelDebug:
		return p.levels[1]
	default:
		return p.levels[0]
	}
}

// prettyHandler renders records for humans, either as key=value pairs on
// one line or as an indented JSON-like object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	format Format
	mu     *sync.Mutex
	w      io.Writer
	style  *palette
	attrs  []slog.Attr // from WithAttrs, already nested in their groups
	groups []string
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		format: format,
		mu:     &sync.Mutex{},
		w:      w,
		style:  newPalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

// nest wraps attrs in the handler's open groups, innermost last.
func (h *prettyHandler) nest(attrs []slog.Attr) []slog.Attr {
	for i := len(h.groups) - 1; i >= 0; i-- {
		args := make([]any, len(attrs))
		for j, a := range attrs {
			args[j] = a
		}

		attrs = []slog.Attr{slog.Group(h.groups[i], args...)}
	}

	return attrs
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.nest(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// builtin applies ReplaceAttr to a top-level attribute such as time or level.
func (h *prettyHandler) builtin(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	return a
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	head := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		head = append(head, h.builtin(slog.Time(slog.TimeKey, r.Time)))
	}

	level := h.builtin(slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			head = append(head, h.builtin(
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line))))
		}
	}

	own := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		own = append(own, a)

		return true
	})

	attrs := make([]slog.Attr, 0, len(h.attrs)+1)
	attrs = append(attrs, h.attrs...)
	attrs = append(attrs, h.nest(own)...)

	buf := new(bytes.Buffer)

	switch h.format {
	case FormatJSON:
		h.writeObject(buf, r, head, level, attrs)
	default:
		h.writeLine(buf, r, head, level, attrs)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) levelText(r slog.Record, a slog.Attr) string {
	return h.style.level(r.Level).Render(a.Value.Resolve().String())
}

func (h *prettyHandler) writeLine(
	buf *bytes.Buffer,
	r slog.Record,
	head []slog.Attr,
	level slog.Attr,
	attrs []slog.Attr,
) {
	sep := func() {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
	}

	for _, a := range head {
		if a.Key == "" {
			continue
		}

		sep()
		h.writePair(buf, a.Key, a.Value)
	}

	if level.Key != "" {
		sep()
		buf.WriteString(h.style.key.Render(level.Key) + "=" + h.levelText(r, level))
	}

	sep()
	buf.WriteString(h.style.key.Render(slog.MessageKey) + "=" + r.Message)

	var walk func(prefix string, as []slog.Attr)
	walk = func(prefix string, as []slog.Attr) {
		for _, a := range as {
			a.Value = a.Value.Resolve()
			if a.Equal(slog.Attr{}) {
				continue
			}

			key := a.Key
			if prefix != "" && key != "" {
				key = prefix + "." + key
			} else if key == "" {
				key = prefix
			}

			if a.Value.Kind() == slog.KindGroup {
				walk(key, a.Value.Group())

				continue
			}

			sep()
			h.writePair(buf, key, a.Value)
		}
	}

	walk("", attrs)
}

func (h *prettyHandler) writePair(buf *bytes.Buffer, key string, v slog.Value) {
	buf.WriteString(h.style.key.Render(key))
	buf.WriteByte('=')
	buf.WriteString(h.value(v, false))
}

// value renders a scalar. Strings are quoted only in JSON mode and only
// when they contain characters that would confuse a reader.
func (h *prettyHandler) value(v slog.Value, quote bool) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if quote && (s == "" || strings.ContainsAny(s, "\n\t\",{}[]")) {
			s = strconv.Quote(s)
		}

		return h.style.str.Render(s)

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")

	case slog.KindDuration, slog.KindTime:
		return h.style.other.Render(v.String())

	case slog.KindAny:
		if v.Any() == nil {
			return h.style.null.Render("null")
		}

		if err, ok := v.Any().(error); ok {
			return h.style.no.Render(err.Error())
		}
	}

	return h.style.str.Render(v.String())
}

func (h *prettyHandler) writeObject(
	buf *bytes.Buffer,
	r slog.Record,
	head []slog.Attr,
	level slog.Attr,
	attrs []slog.Attr,
) {
	fields := make([]slog.Attr, 0, len(head)+len(attrs)+2)
	fields = append(fields, head...)

	if level.Key != "" {
		fields = append(fields, level)
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, attrs...)

	h.writeMembers(buf, r, fields, 1)
}

func (h *prettyHandler) writeMembers(
	buf *bytes.Buffer,
	r slog.Record,
	fields []slog.Attr,
	depth int,
) {
	buf.WriteString("{\n")

	indent := strings.Repeat("  ", depth)
	first := true

	for _, a := range inline(fields) {
		// Empty groups are omitted.
		if a.Value.Kind() == slog.KindGroup && len(a.Value.Group()) == 0 {
			continue
		}

		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString(indent)
		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteString(": ")

		switch {
		case a.Value.Kind() == slog.KindGroup:
			h.writeMembers(buf, r, a.Value.Group(), depth+1)
		case a.Key == slog.LevelKey && depth == 1:
			buf.WriteString(h.levelText(r, a))
		default:
			buf.WriteString(h.value(a.Value, true))
		}
	}

	buf.WriteString("\n")
	buf.WriteString(strings.Repeat("  ", depth-1))
	buf.WriteString("}")
}

// inline resolves values, drops empty attrs and splices the members of
// keyless groups into the enclosing list.
func inline(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))

	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}

		if a.Key == "" && a.Value.Kind() == slog.KindGroup {
			out = append(out, inline(a.Value.Group())...)

			continue
		}

		out = append(out, a)
	}

	return out
}
