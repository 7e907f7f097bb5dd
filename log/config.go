package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log message. It extends [slog.Level] with
// [LevelTrace].
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)  // trace
	LevelDebug Level = Level(slog.LevelDebug) // debug
	LevelInfo  Level = Level(slog.LevelInfo)  // info
	LevelWarn  Level = Level(slog.LevelWarn)  // warn
	LevelError Level = Level(slog.LevelError) // error
)

// DefaultLevel is the level used when none is configured.
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels yields the names of all levels from least to most severe.
func Levels() iter.Seq[string] { return names(levels) }

// ParseLevel returns the level named by s, case-insensitively. Besides the
// names yielded by [Levels], it accepts the offset forms understood by
// [slog.Level.UnmarshalText] such as "warn+2". Unknown names yield
// [DefaultLevel].
func ParseLevel(s string) Level {
	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if l.UnmarshalText([]byte(s)) != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format is the encoding of log records.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the format used when none is configured.
const DefaultFormat = FormatText

var formats = []Format{FormatText, FormatJSON}

// Formats yields the names of all formats.
func Formats() iter.Seq[string] { return names(formats) }

// ParseFormat returns the format named by s, ignoring case and surrounding
// space. Unknown names yield [DefaultFormat].
func ParseFormat(s string) Format {
	s = strings.TrimSpace(s)

	for _, f := range formats {
		if strings.EqualFold(s, f.String()) {
			return f
		}
	}

	return DefaultFormat
}

func names[T interface{ String() string }](list []T) iter.Seq[string] {
	return func(yield func(string) bool) {
		for v := range slices.Values(list) {
			if !yield(v.String()) {
				return
			}
		}
	}
}

// FormatTime renders a record timestamp. An empty result omits the time.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the timestamp layout used when none is configured.
const DefaultTimeLayout = time.RFC3339

// DefaultCaller reports whether source locations are logged by default.
const DefaultCaller = false

// DefaultPretty reports whether output is colorized by default.
const DefaultPretty = true

// config is the state shared by a [Logger] and the handlers built for it.
// Options lock mutex when it is set so a config copied into a live Logger
// is never written concurrently with a read.
type config struct {
	mutex      *sync.RWMutex
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// Option changes one setting of a [Logger].
type Option func(config) config

// makeConfig returns the default configuration writing to w with opts
// applied in order.
func makeConfig(w io.Writer, opts ...Option) config {
	c := config{mutex: new(sync.RWMutex)}

	return c.with(WithDefaults(w)).with(opts...)
}

// clone returns a copy of c with its own mutex and opts applied.
func (c config) clone(opts ...Option) config {
	c.mutex = new(sync.RWMutex)

	return c.with(opts...)
}

func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// set returns an Option that applies fn under the config's lock, creating
// the lock on first use.
func set(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = new(sync.RWMutex)
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		fn(&c)

		return c
	}
}

// handler returns the slog handler for c with opts applied on top. Unknown
// formats discard everything.
func (c config) handler(opts ...Option) slog.Handler {
	c = c.with(opts...)

	if !slices.Contains(formats, c.format) {
		return slog.DiscardHandler
	}

	ho := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.pretty:
		return newPrettyHandler(c.output, c.format, ho)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, ho)
	default:
		return slog.NewTextHandler(c.output, ho)
	}
}

// replaceAttr formats timestamps with c.formatTime, dropping them when it
// returns "", and spells levels by name so trace is not shown as DEBUG-4.
func (c config) replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch v := a.Value.Any().(type) {
	case time.Time:
		if a.Key != slog.TimeKey {
			break
		}

		s := c.formatTime(v)
		if s == "" {
			return slog.Attr{}
		}

		a.Value = slog.StringValue(s)

	case slog.Level:
		if a.Key == slog.LevelKey {
			a.Value = slog.StringValue(strings.ToUpper(Level(v).String()))
		}
	}

	return a
}

// WithDefaults resets every setting to its default and directs output to w,
// or discards it when w is nil.
func WithDefaults(w io.Writer) Option {
	return set(func(c *config) {
		*c = config{
			mutex:      c.mutex,
			output:     orDiscard(w),
			formatTime: makeFormatTimeFunc(DefaultTimeLayout),
			level:      DefaultLevel,
			format:     DefaultFormat,
			caller:     DefaultCaller,
			pretty:     DefaultPretty,
		}
	})
}

// WithOutput directs output to w, or discards it when w is nil.
func WithOutput(w io.Writer) Option {
	return set(func(c *config) { c.output = orDiscard(w) })
}

// WithLevel sets the minimum level emitted.
func WithLevel(level Level) Option {
	return set(func(c *config) { c.level = level })
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return set(func(c *config) { c.format = format })
}

// WithTimeLayout sets the timestamp layout.
//
// The layout may name a [time] package layout constant, compared ignoring
// case and punctuation ("RFC3339", "rfc-3339", "Kitchen"), or one of the
// shorthands "ms", "us" and "ns". Any other layout is passed to
// [time.Time.Format] verbatim. An empty layout or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return set(func(c *config) { c.formatTime = format })
}

// WithCaller sets whether records include the source location of the call.
func WithCaller(enable bool) Option {
	return set(func(c *config) { c.caller = enable })
}

// WithPretty sets whether output is colorized, with unquoted text values
// and indented JSON.
func WithPretty(enable bool) Option {
	return set(func(c *config) { c.pretty = enable })
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}

	return w
}

// namedLayouts maps normalized names to layouts. The stamp precisions have
// several aliases each.
var namedLayouts = func() map[string]string {
	m := map[string]string{
		"none":        "",
		"rfc3339":     time.RFC3339,
		"rfc3339nano": time.RFC3339Nano,
		"ansic":       time.ANSIC,
		"unixdate":    time.UnixDate,
		"rubydate":    time.RubyDate,
		"rfc822":      time.RFC822,
		"rfc822z":     time.RFC822Z,
		"rfc850":      time.RFC850,
		"rfc1123":     time.RFC1123,
		"rfc1123z":    time.RFC1123Z,
		"kitchen":     time.Kitchen,
		"datetime":    time.DateTime,
		"stamp":       time.Stamp,
	}

	for layout, aliases := range map[string][]string{
		time.StampMilli: {"stampmilli", "milli", "millis", "ms"},
		time.StampMicro: {"stampmicro", "micro", "micros", "us"},
		time.StampNano:  {"stampnano", "nano", "nanos", "ns"},
	} {
		for _, alias := range aliases {
			m[alias] = layout
		}
	}

	return m
}()

// normalizeLayout lowercases s and keeps only ASCII letters and digits.
func normalizeLayout(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			return r
		case 'A' <= r && r <= 'Z':
			return r + 'a' - 'A'
		}

		return -1
	}, s)
}

func makeFormatTimeFunc(layout string) FormatTime {
	key := normalizeLayout(layout)
	if named, ok := namedLayouts[key]; ok {
		layout = named
	}

	if key == "" || layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
