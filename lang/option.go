package lang

import (
	"io"
	"os"

	"github.com/ardnew/helix/log"
)

// DefaultMaxDepth is the default maximum nesting depth of blocks and
// expressions accepted by the parser.
const DefaultMaxDepth = 256

// DefaultMaxCallDepth is the default maximum number of active function
// calls before evaluation fails with [ErrStackOverflow].
const DefaultMaxCallDepth = 2048

// options holds parser and evaluator configuration.
type options struct {
	logger       log.Logger
	output       io.Writer
	maxDepth     int
	maxCallDepth int
	cache        bool
}

// Option configures parsing or evaluation behavior.
type Option func(*options)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithOutput sets the writer receiving print output.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w == nil {
			w = io.Discard
		}

		o.output = w
	}
}

// WithMaxDepth sets the maximum syntactic nesting depth.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithMaxCallDepth sets the maximum number of nested function calls.
func WithMaxCallDepth(depth int) Option {
	return func(o *options) { o.maxCallDepth = depth }
}

// WithCache enables or disables the shared parse cache used by
// [ParseString] and [ParseReader]. It is enabled by default.
func WithCache(enable bool) Option {
	return func(o *options) { o.cache = enable }
}

func makeOptions(opts ...Option) options {
	o := options{
		output:       os.Stdout,
		maxDepth:     DefaultMaxDepth,
		maxCallDepth: DefaultMaxCallDepth,
		cache:        true,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
