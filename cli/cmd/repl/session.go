package repl

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/helix/lang"
)

// Result is the outcome of executing one complete submission.
type Result struct {
	// Source is the complete text that was executed.
	Source string
	// Output is everything the submission printed.
	Output string
	// Value is the value of the last statement, or nil if Err is set.
	Value lang.Value
	// Err is the parse or runtime error, if any.
	Err error
}

// Binding is a top-level name and a short description of its value.
type Binding struct {
	Name    string
	Preview string
}

// Session holds the state of an interactive session: one environment shared
// by every submission, the lines of an incomplete submission, and the
// transcript of submissions that executed without error.
//
// A Session is not safe for concurrent use.
type Session struct {
	opts       []lang.Option
	env        *lang.Environment
	eval       *lang.Evaluator
	out        *bytes.Buffer
	pending    []string
	transcript []string
}

// NewSession returns an empty session. Print output is captured into each
// [Result], overriding any output option in opts.
func NewSession(opts ...lang.Option) *Session {
	s := &Session{out: new(bytes.Buffer)}
	s.opts = append(append(s.opts, opts...), lang.WithOutput(s.out))
	s.Reset()

	return s
}

// Reset discards every binding, the pending lines and the transcript.
func (s *Session) Reset() {
	s.env = lang.NewEnvironment()
	s.eval = lang.NewEvaluator(s.opts...)
	s.pending = nil
	s.transcript = nil
}

// Env returns the session's top-level environment.
func (s *Session) Env() *lang.Environment { return s.env }

// Pending reports whether earlier lines are waiting for the rest of an
// incomplete submission.
func (s *Session) Pending() bool { return len(s.pending) > 0 }

// Discard drops the pending lines of an incomplete submission.
func (s *Session) Discard() { s.pending = nil }

// Transcript returns the source of every successful submission in order.
func (s *Session) Transcript() string {
	if len(s.transcript) == 0 {
		return ""
	}

	return strings.Join(s.transcript, "\n") + "\n"
}

// Submit adds line to the pending submission. While brackets remain open
// the submission is incomplete and Submit reports false. Otherwise the
// submission is executed in the session environment and its result is
// returned with true. Bindings made before a runtime error are kept.
func (s *Session) Submit(ctx context.Context, line string) (Result, bool) {
	s.pending = append(s.pending, line)

	src := strings.Join(s.pending, "\n")
	if !balanced(src) {
		return Result{}, false
	}

	s.pending = nil

	res := s.exec(ctx, src, s.env)
	if res.Err == nil && strings.TrimSpace(src) != "" {
		s.transcript = append(s.transcript, src)
	}

	return res, true
}

// Replace executes src in a fresh environment and, if it succeeds, makes
// that environment and src the session state. On failure the session is
// unchanged.
func (s *Session) Replace(ctx context.Context, src string) Result {
	env := lang.NewEnvironment()

	res := s.exec(ctx, src, env)
	if res.Err != nil {
		return res
	}

	s.env = env
	s.pending = nil
	s.transcript = nil

	if strings.TrimSpace(src) != "" {
		s.transcript = []string{strings.TrimRight(src, "\n")}
	}

	return res
}

func (s *Session) exec(ctx context.Context, src string, env *lang.Environment) Result {
	defer s.out.Reset()

	res := Result{Source: src}

	prog, err := lang.ParseString(ctx, src, s.opts...)
	if err != nil {
		res.Err = err

		return res
	}

	res.Value, res.Err = s.eval.Exec(ctx, prog, env)
	res.Output = s.out.String()

	return res
}

// Bindings lists the top-level bindings in name order.
func (s *Session) Bindings() []Binding {
	var list []Binding

	for name := range s.env.Names() {
		v, _ := s.env.Lookup(name)
		list = append(list, Binding{Name: name, Preview: preview(v)})
	}

	return list
}

const previewWidth = 40

// preview describes v in at most previewWidth bytes.
func preview(v lang.Value) string {
	if fn, ok := v.(*lang.Function); ok {
		return "fn " + fn.Signature()
	}

	text := lang.Repr(v)
	if len(text) <= previewWidth {
		return text
	}

	// Cut on a rune boundary at or before previewWidth-3 bytes.
	cut := previewWidth - 3
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + "..."
}

// balanced reports whether every '(' and '{' in src outside of string
// literals and comments has been closed. Extra closing brackets count as
// balanced so the parser can report them.
func balanced(src string) bool {
	depth := 0

	var quote rune

	escaped := false
	comment := false

	prev := rune(0)

	for _, r := range src {
		switch {
		case r == '\n':
			// Neither strings nor comments span lines.
			quote, escaped, comment = 0, false, false

		case comment:

		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}

		case r == '"' || r == '\'':
			quote = r

		case r == '#' || (r == '/' && prev == '/'):
			comment = true

		case r == '(' || r == '{':
			depth++

		case r == ')' || r == '}':
			depth--
		}

		prev = r
	}

	return depth <= 0
}
