package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values). Errors derived from a sentinel with
// [Error.Wrap], [Error.With] or [Error.WithPosition] still match it with
// [errors.Is].
var (
	ErrLex               = NewError("lex error")
	ErrParse             = NewError("parse error")
	ErrUndefinedVariable = NewError("undefined variable")
	ErrAssignToUndefined = NewError("assignment to undeclared variable")
	ErrTypeMismatch      = NewError("type error")
	ErrArity             = NewError("arity mismatch")
	ErrDivisionByZero    = NewError("division by zero")
	ErrStackOverflow     = NewError("maximum call depth exceeded")
	ErrReadInput         = NewError("failed to read input")
)

// Error represents an error with an optional source position and structured
// logging attributes. It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	pos   Position
	kind  *Error // sentinel this error derives from
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface as "<msg> at <line:col>: <err>".
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.msg)

	if e.pos.IsValid() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString("at ")
		sb.WriteString(e.pos.String())
	}

	if e.err != nil {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Message returns the error text without its position.
func (e *Error) Message() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Pos returns the source position, which is invalid if none was attached.
func (e *Error) Pos() Position { return e.pos }

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether e was derived from the sentinel target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.kind != nil && e.kind == t
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos.IsValid() {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *Error) clone() *Error {
	c := *e

	return &c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// Wrapf creates a new Error wrapping a formatted message.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := e.clone()
	c.attrs = newAttrs

	return c
}

// WithPosition returns a copy of e located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.clone()
	c.pos = pos

	return c
}

// locate attaches pos to err if err is an *Error without a position.
func locate(err error, pos Position) error {
	var e *Error
	if errors.As(err, &e) && !e.pos.IsValid() {
		return e.WithPosition(pos)
	}

	return err
}

// ErrorPosition returns the source position carried by err, if any.
func ErrorPosition(err error) (Position, bool) {
	var e *Error
	if errors.As(err, &e) && e.pos.IsValid() {
		return e.pos, true
	}

	return Position{}, false
}

// Snippet renders the source line containing pos with a caret under the
// offending column:
//
//	  3 | let x = 1 +
//	                 ^
func Snippet(source string, pos Position) string {
	if !pos.IsValid() {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	line := strings.TrimRight(lines[pos.Line-1], "\r")
	num := strconv.Itoa(pos.Line)

	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(num)
	sb.WriteString(" | ")
	sb.WriteString(line)
	sb.WriteByte('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	sb.WriteString(strings.Repeat(" ", len(num)+5))

	// Tabs are kept so the caret lines up in terminals.
	col := 0
	for _, r := range line {
		if col >= pos.Column-1 {
			break
		}

		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}

		col++
	}

	sb.WriteString("^\n")

	return sb.String()
}
