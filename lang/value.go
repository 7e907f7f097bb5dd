package lang

import (
	"math"
	"strconv"
	"strings"
)

// Value is a runtime value. The set of implementations is closed: [Integer],
// [Float], [String], [Boolean], [Nil] and [*Function].
type Value interface {
	// Type returns the value's type name as used in diagnostics.
	Type() string
	// String returns the canonical text emitted by print.
	String() string

	value()
}

type (
	// Integer is a signed 64-bit integer value.
	Integer int64
	// Float is a 64-bit floating-point value.
	Float float64
	// String is an immutable text value.
	String string
	// Boolean is a truth value.
	Boolean bool
	// Nil is the absence of a value.
	Nil struct{}
)

// Function is a closure: a function declaration paired with the environment
// active where it was declared. The environment is shared, not copied.
type Function struct {
	Name   string
	Params []string
	Body   *Block
	Env    *Environment
}

func (Integer) value()   {}
func (Float) value()     {}
func (String) value()    {}
func (Boolean) value()   {}
func (Nil) value()       {}
func (*Function) value() {}

func (Integer) Type() string   { return "integer" }
func (Float) Type() string     { return "float" }
func (String) Type() string    { return "string" }
func (Boolean) Type() string   { return "boolean" }
func (Nil) Type() string       { return "nil" }
func (*Function) Type() string { return "function" }

func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }

// String formats v in its shortest round-trip form. The result always holds
// a decimal point or exponent so it reads back as a float.
func (v Float) String() string {
	f := float64(v)

	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

func (v String) String() string { return string(v) }

func (v Boolean) String() string { return strconv.FormatBool(bool(v)) }

func (Nil) String() string { return "nil" }

// Signature returns the function's name and parameter list, e.g. "add(a, b)".
func (f *Function) Signature() string {
	return f.Name + "(" + strings.Join(f.Params, ", ") + ")"
}

func (f *Function) String() string { return "<function " + f.Signature() + ">" }

// Truthy maps any value to a boolean for conditions and logical operators.
// Zero numbers, the empty string, false and nil are falsy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Boolean:
		return bool(v)
	case Integer:
		return v != 0
	case Float:
		return v != 0
	case String:
		return v != ""
	case *Function:
		return true
	default:
		return false
	}
}

// Repr returns the source text that evaluates to v. Strings are quoted
// and escaped; other literal values use their canonical text. Infinities
// and NaN have no literal, so they yield a parenthesized expression that
// overflows to them. Function values have no literal form and yield their
// description.
func Repr(v Value) string {
	switch v := v.(type) {
	case String:
		return quote(string(v))

	case Float:
		f := float64(v)

		switch {
		case math.IsInf(f, 1):
			return "(" + overflow + ")"
		case math.IsInf(f, -1):
			return "(-" + overflow + ")"
		case math.IsNaN(f):
			return "(" + overflow + " - " + overflow + ")"
		}
	}

	return v.String()
}

// overflow is float source text that evaluates to +inf.
const overflow = "1e308 * 10"

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\x00", `\0`,
)

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
