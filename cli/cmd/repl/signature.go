package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/helix/lang"
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string
	argIndex int  // 0-based index of the argument under the cursor
	inCall   bool // cursor is inside the argument list
}

// detectFunctionCall determines whether the cursor is inside the argument
// list of a call, and if so which function and which argument.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	// Find the innermost unclosed '(' before the cursor.
	open := -1
	depth := 0

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	// Count top-level commas between '(' and the cursor.
	arg := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

// getSignature returns the signature and parameter names of the function
// bound to name in env, or an empty signature if name is not a function.
func getSignature(env *lang.Environment, name string) (signature string, params []string) {
	v, ok := env.Lookup(name)
	if !ok {
		return "", nil
	}

	fn, ok := v.(*lang.Function)
	if !ok {
		return "", nil
	}

	return name + "(" + strings.Join(fn.Params, ", ") + ")", fn.Params
}

// renderSignatureHint renders the function signature with the current
// parameter highlighted. Arguments beyond the last parameter highlight
// nothing.
func renderSignatureHint(signature string, params []string, current int) string {
	open := strings.IndexByte(signature, '(')
	if open < 0 {
		return signatureStyle.Render(signature)
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(signature[:open]))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == current {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
