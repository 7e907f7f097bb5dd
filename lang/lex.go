package lang

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lex converts source text into tokens terminated by a [KindEOF] token.
// It fails with [ErrLex] on the first character it cannot classify.
func Lex(src string) ([]Token, error) {
	l := &lexer{input: src, line: 1, col: 1}

	var toks []Token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.Kind == KindEOF {
			return toks, nil
		}
	}
}

// lexer holds the scanning state.
type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

func (l *lexer) eof() bool { return l.pos >= len(l.input) }

// peek returns the current rune without consuming it.
func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

	return r
}

// peekAt returns the rune n bytes past the current position. Only used for
// ASCII lookahead.
func (l *lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}

	return l.input[l.pos+n]
}

// advance consumes one rune and tracks line/column.
func (l *lexer) advance() rune {
	if l.eof() {
		return 0
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func (l *lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.eof() {
		r := l.peek()

		switch {
		case unicode.IsSpace(r):
			l.advance()

		case r == '#', r == '/' && l.peekAt(1) == '/':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}

		default:
			return
		}
	}
}

func (l *lexer) next() (Token, error) {
	l.skipWhitespaceAndComments()

	start := l.position()

	if l.eof() {
		return Token{Kind: KindEOF, Pos: start}, nil
	}

	r := l.peek()

	switch {
	case isIdentifierStart(r):
		return l.identifier(start), nil

	case r >= '0' && r <= '9':
		return l.number(start)

	case r == '"' || r == '\'':
		return l.string(start)
	}

	l.advance()

	kind, ok := l.operator(r)
	if !ok {
		return Token{}, ErrLex.WithPosition(start).
			Wrapf("unexpected character %q", r).
			With(slog.String("char", string(r)))
	}

	return Token{Kind: kind, Text: l.input[start.Offset:l.pos], Pos: start}, nil
}

// operator classifies the operator or delimiter beginning with r, which has
// already been consumed, consuming a second character where needed.
func (l *lexer) operator(r rune) (Kind, bool) {
	// follow consumes the next character if it equals c.
	follow := func(c rune) bool {
		if l.peek() == c {
			l.advance()

			return true
		}

		return false
	}

	switch r {
	case '+':
		return KindPlus, true
	case '-':
		return KindMinus, true
	case '*':
		return KindStar, true
	case '/':
		return KindSlash, true
	case '%':
		return KindPercent, true
	case '^':
		return KindCaret, true
	case '(':
		return KindLParen, true
	case ')':
		return KindRParen, true
	case '{':
		return KindLBrace, true
	case '}':
		return KindRBrace, true
	case ',':
		return KindComma, true
	case ';':
		return KindSemicolon, true
	case '=':
		if follow('=') {
			return KindEq, true
		}

		return KindAssign, true
	case '!':
		if follow('=') {
			return KindNe, true
		}

		return KindNot, true
	case '<':
		if follow('=') {
			return KindLe, true
		}

		return KindLt, true
	case '>':
		if follow('=') {
			return KindGe, true
		}

		return KindGt, true
	case '&':
		if follow('&') {
			return KindAnd, true
		}
	case '|':
		if follow('|') {
			return KindOr, true
		}
	}

	return KindEOF, false
}

func (l *lexer) identifier(start Position) Token {
	for !l.eof() && isIdentifierContinue(l.peek()) {
		l.advance()
	}

	text := l.input[start.Offset:l.pos]

	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Text: text, Pos: start}
	}

	return Token{Kind: KindIdent, Text: text, Pos: start}
}

func (l *lexer) digits() {
	for !l.eof() && isDigit(l.peekAt(0)) {
		l.advance()
	}
}

func (l *lexer) number(start Position) (Token, error) {
	l.digits()

	kind := KindInt

	if l.peekAt(0) == '.' && isDigit(l.peekAt(1)) {
		kind = KindFloat

		l.advance()
		l.digits()
	}

	// Exponent is only consumed when digits follow, so "1e" lexes as the
	// integer 1 followed by the identifier e.
	if c := l.peekAt(0); c == 'e' || c == 'E' {
		n := 1
		if s := l.peekAt(1); s == '+' || s == '-' {
			n = 2
		}

		if isDigit(l.peekAt(n)) {
			kind = KindFloat

			for range n {
				l.advance()
			}

			l.digits()
		}
	}

	if l.peekAt(0) == '.' && isDigit(l.peekAt(1)) {
		return Token{}, ErrLex.WithPosition(l.position()).
			Wrapf("too many decimal points in number %q",
				l.input[start.Offset:l.pos]+".")
	}

	// Range is checked by the parser, which knows whether the literal is
	// negated.
	return Token{Kind: kind, Text: l.input[start.Offset:l.pos], Pos: start}, nil
}

// string scans a quoted literal. The token text holds the decoded value.
func (l *lexer) string(start Position) (Token, error) {
	quote := l.advance()

	var sb strings.Builder

	for {
		if l.eof() || l.peek() == '\n' {
			return Token{}, ErrLex.WithPosition(start).
				Wrapf("unterminated string literal")
		}

		r := l.advance()

		switch r {
		case quote:
			return Token{Kind: KindString, Text: sb.String(), Pos: start}, nil

		case '\\':
			escPos := l.position()

			if l.eof() {
				return Token{}, ErrLex.WithPosition(start).
					Wrapf("unterminated string literal")
			}

			e := l.advance()

			c, ok := unescape[e]
			if !ok {
				return Token{}, ErrLex.WithPosition(escPos).
					Wrapf("unknown escape sequence \\%c", e)
			}

			sb.WriteRune(c)

		default:
			sb.WriteRune(r)
		}
	}
}

// unescape maps the character after a backslash to the rune it denotes.
var unescape = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
