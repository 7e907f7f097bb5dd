package lang

import "strconv"

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	KindEOF Kind = iota
	KindIdent
	KindInt
	KindFloat
	KindString

	// Keywords.
	KindLet
	KindIf
	KindElse
	KindWhile
	KindFunction
	KindPrint
	KindTrue
	KindFalse
	KindNil

	// Operators.
	KindPlus    // +
	KindMinus   // -
	KindStar    // *
	KindSlash   // /
	KindPercent // %
	KindCaret   // ^
	KindAssign  // =
	KindEq      // ==
	KindNe      // !=
	KindLt      // <
	KindLe      // <=
	KindGt      // >
	KindGe      // >=
	KindAnd     // && and
	KindOr      // || or
	KindNot     // ! not

	// Delimiters.
	KindLParen    // (
	KindRParen    // )
	KindLBrace    // {
	KindRBrace    // }
	KindComma     // ,
	KindSemicolon // ;
)

var kindName = [...]string{
	KindEOF:       "end of input",
	KindIdent:     "identifier",
	KindInt:       "integer",
	KindFloat:     "float",
	KindString:    "string",
	KindLet:       "let",
	KindIf:        "if",
	KindElse:      "else",
	KindWhile:     "while",
	KindFunction:  "function",
	KindPrint:     "print",
	KindTrue:      "true",
	KindFalse:     "false",
	KindNil:       "nil",
	KindPlus:      "+",
	KindMinus:     "-",
	KindStar:      "*",
	KindSlash:     "/",
	KindPercent:   "%",
	KindCaret:     "^",
	KindAssign:    "=",
	KindEq:        "==",
	KindNe:        "!=",
	KindLt:        "<",
	KindLe:        "<=",
	KindGt:        ">",
	KindGe:        ">=",
	KindAnd:       "&&",
	KindOr:        "||",
	KindNot:       "!",
	KindLParen:    "(",
	KindRParen:    ")",
	KindLBrace:    "{",
	KindRBrace:    "}",
	KindComma:     ",",
	KindSemicolon: ";",
}

// String returns the canonical spelling of an operator, keyword or delimiter,
// or a description of a literal class.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindName) {
		return kindName[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// keywords maps reserved words to their token kind. Several spellings share
// a kind: "fn" is "function", and the word operators alias their symbols.
var keywords = map[string]Kind{
	"let":      KindLet,
	"if":       KindIf,
	"else":     KindElse,
	"while":    KindWhile,
	"function": KindFunction,
	"fn":       KindFunction,
	"print":    KindPrint,
	"true":     KindTrue,
	"false":    KindFalse,
	"nil":      KindNil,
	"and":      KindAnd,
	"or":       KindOr,
	"not":      KindNot,
}

// Keywords returns every reserved word, for completion and highlighting.
func Keywords() []string {
	return sortedKeys(keywords)
}

// Token is a single lexeme with its source position.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String describes the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case KindEOF:
		return t.Kind.String()
	case KindIdent, KindInt, KindFloat:
		return t.Kind.String() + " " + strconv.Quote(t.Text)
	case KindString:
		return "string literal"
	default:
		return strconv.Quote(t.Text)
	}
}

// Position locates a byte offset within source text. Line and Column are
// 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether p refers to a real source location.
func (p Position) IsValid() bool { return p.Line > 0 }

// String formats p as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}
