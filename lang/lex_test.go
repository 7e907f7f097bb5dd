package lang

import (
	"errors"
	"slices"
	"testing"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}

	return out
}

func TestLex_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "empty",
			input: "",
			want:  []Kind{KindEOF},
		},
		{
			name:  "let_float_with_comment",
			input: "let x = 1.5 # trailing comment",
			want:  []Kind{KindLet, KindIdent, KindAssign, KindFloat, KindEOF},
		},
		{
			name:  "slash_comment",
			input: "print x >= 2 && !y // done",
			want: []Kind{
				KindPrint, KindIdent, KindGe, KindInt, KindAnd, KindNot,
				KindIdent, KindEOF,
			},
		},
		{
			name:  "word_operators",
			input: "a and b or not c",
			want: []Kind{
				KindIdent, KindAnd, KindIdent, KindOr, KindNot, KindIdent,
				KindEOF,
			},
		},
		{
			name:  "fn_alias",
			input: "fn f(a, b) {}",
			want: []Kind{
				KindFunction, KindIdent, KindLParen, KindIdent, KindComma,
				KindIdent, KindRParen, KindLBrace, KindRBrace, KindEOF,
			},
		},
		{
			name:  "comparisons",
			input: "== != < <= > >= =",
			want: []Kind{
				KindEq, KindNe, KindLt, KindLe, KindGt, KindGe, KindAssign,
				KindEOF,
			},
		},
		{
			name:  "arithmetic",
			input: "+-*/%^;",
			want: []Kind{
				KindPlus, KindMinus, KindStar, KindSlash, KindPercent,
				KindCaret, KindSemicolon, KindEOF,
			},
		},
		{
			name:  "exponent_float",
			input: "1e3 2.5E-2 1e",
			want:  []Kind{KindFloat, KindFloat, KindInt, KindIdent, KindEOF},
		},
		{
			name:  "trailing_dot",
			input: "1.",
			want:  nil,
		},
		{
			name:  "literals",
			input: `true false nil "s" 's'`,
			want: []Kind{
				KindTrue, KindFalse, KindNil, KindString, KindString, KindEOF,
			},
		},
		{
			name:  "unicode_identifier",
			input: "größe_2",
			want:  []Kind{KindIdent, KindEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex(tt.input)
			if tt.want == nil {
				if !errors.Is(err, ErrLex) {
					t.Fatalf("expected lex error, got %v (tokens %v)", err, kinds(toks))
				}

				return
			}

			if err != nil {
				t.Fatalf("Lex(%q) failed: %v", tt.input, err)
			}

			if got := kinds(toks); !slices.Equal(got, tt.want) {
				t.Errorf("Lex(%q) kinds = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLex_StringEscapes(t *testing.T) {
	toks, err := Lex(`"a\tb\n\"c\"\\" 'it\'s'`)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}

	if toks[0].Text != "a\tb\n\"c\"\\" {
		t.Errorf("first string = %q", toks[0].Text)
	}

	if toks[1].Text != "it's" {
		t.Errorf("second string = %q", toks[1].Text)
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{name: "unexpected_character", input: "let a = @", line: 1, col: 9},
		{name: "single_ampersand", input: "a & b", line: 1, col: 3},
		{name: "unterminated_string", input: "\n  \"abc", line: 2, col: 3},
		{name: "newline_in_string", input: "\"ab\ncd\"", line: 1, col: 1},
		{name: "unknown_escape", input: `"a\q"`, line: 1, col: 4},
		{name: "too_many_points", input: "1.2.3", line: 1, col: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			if !errors.Is(err, ErrLex) {
				t.Fatalf("expected ErrLex, got %v", err)
			}

			pos, ok := ErrorPosition(err)
			if !ok {
				t.Fatalf("error carries no position: %v", err)
			}

			if pos.Line != tt.line || pos.Column != tt.col {
				t.Errorf("position = %s, want %d:%d", pos, tt.line, tt.col)
			}
		})
	}
}

func TestLex_Positions(t *testing.T) {
	toks, err := Lex("a\n  bc\tδ")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}

	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 4, Line: 2, Column: 3},
		{Offset: 7, Line: 2, Column: 6},
	}

	for i, w := range want {
		if toks[i].Pos != w {
			t.Errorf("token %d (%s) at %+v, want %+v", i, toks[i], toks[i].Pos, w)
		}
	}
}

func TestKeywords(t *testing.T) {
	kw := Keywords()

	for _, want := range []string{"let", "if", "else", "while", "function", "print"} {
		if !slices.Contains(kw, want) {
			t.Errorf("Keywords() missing %q", want)
		}
	}

	if !slices.IsSorted(kw) {
		t.Errorf("Keywords() not sorted: %v", kw)
	}
}
