package repl

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ardnew/helix/lang"
)

func TestSession_Submit(t *testing.T) {
	s := NewSession()

	steps := []struct {
		line   string
		value  lang.Value
		output string
	}{
		{"let x = 40", lang.Nil{}, ""},
		{"x + 2", lang.Integer(42), ""},
		{`print "hi"`, lang.Nil{}, "hi\n"},
		{"x = x / 8", lang.Nil{}, ""},
		{"x * 1.5", lang.Float(7.5), ""},
	}

	for _, step := range steps {
		res, complete := s.Submit(t.Context(), step.line)
		if !complete {
			t.Fatalf("%q: incomplete", step.line)
		}

		if res.Err != nil {
			t.Fatalf("%q: %v", step.line, res.Err)
		}

		if res.Value != step.value || res.Output != step.output {
			t.Errorf("%q: value %v output %q, want %v %q",
				step.line, res.Value, res.Output, step.value, step.output)
		}
	}
}

func TestSession_MultiLine(t *testing.T) {
	s := NewSession()

	for _, line := range []string{"function add(a, b) {", "  a + b"} {
		if _, complete := s.Submit(t.Context(), line); complete {
			t.Fatalf("%q: complete too early", line)
		}

		if !s.Pending() {
			t.Fatalf("%q: not pending", line)
		}
	}

	res, complete := s.Submit(t.Context(), "}")
	if !complete || res.Err != nil {
		t.Fatalf("complete=%v err=%v", complete, res.Err)
	}

	if s.Pending() {
		t.Error("still pending after the block closed")
	}

	res, _ = s.Submit(t.Context(), "add(1, 2)")
	if res.Value != lang.Integer(3) {
		t.Errorf("add(1, 2) = %v", res.Value)
	}

	want := "function add(a, b) {\n  a + b\n}\nadd(1, 2)\n"
	if s.Transcript() != want {
		t.Errorf("transcript:\n%q\nwant:\n%q", s.Transcript(), want)
	}
}

func TestSession_Discard(t *testing.T) {
	s := NewSession()

	s.Submit(t.Context(), "if true {")
	s.Discard()

	res, complete := s.Submit(t.Context(), "1 + 1")
	if !complete || res.Value != lang.Integer(2) {
		t.Errorf("after discard: complete=%v value=%v err=%v", complete, res.Value, res.Err)
	}
}

func TestSession_Errors(t *testing.T) {
	s := NewSession()

	res, _ := s.Submit(t.Context(), "print nope")
	if !errors.Is(res.Err, lang.ErrUndefinedVariable) {
		t.Fatalf("error = %v", res.Err)
	}

	if pos, ok := lang.ErrorPosition(res.Err); !ok || pos.Line != 1 || pos.Column != 7 {
		t.Errorf("position = %v, %v", pos, ok)
	}

	// Bindings made before a runtime error are kept.
	res, _ = s.Submit(t.Context(), "let a = 1; let b = a / 0")
	if !errors.Is(res.Err, lang.ErrDivisionByZero) {
		t.Fatalf("error = %v", res.Err)
	}

	if _, ok := s.Env().Lookup("a"); !ok {
		t.Error("a was discarded")
	}

	if _, ok := s.Env().Lookup("b"); ok {
		t.Error("b was bound")
	}

	res, _ = s.Submit(t.Context(), "let = 1")
	if !errors.Is(res.Err, lang.ErrParse) {
		t.Errorf("error = %v, want parse error", res.Err)
	}

	if s.Transcript() != "" {
		t.Errorf("failed submissions recorded: %q", s.Transcript())
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession()

	s.Submit(t.Context(), "let x = 1")
	s.Submit(t.Context(), "{")
	s.Reset()

	if s.Pending() || s.Transcript() != "" || s.Env().Len() != 0 {
		t.Error("reset left state behind")
	}
}

func TestSession_Replace(t *testing.T) {
	s := NewSession()
	s.Submit(t.Context(), "let old = 1")

	res := s.Replace(t.Context(), "let x = 2\nprint x\n")
	if res.Err != nil || res.Output != "2\n" {
		t.Fatalf("Replace = %+v", res)
	}

	if _, ok := s.Env().Lookup("old"); ok {
		t.Error("old binding survived replace")
	}

	if s.Transcript() != "let x = 2\nprint x\n" {
		t.Errorf("transcript = %q", s.Transcript())
	}

	res = s.Replace(t.Context(), "let y = 1\ny + true")
	if !errors.Is(res.Err, lang.ErrTypeMismatch) {
		t.Fatalf("error = %v", res.Err)
	}

	if _, ok := s.Env().Lookup("x"); !ok {
		t.Error("failed replace changed the session")
	}
}

func TestSession_Bindings(t *testing.T) {
	s := NewSession()

	s.Submit(t.Context(), "function add(a, b) { a + b }")
	s.Submit(t.Context(), `let long = "`+strings.Repeat("x", 60)+`"`)
	s.Submit(t.Context(), "let n = 3")
	s.Submit(t.Context(), `let wide = "a`+strings.Repeat("é", 30)+`"`)

	got := s.Bindings()

	names := make([]string, len(got))
	for i, b := range got {
		names[i] = b.Name
	}

	if !slices.Equal(names, []string{"add", "long", "n", "wide"}) {
		t.Fatalf("names = %v", names)
	}

	if got[0].Preview != "fn add(a, b)" {
		t.Errorf("function preview = %q", got[0].Preview)
	}

	if len(got[1].Preview) != previewWidth || !strings.HasSuffix(got[1].Preview, "...") {
		t.Errorf("long preview = %q", got[1].Preview)
	}

	if got[2].Preview != "3" {
		t.Errorf("integer preview = %q", got[2].Preview)
	}

	// Each "é" is two bytes, so the byte limit falls inside one.
	wide := got[3].Preview
	if !utf8.ValidString(wide) || !strings.HasSuffix(wide, "...") ||
		len(wide) > previewWidth {
		t.Errorf("wide preview = %q", wide)
	}

	if want := `"a` + strings.Repeat("é", 17) + "..."; wide != want {
		t.Errorf("wide preview = %q, want %q", wide, want)
	}
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"", true},
		{"f(1, 2)", true},
		{"f(", false},
		{"if x {", false},
		{"if x {\n}", true},
		{`{ "}"`, false},
		{`x = "(("`, true},
		{`x = '{'`, true},
		{`x = "\"("`, true},
		{"x # {", true},
		{"x // (", true},
		{"x / (", false},
		{"}", true},
		{"f((1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := balanced(tt.src); got != tt.want {
				t.Errorf("balanced(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}
