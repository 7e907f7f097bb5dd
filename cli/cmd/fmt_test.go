package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const fmtInput = "let x=1+2*3\nif x>1{print x}else{print-x}\n"

func fmtStreams(stdin string) (streams, *bytes.Buffer, *bytes.Buffer) {
	var out, errs bytes.Buffer

	return streams{in: strings.NewReader(stdin), out: &out, err: &errs}, &out, &errs
}

func TestFmt_Native(t *testing.T) {
	tests := []struct {
		name   string
		indent int
		want   string
	}{
		{
			name:   "indented",
			indent: 2,
			want:   "let x = 1 + 2 * 3\nif x > 1 {\n  print x\n} else {\n  print -x\n}\n",
		},
		{
			name:   "compact",
			indent: 0,
			want:   "let x = 1 + 2 * 3; if x > 1 { print x } else { print -x }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			std, out, _ := fmtStreams(fmtInput)

			f := &Native{Indent: tt.indent, input: input{Source: "-", std: std}}
			if err := f.Run(t.Context()); err != nil {
				t.Fatalf("Run: %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("output:\n%q\nwant:\n%q", out.String(), tt.want)
			}
		})
	}
}

func TestFmt_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "x.hx", "print   1")
	std, out, _ := fmtStreams("")

	f := &Native{Indent: 2, input: input{Source: path, std: std}}
	if err := f.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.String() != "print 1\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestFmt_JSON(t *testing.T) {
	std, out, _ := fmtStreams(fmtInput)

	j := &JSON{Indent: 2, input: input{Source: "-", std: std}}
	if err := j.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var tree map[string]any
	if err := json.Unmarshal(out.Bytes(), &tree); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}

	stmts, ok := tree["statements"].([]any)
	if tree["node"] != "Program" || !ok || len(stmts) != 2 {
		t.Errorf("tree = %v", tree)
	}
}

func TestFmt_YAML(t *testing.T) {
	std, out, _ := fmtStreams(fmtInput)

	y := &YAML{Indent: 2, input: input{Source: "-", std: std}}
	if err := y.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, want := range []string{"node: Program", "name: x", "node: If"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestFmt_AST(t *testing.T) {
	std, out, _ := fmtStreams("let x = 1 + 2")

	a := &AST{input: input{Source: "-", std: std}}
	if err := a.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "Program\n" +
		"  Let: x\n" +
		"    Binary: +\n" +
		"      Literal: integer: 1\n" +
		"      Literal: integer: 2\n"

	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestFmt_ParseError(t *testing.T) {
	runs := map[string]func(context.Context, streams) error{
		"native": func(ctx context.Context, s streams) error {
			return (&Native{Indent: 2, input: input{Source: "-", std: s}}).Run(ctx)
		},
		"json": func(ctx context.Context, s streams) error {
			return (&JSON{input: input{Source: "-", std: s}}).Run(ctx)
		},
		"yaml": func(ctx context.Context, s streams) error {
			return (&YAML{Indent: 2, input: input{Source: "-", std: s}}).Run(ctx)
		},
		"ast": func(ctx context.Context, s streams) error {
			return (&AST{input: input{Source: "-", std: s}}).Run(ctx)
		},
	}

	for name, run := range runs {
		t.Run(name, func(t *testing.T) {
			std, out, errs := fmtStreams("let x = (1 +")

			if err := run(t.Context(), std); !errors.Is(err, ErrScriptFailed) {
				t.Fatalf("error = %v, want ErrScriptFailed", err)
			}

			if out.Len() != 0 {
				t.Errorf("output on failure: %q", out.String())
			}

			if !strings.HasPrefix(errs.String(), "<stdin>:1:") {
				t.Errorf("report = %q", errs.String())
			}
		})
	}
}
