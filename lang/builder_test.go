package lang

import (
	"math"
	"bytes"
	"strings"
	"testing"
)

func TestBuilder_Program(t *testing.T) {
	b := NewBuilder()

	prog := b.Program(
		b.Let("port", b.Int(8080)),
		b.Let("host", b.String("localhost")),
		b.Function("addr", nil, b.Block(
			b.Expr(b.Binary(KindPlus,
				b.Binary(KindPlus, b.Ident("host"), b.String(":")),
				b.Ident("port_text"))),
		)),
		b.Let("port_text", b.String("8080")),
		b.Print(b.Call("addr")),
		b.If(b.Binary(KindAnd, b.Bool(true), b.Unary(KindNot, b.Nil())),
			b.Block(b.Assign("port", b.Float(1.5))), nil),
		b.While(b.Bool(false), b.Block()),
	)

	var sb strings.Builder
	if err := prog.Format(t.Context(), &sb, 2); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	want := `let port = 8080
let host = "localhost"
function addr() {
  host + ":" + port_text
}
let port_text = "8080"
print addr()
if true && !nil {
  port = 1.5
}
while false {}
`

	if sb.String() != want {
		t.Fatalf("Format:\n%s\nwant:\n%s", sb.String(), want)
	}

	var out bytes.Buffer

	env := NewEnvironment()
	if _, err := NewEvaluator(WithOutput(&out)).Exec(t.Context(), prog, env); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	if out.String() != "localhost:8080\n" {
		t.Errorf("output = %q", out.String())
	}

	if v, _ := env.Lookup("port"); v != Float(1.5) {
		t.Errorf("port = %v, want 1.5", v)
	}
}

func TestBuilder_Native(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		in   any
		want Value
	}{
		{in: nil, want: Nil{}},
		{in: true, want: Boolean(true)},
		{in: 3, want: Integer(3)},
		{in: int64(-4), want: Integer(-4)},
		{in: 2.5, want: Float(2.5)},
		{in: "s", want: String("s")},
		{in: uint64(7), want: Integer(7)},
		{in: uint64(math.MaxUint64), want: Float(math.MaxUint64)},
	}

	for _, tt := range tests {
		lit := b.Native(tt.in)
		if lit == nil || lit.Value != tt.want {
			t.Errorf("Native(%#v) = %#v, want %#v", tt.in, lit, tt.want)
		}

		if got := b.Native(ToNative(tt.want)); got.Value != tt.want {
			t.Errorf("Native(ToNative(%v)) = %v", tt.want, got.Value)
		}
	}

	if b.Native([]int{1}) != nil {
		t.Error("Native accepted an unsupported type")
	}
}
