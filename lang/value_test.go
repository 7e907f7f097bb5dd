package lang

import (
	"math"
	"testing"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{value: Integer(42), want: "42"},
		{value: Integer(-7), want: "-7"},
		{value: Float(1), want: "1.0"},
		{value: Float(0.1), want: "0.1"},
		{value: Float(-2.5), want: "-2.5"},
		{value: Float(1e21), want: "1e+21"},
		{value: Float(math.Inf(1)), want: "inf"},
		{value: Float(math.NaN()), want: "nan"},
		{value: String("hi"), want: "hi"},
		{value: Boolean(true), want: "true"},
		{value: Nil{}, want: "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{value: Boolean(true), want: true},
		{value: Boolean(false), want: false},
		{value: Integer(0), want: false},
		{value: Integer(-1), want: true},
		{value: Float(0), want: false},
		{value: Float(0.001), want: true},
		{value: String(""), want: false},
		{value: String("0"), want: true},
		{value: Nil{}, want: false},
		{value: &Function{Name: "f"}, want: true},
	}

	for _, tt := range tests {
		if got := Truthy(tt.value); got != tt.want {
			t.Errorf("Truthy(%s %s) = %t, want %t",
				tt.value.Type(), Repr(tt.value), got, tt.want)
		}
	}
}

func TestRepr_RoundTrip(t *testing.T) {
	values := []Value{
		Integer(0),
		Integer(42),
		Integer(-42),
		Integer(math.MaxInt64),
		Integer(math.MinInt64),
		Float(0),
		Float(1),
		Float(-0.5),
		Float(3.141592653589793),
		Float(1e21),
		Float(1e-7),
		Float(-1.5e300),
		Float(math.SmallestNonzeroFloat64),
		String(""),
		String("hello"),
		String(`quote " and backslash \`),
		String("tab\tnewline\ncr\rnul\x00"),
		String("it's"),
		String("ünïcödé ✓"),
		Boolean(true),
		Boolean(false),
		Nil{},
	}

	for _, want := range values {
		src := Repr(want)

		t.Run(src, func(t *testing.T) {
			got, _, err := run(t, src)
			if err != nil {
				t.Fatalf("evaluating %q failed: %v", src, err)
			}

			if got != want {
				t.Errorf("round trip of %q = %s (%s), want %s (%s)",
					src, Repr(got), got.Type(), Repr(want), want.Type())
			}
		})
	}
}

func TestFunction_Signature(t *testing.T) {
	fn := &Function{Name: "add", Params: []string{"a", "b"}}

	if got := fn.Signature(); got != "add(a, b)" {
		t.Errorf("Signature() = %q", got)
	}

	if got := fn.String(); got != "<function add(a, b)>" {
		t.Errorf("String() = %q", got)
	}
}

func TestRepr_NonFinite(t *testing.T) {
	tests := []struct {
		value Value
		check func(float64) bool
	}{
		{Float(math.Inf(1)), func(f float64) bool { return math.IsInf(f, 1) }},
		{Float(math.Inf(-1)), func(f float64) bool { return math.IsInf(f, -1) }},
		{Float(math.NaN()), math.IsNaN},
	}

	for _, tt := range tests {
		src := Repr(tt.value)

		t.Run(tt.value.String(), func(t *testing.T) {
			got, _, err := run(t, src)
			if err != nil {
				t.Fatalf("evaluating %q failed: %v", src, err)
			}

			f, ok := got.(Float)
			if !ok || !tt.check(float64(f)) {
				t.Errorf("%q evaluated to %s (%s)", src, Repr(got), got.Type())
			}

			// The text also survives as an operand.
			if _, _, err := run(t, "-"+src+" * 2"); err != nil {
				t.Errorf("%q as an operand failed: %v", src, err)
			}
		})
	}
}
