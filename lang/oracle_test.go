package lang

import (
	"math"
	"testing"

	"github.com/expr-lang/expr"
)

// oracleValue normalizes a result from either evaluator for comparison.
func oracleValue(v any) any {
	switch v := v.(type) {
	case Integer:
		return float64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case Boolean:
		return bool(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}

	return v
}

// TestEval_AgreesWithExpr checks arithmetic, comparison and logical results
// against the expr-lang evaluator on the subset of syntax both languages
// read the same way.
func TestEval_AgreesWithExpr(t *testing.T) {
	sources := []string{
		"1 + 2 * 3",
		"2 - 3 - 1",
		"2 ^ 3 ^ 2",
		"(1 + 2) * (3 + 4) - 5",
		"10 % 3 + 4 * 2",
		"2 ^ 10 - 1",
		"1.5 * 4 + 0.25",
		"7.0 / 2",
		"2 ^ 0.5",
		"1 + 2 < 4",
		"2 * 3 >= 6",
		"1 == 1.0",
		"3 != 4",
		`"ab" + "cd"`,
		`"abc" < "abd"`,
		`"b" >= "a"`,
		"true && false",
		"false || true",
		"!false && true",
		"not true or true",
		"100 - 7 * (3 + 2) ^ 2",
		"1 < 2 && 3 > 4",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			program, err := expr.Compile(src)
			if err != nil {
				t.Fatalf("expr.Compile(%q) failed: %v", src, err)
			}

			want, err := expr.Run(program, nil)
			if err != nil {
				t.Fatalf("expr.Run(%q) failed: %v", src, err)
			}

			got, _, err := run(t, src)
			if err != nil {
				t.Fatalf("Run(%q) failed: %v", src, err)
			}

			g, w := oracleValue(got), oracleValue(want)

			if gf, ok := g.(float64); ok {
				if wf, ok := w.(float64); ok && math.Abs(gf-wf) <= 1e-9*math.Max(1, math.Abs(wf)) {
					return
				}
			}

			if g != w {
				t.Errorf("%q: got %v (%T), expr-lang %v (%T)", src, g, g, w, w)
			}
		})
	}
}
