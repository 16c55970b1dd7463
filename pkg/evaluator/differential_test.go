package evaluator_test

import (
	"math"
	"testing"

	"github.com/expr-lang/expr"

	"github.com/acarlucci/gocalc/pkg/evaluator"
)

// TestDifferentialExprLang cross-checks arithmetic results against the
// expr-lang compiler. The corpus sticks to constructs both engines define
// the same way: +, -, *, /, ** and grouping over numeric literals. It
// avoids a negated base of ** (bound differently there), %, and divisions
// with a fractional integer quotient (integer semantics there).
func TestDifferentialExprLang(t *testing.T) {
	corpus := []string{
		"1+2*3",
		"(5+3)*2-4",
		"7.5/2.5",
		"1000/8",
		"2*(3+4)-(5-6)",
		"0.1+0.2",
		"-5+3",
		"2*-3",
		"10-4-3",
		"100/5/2",
		"2**10",
		"(2+3)**2",
		"2**0.5",
		"0.5**-2",
		"1e3/4",
		"((1+2))*((3+4))",
	}

	for _, src := range corpus {
		t.Run(src, func(t *testing.T) {
			got, err := evaluator.New().Evaluate(src)
			if err != nil {
				t.Fatalf("Evaluate(%q) returned error: %v", src, err)
			}

			prog, err := expr.Compile(src)
			if err != nil {
				t.Fatalf("expr.Compile(%q) returned error: %v", src, err)
			}
			out, err := expr.Run(prog, nil)
			if err != nil {
				t.Fatalf("expr.Run(%q) returned error: %v", src, err)
			}
			want := toFloat(t, out)

			if math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
				t.Errorf("Evaluate(%q) = %v, expr-lang says %v", src, got, want)
			}
		})
	}
}

func toFloat(t *testing.T, v any) float64 {
	t.Helper()

	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		t.Fatalf("expr-lang returned %T (%v), want a number", v, v)
		return 0
	}
}
