package evaluator_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/acarlucci/gocalc/pkg/cache"
	"github.com/acarlucci/gocalc/pkg/evaluator"
	"github.com/acarlucci/gocalc/pkg/types"
)

// eval evaluates source with a default evaluator and fails the test on error.
func eval(t *testing.T, source string) float64 {
	t.Helper()

	result, err := evaluator.New().Evaluate(source)
	if err != nil {
		t.Fatalf("Evaluate(%q) returned error: %v", source, err)
	}
	return result
}

// evalError evaluates source, expecting a *types.Error with the given code.
func evalError(t *testing.T, source string, code types.ErrorCode) *types.Error {
	t.Helper()

	_, err := evaluator.New().Evaluate(source)
	if err == nil {
		t.Fatalf("Evaluate(%q) succeeded, want %s error", source, code)
	}
	var eerr *types.Error
	if !errors.As(err, &eerr) {
		t.Fatalf("Evaluate(%q) returned %T, want *types.Error", source, err)
	}
	if eerr.Code != code {
		t.Fatalf("Evaluate(%q) error code = %s (%v), want %s", source, eerr.Code, err, code)
	}
	return eerr
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{"integer", "42", 42},
		{"addition", "2+3", 5},
		{"mixed precedence", "(5+3)*2-4", 12},
		{"multiplication first", "2+3*4", 14},
		{"grouping", "2*(3+4)", 14},
		{"division", "1/4", 0.25},
		{"float division", "7.5/2.5", 3},
		{"float artifacts survive", "0.1+0.2", 0.30000000000000004},
		{"scientific literal", "1e3", 1000},
		{"leading dot literal", ".5*4", 2},

		{"power", "2**10", 1024},
		{"power is right associative", "2**3**2", 512},
		{"fractional exponent", "4**0.5", 2},
		{"zero to the zero", "0**0", 1},
		{"negative base integer exponent", "(-2)**3", -8},
		{"negated base binds first", "-2**2", 4},
		{"negative exponent", "2**-3", 0.125},
		{"negated exponent chain", "2**-3**2", 512},

		{"modulo", "10 % 3", 1},
		{"modulo keeps dividend sign", "-10 % 3", -1},
		{"fractional modulo", "7.5 % 2", 1.5},

		{"double negation", "--2", 2},
		{"negated group", "-(2+3)", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eval(t, tt.source); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   types.ErrorCode
		pos    int
	}{
		{"division by zero", "5/0", types.ErrDivisionByZero, 1},
		{"division by computed zero", "1/(2-2)", types.ErrDivisionByZero, 1},
		{"modulo by zero", "5 % 0", types.ErrDivisionByZero, 2},
		{"zero to a negative power", "0**-1", types.ErrDivisionByZero, 1},
		{"fractional power of a negative base", "(-8)**0.5", types.ErrDomain, 4},
		{"overflow by multiplication", "1e308*10", types.ErrOverflow, 5},
		{"overflow by addition", "1e308+1e308", types.ErrOverflow, 5},
		{"overflow by power", "10**1000", types.ErrOverflow, 2},
		{"overflowing literal", "1e999", types.ErrOverflow, 0},
		{"dangling operator", "2 +", types.ErrSyntax, 3},
		{"identifier", "x+1", types.ErrSyntax, 0},
		{"caret", "2^8", types.ErrUnsupportedConstruct, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eerr := evalError(t, tt.source, tt.code)
			if eerr.Position != tt.pos {
				t.Errorf("Evaluate(%q) error position = %d, want %d", tt.source, eerr.Position, tt.pos)
			}
		})
	}
}

func TestEvalErrorPredicates(t *testing.T) {
	_, err := evaluator.New().Evaluate("5/0")
	if !types.IsDivisionByZero(err) {
		t.Errorf("IsDivisionByZero(%v) = false, want true", err)
	}
	if types.IsOverflow(err) {
		t.Errorf("IsOverflow(%v) = true, want false", err)
	}
	if got := types.CodeOf(err); got != types.ErrDivisionByZero {
		t.Errorf("CodeOf(%v) = %s, want %s", err, got, types.ErrDivisionByZero)
	}
}

func TestEvalNilExpression(t *testing.T) {
	_, err := evaluator.New().Eval(nil)
	if !types.IsSyntaxError(err) {
		t.Fatalf("Eval(nil) error = %v, want syntax error", err)
	}
	if got := err.Error(); got != "S0001: invalid expression" {
		t.Errorf("Eval(nil) error string = %q, want %q", got, "S0001: invalid expression")
	}
}

// TestEvalCompiledReuse checks that one compilation serves many
// evaluations and that evaluation does not mutate the tree.
func TestEvalCompiledReuse(t *testing.T) {
	e := evaluator.New()
	expr, err := e.Compile("(5+3)*2-4")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	before := expr.AST().String()
	for i := 0; i < 3; i++ {
		got, err := e.Eval(expr)
		if err != nil {
			t.Fatalf("Eval %d returned error: %v", i, err)
		}
		if got != 12 {
			t.Errorf("Eval %d = %v, want 12", i, got)
		}
	}
	if after := expr.AST().String(); after != before {
		t.Errorf("tree changed across evaluations: %s -> %s", before, after)
	}
}

func TestEvaluatorCaching(t *testing.T) {
	e := evaluator.New(evaluator.WithCacheSize(8))
	c := e.Cache()
	if c == nil {
		t.Fatal("Cache() = nil with caching enabled")
	}
	if c.Capacity() != 8 {
		t.Fatalf("Capacity() = %d, want 8", c.Capacity())
	}

	for i := 0; i < 3; i++ {
		if _, err := e.Evaluate("1+1"); err != nil {
			t.Fatalf("Evaluate returned error: %v", err)
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len() after repeated source = %d, want 1", c.Len())
	}

	if _, err := e.Evaluate("2+2"); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() after second source = %d, want 2", c.Len())
	}

	// Failed compiles are never cached.
	for i := 0; i < 2; i++ {
		if _, err := e.Evaluate("2 +"); err == nil {
			t.Fatal("Evaluate(\"2 +\") succeeded, want error")
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len() after failed compiles = %d, want 2", c.Len())
	}

	e.ClearCache()
	if c.Len() != 0 {
		t.Errorf("Len() after ClearCache = %d, want 0", c.Len())
	}
}

func TestEvaluatorCachingDisabled(t *testing.T) {
	e := evaluator.New(evaluator.WithCaching(false))
	if e.Cache() != nil {
		t.Fatal("Cache() != nil with caching disabled")
	}
	e.ClearCache() // no-op, must not panic

	got, err := e.Evaluate("2*3")
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if got != 6 {
		t.Errorf("Evaluate(\"2*3\") = %v, want 6", got)
	}
}

func TestEvaluatorSharedCache(t *testing.T) {
	shared := cache.New(4)
	e1 := evaluator.New(evaluator.WithCache(shared))
	e2 := evaluator.New(evaluator.WithCache(shared))

	if _, err := e1.Evaluate("3*3"); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if shared.Len() != 1 {
		t.Fatalf("shared cache Len() = %d, want 1", shared.Len())
	}

	// The second evaluator sees the first one's compilation.
	expr, ok := e2.Cache().Get("3*3")
	if !ok {
		t.Fatal("shared cache miss for \"3*3\"")
	}
	if expr.Source() != "3*3" {
		t.Errorf("cached Source() = %q, want %q", expr.Source(), "3*3")
	}
}

func TestEvaluatorMaxDepth(t *testing.T) {
	e := evaluator.New(evaluator.WithMaxDepth(4))

	if _, err := e.Evaluate("(((1)))"); err != nil {
		t.Fatalf("Evaluate at the depth limit returned error: %v", err)
	}
	if _, err := e.Evaluate("((((1))))"); !types.IsSyntaxError(err) {
		t.Fatalf("Evaluate beyond the depth limit error = %v, want syntax error", err)
	}
}

func TestEvaluatorDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := evaluator.New(evaluator.WithDebug(true), evaluator.WithLogger(logger))
	if _, err := e.Evaluate("2+3"); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "compiling expression") {
		t.Errorf("debug output missing compile line: %q", out)
	}
	if !strings.Contains(out, "evaluated expression") {
		t.Errorf("debug output missing evaluation line: %q", out)
	}

	// Debug off keeps the logger quiet.
	buf.Reset()
	quiet := evaluator.New(evaluator.WithLogger(logger))
	if _, err := quiet.Evaluate("2+3"); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output without debug: %q", buf.String())
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	// Capacity below the corpus size keeps eviction in play.
	e := evaluator.New(evaluator.WithCacheSize(4))

	sources := []string{"1+1", "2*3", "2**3", "10/4", "7%4"}
	want := []float64{2, 6, 8, 2.5, 3}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				k := (g + i) % len(sources)
				got, err := e.Evaluate(sources[k])
				if err != nil {
					t.Errorf("Evaluate(%q) returned error: %v", sources[k], err)
					return
				}
				if got != want[k] {
					t.Errorf("Evaluate(%q) = %v, want %v", sources[k], got, want[k])
					return
				}
			}
		}(g)
	}
	wg.Wait()
}
