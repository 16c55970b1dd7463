// Package gocalc evaluates informal mathematical text, safely.
//
// It has two halves. The normalizer rewrites the notation people
// actually type ("2x^2 + 3x", "(x+1)(x-1)", "sin x") into canonical
// expression syntax with explicit operators. The evaluator then parses
// and reduces canonical arithmetic using a grammar that cannot express
// identifiers, calls, subscripts, or attribute access, so arbitrary
// untrusted input either reduces to a float64 or fails with a typed
// error. There is no denylist to bypass: the dangerous constructs are
// unrepresentable.
//
// # Quick Start
//
//	// Normalize informal input
//	s := gocalc.Normalize("2x^2 + 3x + 4")  // "2*x**2 + 3*x + 4"
//
//	// Evaluate canonical arithmetic
//	result, err := gocalc.Eval("(5+3)*2-4")  // 12, nil
//
//	// Compile once, evaluate many times
//	expr, err := gocalc.Compile("2**3**2")
//	result, _ = evaluator.New().Eval(expr)   // 512
//
// Failures carry stable codes: use [types.IsSyntaxError],
// [types.IsDivisionByZero] and friends, or switch on [types.CodeOf].
//
// # More Information
//
// For detailed documentation, see:
//   - Normalizer: github.com/acarlucci/gocalc/pkg/normalizer
//   - Parser: github.com/acarlucci/gocalc/pkg/parser
//   - Evaluator: github.com/acarlucci/gocalc/pkg/evaluator
//   - Functions: github.com/acarlucci/gocalc/pkg/functions
//   - Types: github.com/acarlucci/gocalc/pkg/types
package gocalc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/acarlucci/gocalc/pkg/evaluator"
	"github.com/acarlucci/gocalc/pkg/normalizer"
	"github.com/acarlucci/gocalc/pkg/parser"
	"github.com/acarlucci/gocalc/pkg/types"
)

// Version returns the current version of gocalc.
func Version() string {
	return "v0.1.0-dev"
}

// Normalize rewrites informal mathematical text into canonical
// expression syntax: "^" becomes "**", implicit multiplication becomes
// explicit, and bare function applications gain parentheses. It never
// fails; text it cannot improve passes through unchanged.
func Normalize(input string) string {
	return normalizer.Normalize(input)
}

// Compile parses a canonical expression for repeated evaluation.
//
// The compiled expression is immutable and safe for concurrent use.
// Compile does not normalize: informal input goes through [Normalize]
// first.
func Compile(source string, opts ...parser.CompileOption) (*types.Expression, error) {
	return parser.Compile(source, opts...)
}

// defaultEvaluator serves option-less Eval calls so they share one
// expression cache.
var defaultEvaluator = evaluator.New()

// Eval compiles and evaluates a canonical expression in a single call.
//
// Example:
//
//	result, err := gocalc.Eval("(5+3)*2-4")  // 12, nil
func Eval(source string, opts ...evaluator.EvalOption) (float64, error) {
	if len(opts) == 0 {
		return defaultEvaluator.Evaluate(source)
	}
	return evaluator.New(opts...).Evaluate(source)
}

// MustCompile is like Compile but panics if the expression cannot be
// compiled. It simplifies safe initialization of global variables.
func MustCompile(source string) *types.Expression {
	expr, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("gocalc: Compile(%q): %v", source, err))
	}
	return expr
}

// FormatNumber renders a result the way a calculator display would:
// integral values drop the decimal point ("8" rather than "8.000000"),
// everything else uses the shortest representation that round-trips.
func FormatNumber(x float64) string {
	if x == 0 {
		return "0"
	}
	if x == math.Trunc(x) && math.Abs(x) < 1e15 {
		return strconv.FormatFloat(x, 'f', 0, 64)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}
