// Package functions defines the fixed table of recognized function names
// and their numeric implementations.
//
// The table is part of the safety contract. The normalizer consults it to
// tell function application apart from implicit multiplication ("sin x"
// wraps, "ab c" does not), and [Apply] refuses any name outside it. There
// is no registration mechanism; the set of names never changes at runtime.
package functions

import "sort"

// applyFunc evaluates one function at x under the given angle mode.
type applyFunc func(x float64, mode AngleMode) (float64, error)

// table maps every recognized function name to its implementation.
// Matching is exact and case-sensitive: "Sin" and "SIN" are ordinary
// identifiers, not functions.
var table = map[string]applyFunc{
	"sin": fnSin,
	"cos": fnCos,
	"tan": fnTan,
	"sec": fnSec,
	"csc": fnCsc,
	"cot": fnCot,

	"asin": fnAsin,
	"acos": fnAcos,
	"atan": fnAtan,

	"sinh":  fnSinh,
	"cosh":  fnCosh,
	"tanh":  fnTanh,
	"asinh": fnAsinh,
	"acosh": fnAcosh,
	"atanh": fnAtanh,

	"log":  fnLog,
	"ln":   fnLn,
	"exp":  fnExp,
	"sqrt": fnSqrt,

	"abs":   fnAbs,
	"ceil":  fnCeil,
	"floor": fnFloor,
}

// IsKnown reports whether name is a recognized function name.
func IsKnown(name string) bool {
	_, ok := table[name]
	return ok
}

// Names returns every recognized function name in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
