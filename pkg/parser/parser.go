// Package parser implements the tokenizer and parser of the restricted
// arithmetic grammar.
//
// The parser uses a hand-written recursive descent approach with Pratt
// operator precedence. The grammar it accepts is, from lowest to highest
// precedence:
//
//	expr   := term (('+'|'-') term)*
//	term   := factor (('*'|'/'|'%') factor)*
//	factor := unary ('**' factor)?
//	unary  := '-' unary | atom
//	atom   := NUMBER | '(' expr ')'
//
// There is no identifier, call, or subscript production. That absence is
// the package's safety property: the parser cannot build a tree that
// names anything or invokes anything, whatever the input contains, so
// downstream evaluation can never reach a code path that executes
// attacker-supplied text.
//
// # Example
//
//	expr, err := parser.Parse("(5+3)*2-4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ast := expr.AST()
package parser

import (
	"github.com/acarlucci/gocalc/pkg/types"
)

// DefaultMaxDepth is the default bound on expression nesting.
const DefaultMaxDepth = 64

// Parse parses an arithmetic expression and returns the compiled Expression.
//
// The function tokenizes the input, builds an AST, and validates the syntax.
// If parsing fails, it returns a *types.Error with position information.
//
// Example:
//
//	expr, err := parser.Parse("2*x**2")
//	if err != nil {
//	    // err is a *types.Error carrying the offending position
//	    return
//	}
func Parse(source string) (*types.Expression, error) {
	p := NewParser(source)
	return p.Parse()
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(source string, opts ...CompileOption) (*types.Expression, error) {
	p := NewParser(source, opts...)
	return p.Parse()
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits recursion depth to prevent stack overflow.
	MaxDepth int
}

// WithMaxDepth sets the maximum parsing depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
