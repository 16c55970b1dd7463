// Package types defines the core type system for gocalc.
//
// This package contains type definitions for:
//   - Expression: compiled arithmetic expressions
//   - ASTNode: Abstract Syntax Tree nodes of the restricted grammar
//   - Error types: structured errors with codes
package types

// Expression represents a compiled arithmetic expression.
//
// An Expression can be evaluated any number of times. Evaluation never
// mutates the tree, so an Expression is safe for concurrent use by
// multiple goroutines.
type Expression struct {
	ast    *ASTNode
	source string
}

// NewExpression creates a new Expression from an AST.
func NewExpression(ast *ASTNode, source string) *Expression {
	return &Expression{
		ast:    ast,
		source: source,
	}
}

// AST returns the Abstract Syntax Tree of the expression.
func (e *Expression) AST() *ASTNode {
	return e.ast
}

// Source returns the original source text of the expression.
func (e *Expression) Source() string {
	return e.source
}

// String returns a string representation of the expression.
func (e *Expression) String() string {
	return e.source
}
