package types

import (
	"fmt"
	"strconv"
)

// NodeType identifies the type of an AST node.
type NodeType string

// The grammar produces exactly three node types. There is deliberately no
// identifier, call, or attribute variant: the tree cannot represent a name
// lookup or an invocation, whatever the input contained.
const (
	NodeNumber NodeType = "number"
	NodeBinary NodeType = "binary"
	NodeUnary  NodeType = "unary"
)

// OpKind identifies the operator of a binary or unary node.
type OpKind uint8

const (
	OpAdd OpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpNeg // unary minus
)

var opNames = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpPow: "**",
	OpNeg: "-",
}

// String returns the operator's source form.
func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "?"
}

// ASTNode represents a node in the Abstract Syntax Tree. Each node
// exclusively owns its children; trees are never shared or cyclic, and
// evaluation never mutates them.
type ASTNode struct {
	Type     NodeType
	Op       OpKind
	NumValue float64 // set for NodeNumber
	Position int

	LHS *ASTNode // left operand of binary ops
	RHS *ASTNode // right operand of binary ops, sole operand of unary ops
}

// NewASTNode creates a new AST node of the specified type.
func NewASTNode(nodeType NodeType, position int) *ASTNode {
	return &ASTNode{
		Type:     nodeType,
		Position: position,
	}
}

// String renders the subtree in fully parenthesized infix form, which makes
// associativity visible: 2**3**2 renders as (2 ** (3 ** 2)).
func (n *ASTNode) String() string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case NodeNumber:
		return strconv.FormatFloat(n.NumValue, 'g', -1, 64)
	case NodeUnary:
		return fmt.Sprintf("(-%s)", n.RHS)
	case NodeBinary:
		return fmt.Sprintf("(%s %s %s)", n.LHS, n.Op, n.RHS)
	}
	return string(n.Type)
}
