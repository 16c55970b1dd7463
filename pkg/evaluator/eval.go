package evaluator

import (
	"fmt"
	"math"

	"github.com/acarlucci/gocalc/pkg/types"
)

// evalNode reduces one AST node to a number. Recursion depth is bounded
// by the parser's MaxDepth, so the walk carries no depth counter of its
// own.
func (e *Evaluator) evalNode(node *types.ASTNode) (float64, error) {
	switch node.Type {
	case types.NodeNumber:
		return node.NumValue, nil
	case types.NodeUnary:
		return e.evalUnary(node)
	case types.NodeBinary:
		return e.evalBinary(node)
	}
	return 0, types.NewError(types.ErrUnsupportedConstruct,
		fmt.Sprintf("unknown node type: %s", node.Type), node.Position)
}

func (e *Evaluator) evalUnary(node *types.ASTNode) (float64, error) {
	operand, err := e.evalNode(node.RHS)
	if err != nil {
		return 0, err
	}
	if node.Op != types.OpNeg {
		return 0, types.NewError(types.ErrUnsupportedConstruct,
			fmt.Sprintf("unsupported unary operator: %s", node.Op), node.Position)
	}
	return -operand, nil
}

func (e *Evaluator) evalBinary(node *types.ASTNode) (float64, error) {
	lhs, err := e.evalNode(node.LHS)
	if err != nil {
		return 0, err
	}
	rhs, err := e.evalNode(node.RHS)
	if err != nil {
		return 0, err
	}

	var result float64
	switch node.Op {
	case types.OpAdd:
		result = lhs + rhs
	case types.OpSub:
		result = lhs - rhs
	case types.OpMul:
		result = lhs * rhs
	case types.OpDiv:
		if rhs == 0 {
			return 0, types.NewError(types.ErrDivisionByZero,
				"division by zero", node.Position)
		}
		result = lhs / rhs
	case types.OpMod:
		if rhs == 0 {
			return 0, types.NewError(types.ErrDivisionByZero,
				"modulo by zero", node.Position)
		}
		result = math.Mod(lhs, rhs)
	case types.OpPow:
		result, err = evalPow(lhs, rhs, node.Position)
		if err != nil {
			return 0, err
		}
	default:
		return 0, types.NewError(types.ErrUnsupportedConstruct,
			fmt.Sprintf("unsupported operator: %s", node.Op), node.Position)
	}
	return checkArithmeticResult(result, node.Position)
}

// evalPow applies the real-domain restrictions before math.Pow can paper
// over them with IEEE special cases: 0 raised to a negative power is a
// division by zero, and a negative base with a fractional exponent has
// no real result.
func evalPow(base, exp float64, pos int) (float64, error) {
	if base == 0 && exp < 0 {
		return 0, types.NewError(types.ErrDivisionByZero,
			"zero cannot be raised to a negative power", pos)
	}
	if base < 0 && exp != math.Trunc(exp) {
		return 0, types.NewError(types.ErrDomain,
			fmt.Sprintf("fractional power of a negative base: %v ** %v", base, exp), pos)
	}
	return math.Pow(base, exp), nil
}

// checkArithmeticResult validates that an arithmetic result is a finite
// number. Operands are always finite here, so a non-finite result means
// the operation left the float64 range.
func checkArithmeticResult(result float64, pos int) (float64, error) {
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, types.NewError(types.ErrOverflow, "number out of range", pos)
	}
	return result, nil
}
