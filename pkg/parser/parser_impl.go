package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/acarlucci/gocalc/pkg/types"
)

// Parser implements a recursive descent parser for the restricted
// arithmetic grammar. It uses Pratt's "Top Down Operator Precedence"
// algorithm to handle operator precedence correctly.
//
// The grammar has no identifier, call, or subscript production. Name
// tokens are rejected here with a positioned syntax error, so no input
// can ever reach a name-resolution or invocation path.
type Parser struct {
	lexer   *Lexer
	current Token
	depth   int
	opts    CompileOptions
}

// NewParser creates a new parser for the given input string.
func NewParser(input string, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&options)
	}

	p := &Parser{
		lexer: NewLexer(input),
		opts:  options,
	}

	// Read the first token
	p.advance()

	return p
}

// Parse parses the entire expression and returns the compiled form.
func (p *Parser) Parse() (*types.Expression, error) {
	if p.current.Type == TokenError {
		return nil, p.lexer.Error()
	}

	if p.current.Type == TokenEOF {
		return nil, p.error(types.ErrSyntax, "Empty expression")
	}

	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if p.current.Type == TokenError {
		return nil, p.lexer.Error()
	}

	if p.current.Type != TokenEOF {
		return nil, p.error(types.ErrSyntax, fmt.Sprintf("Unexpected token: %s", p.current.Value))
	}

	return types.NewExpression(node, p.lexer.input), nil
}

// Operator precedence table (binding power)
// Higher values bind more tightly
var precedence = map[TokenType]int{
	TokenPlus:  50, // +
	TokenMinus: 50, // -
	TokenMult:  60, // *
	TokenDiv:   60, // /
	TokenMod:   60, // %
	TokenPow:   70, // **
	TokenCaret: 70, // ^ (rejected in parseInfix, listed so it reaches the whitelist check)
}

// unaryMinusPrecedence binds tighter than **, so -2**2 parses as (-2)**2
// and 2**-3 keeps the minus inside the exponent.
const unaryMinusPrecedence = 75

// getPrecedence returns the precedence of a token type.
func (p *Parser) getPrecedence(tt TokenType) int {
	if prec, ok := precedence[tt]; ok {
		return prec
	}
	return 0
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.current = p.lexer.Next()
}

// expect checks if the current token matches the expected type and advances.
func (p *Parser) expect(tt TokenType) error {
	if p.current.Type != tt {
		return p.error(types.ErrSyntax, fmt.Sprintf("Expected %s but got %s", tt.String(), p.current.Type.String()))
	}
	p.advance()
	return nil
}

// error creates a parser error at the current token.
func (p *Parser) error(code types.ErrorCode, message string) error {
	return &types.Error{
		Code:     code,
		Message:  message,
		Position: p.current.Position,
		Token:    p.current.Value,
	}
}

// parseExpression parses an expression with operator precedence.
// rbp is the right binding power (minimum precedence).
func (p *Parser) parseExpression(rbp int) (*types.ASTNode, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.opts.MaxDepth {
		return nil, p.error(types.ErrSyntax, "Expression too deeply nested")
	}

	// Parse prefix expression (nud - null denotation)
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	// Parse infix expressions while precedence allows (led - left denotation)
	for rbp < p.getPrecedence(p.current.Type) {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefix parses a prefix expression (nud - null denotation).
// These are expressions that don't require a left-hand side.
func (p *Parser) parsePrefix() (*types.ASTNode, error) {
	token := p.current

	switch token.Type {
	case TokenNumber:
		return p.parseNumber()
	case TokenMinus:
		return p.parseUnaryMinus()
	case TokenParenOpen:
		return p.parseGrouping()
	case TokenName:
		return nil, p.error(types.ErrSyntax, fmt.Sprintf("Unexpected identifier: %s", token.Value))
	case TokenCaret:
		return nil, p.error(types.ErrUnsupportedConstruct, "Unsupported operator '^'; exponentiation is '**'")
	case TokenError:
		return nil, p.lexer.Error()
	case TokenEOF:
		return nil, p.error(types.ErrSyntax, "Unexpected end of expression")
	default:
		return nil, p.error(types.ErrSyntax, fmt.Sprintf("Unexpected token: %s", token.Type.String()))
	}
}

// parseInfix parses an infix expression (led - left denotation).
// These are expressions that require a left-hand side.
func (p *Parser) parseInfix(left *types.ASTNode) (*types.ASTNode, error) {
	token := p.current

	switch token.Type {
	case TokenPlus, TokenMinus, TokenMult, TokenDiv, TokenMod, TokenPow:
		return p.parseBinaryOp(left)
	case TokenCaret:
		return nil, p.error(types.ErrUnsupportedConstruct, "Unsupported operator '^'; exponentiation is '**'")
	default:
		return nil, p.error(types.ErrSyntax, fmt.Sprintf("Unexpected infix token: %s", token.Type.String()))
	}
}

// parseNumber parses a number literal.
func (p *Parser) parseNumber() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeNumber, p.current.Position)

	val, err := strconv.ParseFloat(p.current.Value, 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return nil, p.error(types.ErrSyntax, fmt.Sprintf("Malformed number literal: %s", p.current.Value))
		}
		if math.IsInf(val, 0) {
			return nil, p.error(types.ErrOverflow, fmt.Sprintf("Number out of range: %s", p.current.Value))
		}
		// Underflow rounds toward zero, as the host float semantics do.
	}

	node.NumValue = val
	p.advance()
	return node, nil
}

// parseUnaryMinus parses a unary minus operator.
func (p *Parser) parseUnaryMinus() (*types.ASTNode, error) {
	pos := p.current.Position
	p.advance()

	operand, err := p.parseExpression(unaryMinusPrecedence)
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeUnary, pos)
	node.Op = types.OpNeg
	node.RHS = operand

	return node, nil
}

// parseGrouping parses a parenthesized expression.
func (p *Parser) parseGrouping() (*types.ASTNode, error) {
	p.advance() // Skip '('

	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	return expr, nil
}

// parseBinaryOp parses a binary operator expression.
func (p *Parser) parseBinaryOp(left *types.ASTNode) (*types.ASTNode, error) {
	op := p.current
	prec := p.getPrecedence(op.Type)

	kind, ok := opKinds[op.Type]
	if !ok {
		// Unreachable through the grammar; kept so a future token can
		// never silently become an operator.
		return nil, p.error(types.ErrUnsupportedConstruct, fmt.Sprintf("Unsupported operator: %s", op.Type.String()))
	}

	p.advance()

	// ** is right-associative: parse the right side with one less binding
	// power so a further ** binds to the exponent first.
	rbp := prec
	if op.Type == TokenPow {
		rbp = prec - 1
	}

	right, err := p.parseExpression(rbp)
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeBinary, op.Position)
	node.Op = kind
	node.LHS = left
	node.RHS = right

	return node, nil
}

// opKinds maps operator tokens to their AST operator kind. This is the
// complete operator whitelist; parseBinaryOp refuses anything outside it.
var opKinds = map[TokenType]types.OpKind{
	TokenPlus:  types.OpAdd,
	TokenMinus: types.OpSub,
	TokenMult:  types.OpMul,
	TokenDiv:   types.OpDiv,
	TokenMod:   types.OpMod,
	TokenPow:   types.OpPow,
}
