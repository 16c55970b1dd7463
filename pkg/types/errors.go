package types

import (
	"errors"
	"fmt"
)

// ErrorCode identifies one failure class of the evaluator.
type ErrorCode string

// Error codes grouped by stage: S0xxx for tokenizing/parsing, D0xxx for
// numeric evaluation.
const (
	// S0xxx: Parser/Syntax errors
	ErrSyntax               ErrorCode = "S0001"
	ErrUnsupportedConstruct ErrorCode = "S0002"

	// D0xxx: Evaluation errors
	ErrDivisionByZero ErrorCode = "D0001"
	ErrOverflow       ErrorCode = "D0002"
	ErrDomain         ErrorCode = "D0003"
)

// Error represents a structured evaluation error. It is the only error
// type that crosses the public boundary; callers switch on Code rather
// than parsing messages.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Err      error
}

// NewError creates a new evaluation error. Position is the rune index
// into the evaluated source, or -1 when the failure is not positional.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// CodeOf extracts the ErrorCode from err, or "" if err does not wrap an
// *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsSyntaxError reports whether err is a tokenizing or parsing failure.
func IsSyntaxError(err error) bool { return is(err, ErrSyntax) }

// IsUnsupported reports whether err names an operator or function outside
// the fixed whitelist.
func IsUnsupported(err error) bool { return is(err, ErrUnsupportedConstruct) }

// IsDivisionByZero reports whether err is a division or modulo by zero.
func IsDivisionByZero(err error) bool { return is(err, ErrDivisionByZero) }

// IsOverflow reports whether err is a result outside the finite float64
// range.
func IsOverflow(err error) bool { return is(err, ErrOverflow) }

// IsDomainError reports whether err is a real-domain violation such as a
// fractional power of a negative base.
func IsDomainError(err error) bool { return is(err, ErrDomain) }
