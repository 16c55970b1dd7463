package normalizer

// CharClass identifies the lexical class of a single byte of input.
type CharClass uint8

const (
	ClassOther CharClass = iota
	ClassDigit
	ClassLetter
	ClassUnderscore
	ClassOperator
	ClassOpenParen
	ClassCloseParen
	ClassSpace
)

// String returns a string representation of the character class.
func (c CharClass) String() string {
	switch c {
	case ClassDigit:
		return "digit"
	case ClassLetter:
		return "letter"
	case ClassUnderscore:
		return "underscore"
	case ClassOperator:
		return "operator"
	case ClassOpenParen:
		return "open-paren"
	case ClassCloseParen:
		return "close-paren"
	case ClassSpace:
		return "space"
	default:
		return "other"
	}
}

// Classify returns the lexical class of c. Classification is ASCII-only:
// bytes outside ASCII are Other and pass through the normalizer untouched.
// The surrounding UI translates cosmetic unicode glyphs (×, ÷, π) before
// text reaches this package.
func Classify(c byte) CharClass {
	switch {
	case isDigit(c):
		return ClassDigit
	case isLetter(c):
		return ClassLetter
	case c == '_':
		return ClassUnderscore
	case c == '(':
		return ClassOpenParen
	case c == ')':
		return ClassCloseParen
	case isSpace(c):
		return ClassSpace
	case isOperator(c):
		return ClassOperator
	}
	return ClassOther
}

// Character classification functions

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isAlnum(c byte) bool { return isDigit(c) || isLetter(c) }

func isIdentChar(c byte) bool { return isAlnum(c) || c == '_' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '^':
		return true
	}
	return false
}
