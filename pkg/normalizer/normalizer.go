// Package normalizer rewrites informally written mathematical text into
// canonical expression syntax. Users type "2x^2 + 3x + 4" or "sin x";
// the parser wants "2*x**2 + 3*x + 4" and "sin(x)". Normalize closes
// that gap by inserting the multiplication signs and parentheses the
// input left implicit:
//
//	Normalize("2x^2 + 3x + 4")  // "2*x**2 + 3*x + 4"
//	Normalize("(x+1)(x-1)")     // "(x+1)*(x-1)"
//	Normalize("sin x")          // "sin(x)"
//
// Normalize is a pure text transform. It never fails, performs no
// evaluation, and makes no attempt to validate its input; malformed
// text comes out as well-formed as it went in and is left for the
// parser to reject.
package normalizer

import (
	"strings"

	"github.com/acarlucci/gocalc/pkg/functions"
)

// Normalize rewrites input into canonical expression syntax. The result
// is a fixed point: normalizing it again returns it unchanged.
//
// The rewrite is a single left-to-right scan applying these rules:
//
//   - '^' becomes '**'
//   - a known function name followed by whitespace and a single operand
//     token is wrapped: "sin x" -> "sin(x)" (an explicit '(' after the
//     name disables the rewrite)
//   - '*' is inserted between a digit and a following letter,
//     underscore or '(' : "2x" -> "2*x", "3(x+1)" -> "3*(x+1)"
//   - '*' is inserted between ')' and a following '(', letter, digit or
//     underscore; whitespace between ')' and '(' is dropped
//   - '*' is inserted between an all-letter identifier and a following
//     '(' unless the identifier is a known function name:
//     "x(y+1)" -> "x*(y+1)" but "sin(x)" stays
//   - two adjacent letters that are each isolated single-letter
//     identifiers are split: "xy" -> "x*y", while "xyz" and "x2y" stay
//
// Known function names are atomic: no rule ever inserts inside one.
func Normalize(input string) string {
	s := scanner{input: input}
	return s.run()
}

// scanner holds the state of one normalization pass.
type scanner struct {
	input string
	out   strings.Builder
	pos   int
	prev  byte // last byte written, 0 before any output
}

func (s *scanner) run() string {
	s.out.Grow(len(s.input) + len(s.input)/4)
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		switch cls := Classify(c); {
		case cls == ClassDigit,
			c == '.' && s.pos+1 < len(s.input) && isDigit(s.input[s.pos+1]):
			s.scanNumber()
		case cls == ClassLetter, cls == ClassUnderscore:
			s.scanIdentifier()
		case cls == ClassCloseParen:
			s.emitByte(')')
			s.pos++
			s.closeParenAdjacency()
		case c == '^':
			s.emitString("**")
			s.pos++
		default:
			s.emitByte(c)
			s.pos++
		}
	}
	return s.out.String()
}

// scanNumber consumes a run of digits and dots and applies the digit
// adjacency rules to whatever follows. The rules only fire when the run
// actually ends in a digit, so "2.(" stays as it is.
func (s *scanner) scanNumber() {
	start := s.pos
	for s.pos < len(s.input) && (isDigit(s.input[s.pos]) || s.input[s.pos] == '.') {
		s.pos++
	}
	s.emitString(s.input[start:s.pos])

	if s.pos >= len(s.input) || !isDigit(s.input[s.pos-1]) {
		return
	}
	if next := s.input[s.pos]; isLetter(next) || next == '_' || next == '(' {
		s.emitByte('*')
	}
}

// scanIdentifier consumes a maximal run of letters, digits and
// underscores and emits it with the in-run insertion rules applied.
// A run that is exactly a known function name is emitted atomically,
// after first trying the bare application rewrite ("sin x" -> "sin(x)").
func (s *scanner) scanIdentifier() {
	start := s.pos
	for s.pos < len(s.input) && isIdentChar(s.input[s.pos]) {
		s.pos++
	}
	run := s.input[start:s.pos]

	if functions.IsKnown(run) {
		if s.wrapBareCall(run) {
			return
		}
		s.emitString(run)
		return
	}

	// Decide whether a '*' separates this run from a following '('.
	// Only the part after the last digit-to-letter split counts, which
	// keeps "x2sin(y)" reading as a call of sin.
	star := false
	if s.peek() == '(' {
		last := lastSegment(run)
		star = isDigit(last[len(last)-1]) || (allLetters(last) && !functions.IsKnown(last))
	}
	right := s.peek()
	if star {
		right = '*'
	}
	s.emitRun(run, right)
	if star {
		s.emitByte('*')
	}
}

// emitRun writes an identifier run, inserting '*' between a digit and a
// following letter or underscore, and between two adjacent letters that
// are each isolated: the byte before the first and the byte after the
// second are not alphanumeric. right is the byte that will follow the
// run in the output, 0 at end of input.
func (s *scanner) emitRun(run string, right byte) {
	for k := 0; k < len(run); k++ {
		before := s.prev
		s.emitByte(run[k])
		if k+1 >= len(run) {
			break
		}
		next := run[k+1]
		if isDigit(run[k]) && (isLetter(next) || next == '_') {
			s.emitByte('*')
			continue
		}
		if !isLetter(run[k]) || !isLetter(next) {
			continue
		}
		nextNext := right
		if k+2 < len(run) {
			nextNext = run[k+2]
		}
		if !isAlnum(before) && !isAlnum(nextNext) {
			s.emitByte('*')
		}
	}
}

// wrapBareCall rewrites a bare function application "sin x" as "sin(x)".
// Only the single token after the whitespace is wrapped, so "sin x + 1"
// becomes "sin(x) + 1", and an explicit '(' after the name disables the
// rewrite even across whitespace. Reports whether input was consumed.
func (s *scanner) wrapBareCall(name string) bool {
	j := s.pos
	for j < len(s.input) && isSpace(s.input[j]) {
		j++
	}
	if j == s.pos || j >= len(s.input) || s.input[j] == '(' {
		return false
	}

	var operand string
	switch c := s.input[j]; {
	case isLetter(c) || c == '_':
		k := j + 1
		for k < len(s.input) && isIdentChar(s.input[k]) {
			k++
		}
		operand = s.input[j:k]
		s.pos = k
	case isDigit(c):
		k := j + 1
		for k < len(s.input) && isDigit(s.input[k]) {
			k++
		}
		if k < len(s.input) && s.input[k] == '.' {
			k++
			for k < len(s.input) && isDigit(s.input[k]) {
				k++
			}
		}
		operand = s.input[j:k]
		s.pos = k
	default:
		return false
	}

	s.emitString(name)
	s.emitByte('(')
	if functions.IsKnown(operand) {
		s.emitString(operand)
	} else {
		s.emitRun(operand, ')')
	}
	s.emitByte(')')
	s.closeParenAdjacency()
	return true
}

// closeParenAdjacency inserts '*' after a ')' that has just been written
// when an operand or another group follows. ")(" and ") (" both become
// ")*(" with the whitespace dropped; ")x" becomes ")*x" but ") x" is
// left alone.
func (s *scanner) closeParenAdjacency() {
	j := s.pos
	for j < len(s.input) && isSpace(s.input[j]) {
		j++
	}
	if j < len(s.input) && s.input[j] == '(' {
		s.emitByte('*')
		s.pos = j
		return
	}
	if s.pos < len(s.input) && isIdentChar(s.input[s.pos]) {
		s.emitByte('*')
	}
}

func (s *scanner) peek() byte {
	if s.pos < len(s.input) {
		return s.input[s.pos]
	}
	return 0
}

func (s *scanner) emitByte(c byte) {
	s.out.WriteByte(c)
	s.prev = c
}

func (s *scanner) emitString(str string) {
	if str == "" {
		return
	}
	s.out.WriteString(str)
	s.prev = str[len(str)-1]
}

// lastSegment returns the tail of run after its last digit-to-letter
// boundary, the part a backward scan from a following '(' would see
// once the in-run '*' insertions are applied.
func lastSegment(run string) string {
	for k := len(run) - 1; k > 0; k-- {
		if isDigit(run[k-1]) && (isLetter(run[k]) || run[k] == '_') {
			return run[k:]
		}
	}
	return run
}

func allLetters(str string) bool {
	for i := 0; i < len(str); i++ {
		if !isLetter(str[i]) {
			return false
		}
	}
	return true
}
