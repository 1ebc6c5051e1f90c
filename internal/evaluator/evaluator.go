// Package evaluator turns accumulated expression text into a number.
//
// The accumulator depends only on the Evaluator interface; Arithmetic is the
// default implementation, a small recursive-descent parser over decimal
// literals, + - * /, unary signs and parentheses.
package evaluator

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is returned for any expression the parser cannot consume completely.
var ErrSyntax = errors.New("syntax error")

// Evaluator computes the value of an arithmetic expression.
type Evaluator interface {
	Evaluate(expr string) (float64, error)
}

// Func adapts a plain function to the Evaluator interface.
type Func func(expr string) (float64, error)

// Evaluate calls f(expr).
func (f Func) Evaluate(expr string) (float64, error) {
	return f(expr)
}

// Arithmetic evaluates + - * / with conventional precedence, left to right.
// Division by zero is not an error here: it yields ±Inf or NaN and callers
// decide whether a non-finite value is acceptable.
type Arithmetic struct{}

// New returns the default arithmetic evaluator.
func New() Arithmetic {
	return Arithmetic{}
}

// Evaluate parses and computes expr.
func (Arithmetic) Evaluate(expr string) (float64, error) {
	p := parser{input: expr}
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	val, err := p.parseAddSub()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, p.input[p.pos], p.pos)
	}
	return val, nil
}

type parser struct {
	input string
	pos   int
	depth int
}

// maxDepth bounds nested parentheses and unary chains.
const maxDepth = 256

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) parseAddSub() (float64, error) {
	val, err := p.parseMulDiv()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return val, nil
		}
		p.pos++
		right, err := p.parseMulDiv()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			val += right
		} else {
			val -= right
		}
	}
}

func (p *parser) parseMulDiv() (float64, error) {
	val, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '*' && op != '/') {
			return val, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			val *= right
		} else {
			val /= right
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return 0, fmt.Errorf("%w: expression nested too deeply", ErrSyntax)
	}

	ch, ok := p.peek()
	if ok && (ch == '+' || ch == '-') {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if ch == '-' {
			return -v, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	ch, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}

	if ch == '(' {
		p.pos++
		v, err := p.parseAddSub()
		if err != nil {
			return 0, err
		}
		if c, ok := p.peek(); !ok || c != ')' {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
		}
		p.pos++
		return v, nil
	}

	if isDigit(ch) || ch == '.' {
		return p.parseNumber()
	}
	return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, ch, p.pos)
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	end := ScanNumber(p.input[start:])
	if end == 0 {
		return 0, fmt.Errorf("%w: malformed number at offset %d", ErrSyntax, start)
	}
	lit := p.input[start : start+end]
	p.pos = start + end
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// ParseFloat reports overflow as ErrRange with ±Inf; keep the value
		// so the caller sees a non-finite result rather than a syntax error.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, fmt.Errorf("%w: malformed number %q", ErrSyntax, lit)
	}
	return v, nil
}

// ScanNumber returns the length of the unsigned decimal literal at the start
// of s: digits with at most one '.', optionally followed by an exponent.
// A bare "." or an exponent without digits is not consumed.
func ScanNumber(s string) int {
	j := 0
	digits := 0
	for j < len(s) && isDigit(s[j]) {
		j++
		digits++
	}
	if j < len(s) && s[j] == '.' {
		k := j + 1
		frac := 0
		for k < len(s) && isDigit(s[k]) {
			k++
			frac++
		}
		if digits+frac > 0 {
			j = k
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		expDigits := 0
		for k < len(s) && isDigit(s[k]) {
			k++
			expDigits++
		}
		if expDigits > 0 {
			j = k
		}
	}
	return j
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
