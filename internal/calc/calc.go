// Package calc evaluates the arithmetic expressions the revision loop sends to
// the calculator tool.
//
// Grammar:
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/" | "×" | "÷") unary }
//	unary  = ("+" | "-") unary | power
//	power  = atom [ "^" unary ]
//	atom   = number | "(" expr ")"
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrDivisionByZero = errors.New("calc: division by zero")
	ErrSyntax         = errors.New("calc: syntax error")
)

// Eval parses and evaluates expr.
func Eval(expr string) (float64, error) {
	p := &parser{src: []rune(expr)}
	p.skipSpace()
	if p.done() {
		return 0, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if !p.done() {
		return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, string(p.src[p.pos]), p.pos)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("calc: result of %q is not a finite number", strings.TrimSpace(expr))
	}
	return v, nil
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) skipSpace() {
	for !p.done() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// peek returns the next non-space rune without consuming it.
func (p *parser) peek() (rune, bool) {
	p.skipSpace()
	if p.done() {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok {
			return left, nil
		}
		switch op {
		case '*', '×':
			p.pos++
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/', '÷':
			p.pos++
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *parser) unary() (float64, error) {
	op, ok := p.peek()
	if ok && (op == '-' || op == '+') {
		p.pos++
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == '-' {
			return -v, nil
		}
		return v, nil
	}
	return p.power()
}

func (p *parser) power() (float64, error) {
	base, err := p.atom()
	if err != nil {
		return 0, err
	}
	if op, ok := p.peek(); ok && op == '^' {
		p.pos++
		exp, err := p.unary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *parser) atom() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	if c == '(' {
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if c, ok := p.peek(); !ok || c != ')' {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
		}
		p.pos++
		return v, nil
	}
	return p.number()
}

func (p *parser) number() (float64, error) {
	start := p.pos
	for !p.done() && (unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	// Optional exponent, e.g. 1.5e3.
	if !p.done() && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') && p.pos > start {
		save := p.pos
		p.pos++
		if !p.done() && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		digits := p.pos
		for !p.done() && unicode.IsDigit(p.src[p.pos]) {
			p.pos++
		}
		if p.pos == digits {
			p.pos = save
		}
	}
	if p.pos == start {
		return 0, fmt.Errorf("%w: expected number at offset %d, got %q", ErrSyntax, start, string(p.src[start]))
	}
	lit := string(p.src[start:p.pos])
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrSyntax, lit)
	}
	return v, nil
}
