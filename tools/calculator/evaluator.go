package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/Knetic/govaluate"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrNotFinite      = errors.New("result is not a finite number")
)

// allowed binary operators, lowest precedence first
var precedence = map[string]int{
	"+":  1,
	"-":  1,
	"*":  2,
	"/":  2,
	"%":  2,
	"**": 4,
}

// Evaluate computes an arithmetic expression made of numbers, the binary
// operators + - * / % **, unary minus and parentheses. Anything else, such as
// identifiers, function calls or comparisons, is rejected before evaluation.
//
// ** is right associative and binds tighter than unary minus (-2 ** 2 is -4),
// / is true division and % takes the sign of the divisor.
func Evaluate(expression string) (float64, error) {
	if strings.TrimSpace(expression) == "" {
		return 0, errors.New("empty expression")
	}
	normalized, err := normalize(expression)
	if err != nil {
		return 0, err
	}
	expr, err := govaluate.NewEvaluableExpression(spaceOperators(normalized))
	if err != nil {
		return 0, err
	}
	tokens := expr.Tokens()
	if err := whitelist(tokens); err != nil {
		return 0, err
	}
	p := &parser{tokens: tokens}
	v, err := p.expression()
	if err != nil {
		return 0, err
	}
	if p.pos < len(p.tokens) {
		return 0, fmt.Errorf("unexpected token %v", p.tokens[p.pos].Value)
	}
	return v, nil
}

// normalize rewrites exponent literals such as 2.5e-3 as plain decimals and
// collapses runs of unary minus by parity. The lexer accepts neither.
func normalize(expression string) (string, error) {
	var sb strings.Builder
	runes := []rune(expression)
	operand := true // an operand is expected next
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			sb.WriteRune(r)
			i++
		case r == '-' && operand:
			n := 0
			for ; i < len(runes) && (runes[i] == '-' || unicode.IsSpace(runes[i])); i++ {
				if runes[i] == '-' {
					n++
				}
			}
			if n%2 == 1 {
				sb.WriteString(" -")
			}
		case isDigit(r) || r == '.':
			end, literal := scanNumber(runes, i)
			if literal && (i == 0 || !isWord(runes[i-1])) {
				v, err := strconv.ParseFloat(string(runes[i:end]), 64)
				if err != nil {
					if errors.Is(err, strconv.ErrRange) {
						return "", ErrNotFinite
					}
					return "", fmt.Errorf("invalid number %s", string(runes[i:end]))
				}
				sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				sb.WriteString(string(runes[i:end]))
			}
			i = end
			operand = false
		default:
			sb.WriteRune(r)
			operand = !(r == ')' || isWord(r) || r == '\'' || r == '"')
			i++
		}
	}
	return sb.String(), nil
}

// scanNumber returns the end of the numeric literal starting at i. The
// exponent part is only consumed when it carries at least one digit.
func scanNumber(runes []rune, i int) (int, bool) {
	j := i
	for j < len(runes) && (isDigit(runes[j]) || runes[j] == '.') {
		j++
	}
	if j >= len(runes) || (runes[j] != 'e' && runes[j] != 'E') {
		return j, false
	}
	k := j + 1
	if k < len(runes) && (runes[k] == '+' || runes[k] == '-') {
		k++
	}
	digits := k
	for k < len(runes) && isDigit(runes[k]) {
		k++
	}
	if k == digits {
		return j, false
	}
	return k, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// spaceOperators separates arithmetic operators so that sequences like "2*-3"
// are lexed as two operators instead of one unknown symbol.
func spaceOperators(expression string) string {
	var sb strings.Builder
	runes := []rune(expression)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				sb.WriteString(" ** ")
				i++
				continue
			}
			sb.WriteString(" * ")
		case '+', '-', '/', '%':
			sb.WriteByte(' ')
			sb.WriteRune(r)
			sb.WriteByte(' ')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func whitelist(tokens []govaluate.ExpressionToken) error {
	for _, tok := range tokens {
		switch tok.Kind {
		case govaluate.NUMERIC, govaluate.CLAUSE, govaluate.CLAUSE_CLOSE:
		case govaluate.PREFIX:
			if tok.Value != "-" {
				return fmt.Errorf("operator %v is not allowed", tok.Value)
			}
		case govaluate.MODIFIER:
			if _, ok := precedence[fmt.Sprint(tok.Value)]; !ok {
				return fmt.Errorf("operator %v is not allowed", tok.Value)
			}
		case govaluate.VARIABLE:
			return fmt.Errorf("identifier %v is not allowed", tok.Value)
		case govaluate.FUNCTION:
			return errors.New("function calls are not allowed")
		default:
			return fmt.Errorf("%s %v is not allowed", tok.Kind.String(), tok.Value)
		}
	}
	return nil
}

type parser struct {
	tokens []govaluate.ExpressionToken
	pos    int
}

func (p *parser) peek() (govaluate.ExpressionToken, bool) {
	if p.pos >= len(p.tokens) {
		return govaluate.ExpressionToken{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) operator(minPrec int) (string, int, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != govaluate.MODIFIER {
		return "", 0, false
	}
	op := fmt.Sprint(tok.Value)
	prec := precedence[op]
	if prec < minPrec {
		return "", 0, false
	}
	return op, prec, true
}

// expression := term (('+' | '-') term)*
func (p *parser) expression() (float64, error) {
	return p.binary(1)
}

func (p *parser) binary(minPrec int) (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op, prec, ok := p.operator(minPrec)
		if !ok || op == "**" {
			return left, nil
		}
		p.pos++
		right, err := p.binary(prec + 1)
		if err != nil {
			return 0, err
		}
		if left, err = apply(op, left, right); err != nil {
			return 0, err
		}
	}
}

// unary := '-' unary | power
func (p *parser) unary() (float64, error) {
	tok, ok := p.peek()
	if ok && tok.Kind == govaluate.PREFIX {
		p.pos++
		v, err := p.unary()
		return -v, err
	}
	return p.power()
}

// power := atom ('**' unary)?
func (p *parser) power() (float64, error) {
	base, err := p.atom()
	if err != nil {
		return 0, err
	}
	if op, _, ok := p.operator(0); ok && op == "**" {
		p.pos++
		exp, err := p.unary()
		if err != nil {
			return 0, err
		}
		return apply(op, base, exp)
	}
	return base, nil
}

// atom := number | '(' expression ')'
func (p *parser) atom() (float64, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, errors.New("unexpected end of expression")
	}
	p.pos++
	switch tok.Kind {
	case govaluate.NUMERIC:
		v, ok := tok.Value.(float64)
		if !ok {
			return 0, fmt.Errorf("invalid number %v", tok.Value)
		}
		return v, nil
	case govaluate.CLAUSE:
		v, err := p.expression()
		if err != nil {
			return 0, err
		}
		if closing, ok := p.peek(); !ok || closing.Kind != govaluate.CLAUSE_CLOSE {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}
	return 0, fmt.Errorf("unexpected token %v", tok.Value)
}

func apply(op string, a, b float64) (float64, error) {
	var v float64
	switch op {
	case "+":
		v = a + b
	case "-":
		v = a - b
	case "*":
		v = a * b
	case "/":
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		v = a / b
	case "%":
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		v = math.Mod(a, b)
		if v != 0 && (v < 0) != (b < 0) {
			v += b
		}
	case "**":
		if a == 0 && b < 0 {
			return 0, ErrDivisionByZero
		}
		v = math.Pow(a, b)
	default:
		return 0, fmt.Errorf("operator %s is not allowed", op)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// Format renders v the way a float literal is printed: integral values keep
// a ".0", exponent notation is used below 1e-4 and from 1e16.
func Format(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
