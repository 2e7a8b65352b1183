package i18n

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
)

// Formula accepts a count and returns the index of the plural form to use
type Formula func(n int) int

// ExtractPluralForms takes a Plural-Forms expression e.g.
// "nplurals=2; plural=n != 1;" and returns its formula ("n != 1") together
// with the number of plural forms
func ExtractPluralForms(text string) (formula string, nplurals int, err error) {
	form := strings.TrimSpace(strings.ToLower(strings.Replace(text, "\\\n", "", -1)))
	if !strings.HasPrefix(form, "nplurals=") {
		return "", 0, errors.Errorf("invalid Plural-Forms %q, not starting with nplurals=", text)
	}
	form = form[len("nplurals="):]
	sep := strings.Index(form, ";")
	if sep == -1 {
		return "", 0, errors.Errorf("invalid Plural-Forms %q, can't find number of plurals", text)
	}
	nplurals, err = strconv.Atoi(strings.TrimSpace(form[:sep]))
	if err != nil {
		return "", 0, errors.Errorf("invalid Plural-Forms %q, error parsing nplurals: %s", text, err)
	}
	form = strings.TrimSpace(form[sep+1:])
	if !strings.HasPrefix(form, "plural=") {
		return "", 0, errors.Errorf("invalid plural formula %q, not starting with plural=", form)
	}
	form = strings.TrimSuffix(form, ";")
	return strings.TrimSpace(form[len("plural="):]), nplurals, nil
}

// MakeFormula compiles a full Plural-Forms expression
func MakeFormula(text string) (Formula, int, error) {
	form, nplurals, err := ExtractPluralForms(text)
	if err != nil {
		return nil, 0, err
	}
	fn, err := CompileFormula(form)
	if err != nil {
		return nil, 0, err
	}
	return fn, nplurals, nil
}

// CompileFormula compiles a C-like plural expression over n, such as
// "n%10==1 && n%100!=11 ? 0 : 1"
func CompileFormula(formula string) (Formula, error) {
	p := &formulaParser{src: formula}
	p.next()
	expr, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if p.tok != "" {
		return nil, p.errorf("unexpected %q", p.tok)
	}
	return Formula(expr), nil
}

type expr func(n int) int

type formulaParser struct {
	src string
	pos int
	tok string
}

func (p *formulaParser) errorf(format string, args ...interface{}) error {
	return errors.Errorf("invalid plural formula %q: %s", p.src, fmt.Sprintf(format, args...))
}

var twoCharOperators = []string{"==", "!=", "<=", ">=", "&&", "||"}

func (p *formulaParser) next() {
	for p.pos < len(p.src) && strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
	if p.pos >= len(p.src) {
		p.tok = ""
		return
	}
	rest := p.src[p.pos:]
	for _, op := range twoCharOperators {
		if strings.HasPrefix(rest, op) {
			p.tok = op
			p.pos += 2
			return
		}
	}
	if c := rest[0]; c >= '0' && c <= '9' {
		end := 1
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}
		p.tok = rest[:end]
		p.pos += end
		return
	}
	p.tok = rest[:1]
	p.pos++
}

func (p *formulaParser) ternary() (expr, error) {
	cond, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if p.tok != "?" {
		return cond, nil
	}
	p.next()
	yes, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if p.tok != ":" {
		return nil, p.errorf("expected ':' but found %q", p.tok)
	}
	p.next()
	no, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return func(n int) int {
		if cond(n) != 0 {
			return yes(n)
		}
		return no(n)
	}, nil
}

// binary operators by increasing precedence
var precedence = [][]string{
	{"||"},
	{"&&"},
	{"==", "!="},
	{"<", ">", "<=", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *formulaParser) binary(level int) (expr, error) {
	if level == len(precedence) {
		return p.unary()
	}
	left, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for contains(precedence[level], p.tok) {
		op := p.tok
		p.next()
		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		left = combine(op, left, right)
	}
	return left, nil
}

func contains(ops []string, tok string) bool {
	for _, op := range ops {
		if op == tok {
			return true
		}
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func combine(op string, l, r expr) expr {
	switch op {
	case "||":
		return func(n int) int { return boolToInt(l(n) != 0 || r(n) != 0) }
	case "&&":
		return func(n int) int { return boolToInt(l(n) != 0 && r(n) != 0) }
	case "==":
		return func(n int) int { return boolToInt(l(n) == r(n)) }
	case "!=":
		return func(n int) int { return boolToInt(l(n) != r(n)) }
	case "<":
		return func(n int) int { return boolToInt(l(n) < r(n)) }
	case ">":
		return func(n int) int { return boolToInt(l(n) > r(n)) }
	case "<=":
		return func(n int) int { return boolToInt(l(n) <= r(n)) }
	case ">=":
		return func(n int) int { return boolToInt(l(n) >= r(n)) }
	case "+":
		return func(n int) int { return l(n) + r(n) }
	case "-":
		return func(n int) int { return l(n) - r(n) }
	case "*":
		return func(n int) int { return l(n) * r(n) }
	case "/":
		return func(n int) int {
			if d := r(n); d != 0 {
				return l(n) / d
			}
			return 0
		}
	}
	// %
	return func(n int) int {
		if d := r(n); d != 0 {
			return l(n) % d
		}
		return 0
	}
}

func (p *formulaParser) unary() (expr, error) {
	switch {
	case p.tok == "!":
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return func(n int) int { return boolToInt(operand(n) == 0) }, nil

	case p.tok == "(":
		p.next()
		inner, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if p.tok != ")" {
			return nil, p.errorf("expected ')' but found %q", p.tok)
		}
		p.next()
		return inner, nil

	case p.tok == "n":
		p.next()
		return func(n int) int { return n }, nil

	case p.tok != "" && p.tok[0] >= '0' && p.tok[0] <= '9':
		value, err := strconv.Atoi(p.tok)
		if err != nil {
			return nil, p.errorf("bad number %q", p.tok)
		}
		p.next()
		return func(int) int { return value }, nil
	}

	if p.tok == "" {
		return nil, p.errorf("unexpected end of formula")
	}
	return nil, p.errorf("unexpected %q", p.tok)
}
