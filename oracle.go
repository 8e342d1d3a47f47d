// oracle.go — independent safe evaluator for constant arithmetic.
//
// SafeEvaluate shares no code with the tokenizer, parser, or evaluator:
// it walks the input string directly with its own recursive descent. That
// independence is the point — it serves as a cross-check oracle for the
// main pipeline, so a bug there cannot hide behind the same bug here.
//
// Grammar (after stripping whitespace and rewriting '**' to '^'):
//
//	expr    := term (('+' | '-') term)*
//	term    := factor (('*' | '/') factor)*
//	factor  := base ('^' factor)?          -- right associative
//	base    := '-' base | primary
//	primary := number | '(' expr ')'
//
// Unary minus binds to the base of '^', so -2^2 evaluates to 4, matching
// the main pipeline. Only constant ASCII arithmetic is accepted: a
// validation pre-pass rejects any character outside the digits,
// '.', '+', '-', '*', '/', '^', '(' and ')'. The oracle grammar has no
// '%': modulo belongs to the main pipeline only.
package mathexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SafeEvaluate evaluates a constant arithmetic expression. Any problem —
// an illegal character, a malformed expression, division or modulo by
// zero, or a non-finite result — is an error; it never panics.
func SafeEvaluate(text string) (float64, error) {
	src := strings.Map(dropSpace, text)
	src = strings.ReplaceAll(src, "**", "^")
	if src == "" {
		return 0, &EvalError{Msg: "empty expression"}
	}
	for i, r := range src {
		if !safeChar(r) {
			return 0, &EvalError{Msg: fmt.Sprintf("unsafe character %q at offset %d", r, i)}
		}
	}
	c := &cursor{src: src}
	v, err := c.expr()
	if err != nil {
		return 0, err
	}
	if c.pos < len(c.src) {
		return 0, &EvalError{Msg: fmt.Sprintf("unexpected %q at offset %d", c.src[c.pos], c.pos)}
	}
	if !isFinite(v) {
		return 0, &EvalError{Msg: "result is not finite"}
	}
	return v, nil
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

func dropSpace(r rune) rune {
	switch r {
	case ' ', '\t', '\n', '\r':
		return -1
	}
	return r
}

func safeChar(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	switch r {
	case '.', '+', '-', '*', '/', '^', '(', ')':
		return true
	}
	return false
}

// cursor is a byte-offset walker over the sanitized source. The sanitized
// form is pure ASCII, so byte indexing is safe.
type cursor struct {
	src string
	pos int
}

func (c *cursor) cur() byte {
	if c.pos < len(c.src) {
		return c.src[c.pos]
	}
	return 0
}

func (c *cursor) expr() (float64, error) {
	v, err := c.term()
	if err != nil {
		return 0, err
	}
	for {
		switch c.cur() {
		case '+':
			c.pos++
			r, err := c.term()
			if err != nil {
				return 0, err
			}
			v += r
		case '-':
			c.pos++
			r, err := c.term()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

func (c *cursor) term() (float64, error) {
	v, err := c.factor()
	if err != nil {
		return 0, err
	}
	for {
		switch c.cur() {
		case '*':
			c.pos++
			r, err := c.factor()
			if err != nil {
				return 0, err
			}
			v *= r
		case '/':
			c.pos++
			r, err := c.factor()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, &EvalError{Msg: "division by zero"}
			}
			v /= r
		default:
			return v, nil
		}
	}
}

func (c *cursor) factor() (float64, error) {
	v, err := c.base()
	if err != nil {
		return 0, err
	}
	if c.cur() == '^' {
		c.pos++
		e, err := c.factor()
		if err != nil {
			return 0, err
		}
		return math.Pow(v, e), nil
	}
	return v, nil
}

func (c *cursor) base() (float64, error) {
	if c.cur() == '-' {
		c.pos++
		v, err := c.base()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return c.primary()
}

func (c *cursor) primary() (float64, error) {
	switch {
	case c.cur() == '(':
		c.pos++
		v, err := c.expr()
		if err != nil {
			return 0, err
		}
		if c.cur() != ')' {
			return 0, &EvalError{Msg: fmt.Sprintf("expected ')' at offset %d", c.pos)}
		}
		c.pos++
		return v, nil
	case c.cur() >= '0' && c.cur() <= '9', c.cur() == '.':
		return c.number()
	case c.pos >= len(c.src):
		return 0, &EvalError{Msg: "unexpected end of expression"}
	default:
		return 0, &EvalError{Msg: fmt.Sprintf("unexpected %q at offset %d", c.src[c.pos], c.pos)}
	}
}

func (c *cursor) number() (float64, error) {
	start := c.pos
	sawDot := false
	for c.pos < len(c.src) {
		b := c.src[c.pos]
		if b >= '0' && b <= '9' {
			c.pos++
			continue
		}
		if b == '.' && !sawDot {
			sawDot = true
			c.pos++
			continue
		}
		break
	}
	lit := c.src[start:c.pos]
	if lit == "" || lit == "." {
		return 0, &EvalError{Msg: fmt.Sprintf("malformed number at offset %d", start)}
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, &EvalError{Msg: fmt.Sprintf("malformed number %q", lit)}
	}
	return v, nil
}
