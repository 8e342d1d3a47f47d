// parser.go — precedence-climbing recursive descent over the token stream.
//
// OVERVIEW
// --------
// BuildAST consumes the token sequence produced by the tokenizer (see
// lexer.go) and builds an expression tree. The grammar, precedence low to
// high, matches the static table in ast.go:
//
//	additive       := multiplicative (('+'|'-'|'±') multiplicative)*
//	multiplicative := power (('*'|'/'|'%') power)*
//	power          := prefix ('^' power)?          // right-associative
//	prefix         := ('-'|'√') prefix | postfix   // '+' sign is dropped
//	postfix        := primary ('²'|'³')*
//	primary        := NUMBER | VARIABLE | '(' additive ')'
//
// Notes:
//   - '^' binds tighter than '*'/'/' and nests rightward: 2^3^2 is
//     2^(3^2) = 512.
//   - Prefix operators bind to the *base* of '^', agreeing with the safe
//     oracle's grammar: -2^2 is (-2)^2 = 4.
//   - Postfix '²'/'³' become Unary nodes wrapping the preceding primary,
//     never Binary exponent nodes.
//   - The whole token stream must be consumed; leftover tokens are a
//     parse error.
//
// All failures are *ParseError values (see errors.go); nothing panics.
// Errors caused purely by the input ending early are flagged so
// IsIncomplete can drive REPL continuation.
package mathexpr

import (
	"fmt"
	"strconv"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// BuildAST parses a complete token sequence into an expression tree.
func BuildAST(toks []Token) (*Node, error) {
	if len(toks) == 0 {
		return nil, &ParseError{Pos: 0, Msg: "empty expression", incomplete: true}
	}
	p := &parser{toks: toks}
	n, err := p.additive()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		t := p.peek()
		return nil, &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("unexpected %q after expression", t.Text)}
	}
	return n, nil
}

// ParseExpression tokenizes and parses text in one step. Lexical errors
// are fatal here: the first one is returned as the parse result.
func ParseExpression(text string) (*Node, error) {
	toks, errs := Tokenize(text)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return BuildAST(toks)
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

type parser struct {
	toks []Token
	i    int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.i >= len(p.toks) }

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) prev() Token { return p.toks[p.i-1] }

// matchOp consumes the next token when it is a binary operator with one of
// the given normalized symbols.
func (p *parser) matchOp(ops ...string) bool {
	if p.atEnd() {
		return false
	}
	t := p.peek()
	if t.Kind != OperatorTok || t.Unary {
		return false
	}
	for _, op := range ops {
		if t.Op == op {
			p.i++
			return true
		}
	}
	return false
}

// matchPostfix consumes a postfix unary operator ('²' or '³').
func (p *parser) matchPostfix() bool {
	if p.atEnd() {
		return false
	}
	t := p.peek()
	if t.Kind == OperatorTok && t.Unary && opTable[t.Op].arity == arityPostfix {
		p.i++
		return true
	}
	return false
}

// eofErr builds a ParseError at the end of input, flagged incomplete.
func (p *parser) eofErr(msg string) error {
	pos := 0
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		pos = last.Pos + len(last.Text)
	}
	return &ParseError{Pos: pos, Msg: msg, incomplete: true}
}

// ───────────────────────────── grammar levels ───────────────────────────────

func (p *parser) additive() (*Node, error) {
	n, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for p.matchOp("+", "-", "±") {
		op := p.prev().Op
		r, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		n = mkBinary(op, n, r)
	}
	return n, nil
}

func (p *parser) multiplicative() (*Node, error) {
	n, err := p.power()
	if err != nil {
		return nil, err
	}
	for p.matchOp("*", "/", "%") {
		op := p.prev().Op
		r, err := p.power()
		if err != nil {
			return nil, err
		}
		n = mkBinary(op, n, r)
	}
	return n, nil
}

func (p *parser) power() (*Node, error) {
	n, err := p.prefix()
	if err != nil {
		return nil, err
	}
	if p.matchOp("^") {
		// right-recursion gives right-associativity
		r, err := p.power()
		if err != nil {
			return nil, err
		}
		n = mkBinary("^", n, r)
	}
	return n, nil
}

func (p *parser) prefix() (*Node, error) {
	if p.atEnd() {
		return nil, p.eofErr("missing operand")
	}
	t := p.peek()
	if t.Kind == OperatorTok && t.Unary && opTable[t.Op].arity != arityPostfix {
		p.i++
		operand, err := p.prefix()
		if err != nil {
			if pe, ok := err.(*ParseError); ok && pe.Msg == "missing operand" {
				pe.Msg = fmt.Sprintf("missing operand after operator %q", t.Text)
			}
			return nil, err
		}
		if t.Op == "+" {
			// unary plus is the identity; drop it
			return operand, nil
		}
		return mkUnary(t.Op, operand), nil
	}
	return p.postfix()
}

func (p *parser) postfix() (*Node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.matchPostfix() {
		n = mkUnary(p.prev().Op, n)
	}
	return n, nil
}

func (p *parser) primary() (*Node, error) {
	if p.atEnd() {
		return nil, p.eofErr("missing operand")
	}
	t := p.peek()
	switch t.Kind {
	case NumberTok:
		p.i++
		v, err := parseNumberText(t.Text)
		if err != nil {
			return nil, &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("invalid number %q", t.Text)}
		}
		return mkNum(v), nil
	case VariableTok:
		p.i++
		return mkVar(t.Text), nil
	case ParenTok:
		if t.Text == "(" {
			p.i++
			n, err := p.additive()
			if err != nil {
				return nil, err
			}
			if p.atEnd() {
				return nil, p.eofErr("expected closing parenthesis")
			}
			if c := p.peek(); c.Kind != ParenTok || c.Text != ")" {
				return nil, &ParseError{Pos: c.Pos, Msg: "expected closing parenthesis"}
			}
			p.i++
			return n, nil
		}
		return nil, &ParseError{Pos: t.Pos, Msg: "unmatched closing parenthesis"}
	case OperatorTok:
		if t.Unary {
			return nil, &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("operator %q cannot start an operand", t.Text)}
		}
		return nil, &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("missing operand, found operator %q", t.Text)}
	}
	return nil, &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("unexpected token %q", t.Text)}
}

// parseNumberText converts a NUMBER token's text. The tokenizer only emits
// digit runs with at most one decimal point, so this cannot fail on its
// own output; the error path guards against hand-built token slices.
func parseNumberText(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
