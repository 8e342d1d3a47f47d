// lexer.go — tokenizer for arithmetic/algebraic expression text.
//
// OVERVIEW
// --------
// Tokenize turns a source string into a flat token sequence. It never
// aborts: characters it does not recognize are recorded as *LexError
// values and skipped, and scanning continues. The scanner is
// whitespace-insensitive but *context-sensitive* in two ways:
//
//   - '+' and '-' (and '±') resolve their arity by looking at the
//     previously emitted token: they are unary at the start of input,
//     after another operator, or after '('; binary otherwise. A postfix
//     operator ('²', '³') ends an operand, so a sign after it is binary.
//   - implicit multiplication: a synthetic '*' token is inserted between
//     an operand-ending token (number, variable, ')', postfix operator)
//     and a following operand-starting token (number, variable, '(',
//     or a prefix unary operator), so "2x" scans as [2, *, x].
//
// Unicode operator variants (− × · ÷) are normalized at emission time:
// the token's Op carries the normalized class while Text preserves the
// symbol as written. '√' is always prefix-unary; '²' and '³' are always
// postfix-unary. Identifiers are maximal runs of letters — "sin" is one
// three-letter variable, never three one-letter ones; the tokenizer has
// no notion of function names. Numbers are digit runs with at most one
// decimal point.
package mathexpr

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenKind represents the kind of token.
type TokenKind int

const (
	NumberTok TokenKind = iota
	VariableTok
	OperatorTok
	ParenTok
)

// Token is one lexical unit. Text is the source text as written; for
// operators, Op holds the normalized symbol class and Unary the arity
// resolved from context. Tokens are immutable once emitted.
type Token struct {
	Kind  TokenKind
	Text  string
	Op    string // normalized operator ("+", "-", "*", "/", "%", "^", "√", "²", "³", "±")
	Unary bool
	Pos   int // byte offset of the token start in the source
}

// Tokenize scans text into tokens. It never fails; unrecognized characters
// are returned as *LexError values alongside the tokens scanned so far.
func Tokenize(text string) ([]Token, []error) {
	l := &lexer{src: text}
	l.scan()
	return l.toks, l.errs
}

type lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	toks  []Token
	errs  []error
}

func (l *lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *lexer) peek() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.cur:])
	return r, true
}

func (l *lexer) advance() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(l.src[l.cur:])
	l.cur += size
	return r, true
}

func (l *lexer) previousToken() *Token {
	if len(l.toks) == 0 {
		return nil
	}
	return &l.toks[len(l.toks)-1]
}

func (l *lexer) addToken(kind TokenKind, op string, unary bool) {
	l.toks = append(l.toks, Token{
		Kind:  kind,
		Text:  l.src[l.start:l.cur],
		Op:    op,
		Unary: unary,
		Pos:   l.start,
	})
	l.start = l.cur
}

func (l *lexer) err(pos int, format string, args ...any) {
	l.errs = append(l.errs, &LexError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// ───────────────────────────── context helpers ──────────────────────────────

// endsOperand reports whether t closes an operand, i.e. whether a sign
// after it must be binary and an operand after it needs an implicit '*'.
func endsOperand(t *Token) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case NumberTok, VariableTok:
		return true
	case ParenTok:
		return t.Text == ")"
	case OperatorTok:
		return t.Op == "²" || t.Op == "³"
	}
	return false
}

// maybeImplicitMul inserts a synthetic '*' when the previous token ends an
// operand and the upcoming token starts one.
func (l *lexer) maybeImplicitMul() {
	if !endsOperand(l.previousToken()) {
		return
	}
	l.toks = append(l.toks, Token{
		Kind: OperatorTok,
		Text: "*",
		Op:   "*",
		Pos:  l.start,
	})
}

// ─────────────────────────────── scanners ───────────────────────────────────

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// scanNumber consumes a digit run with at most one decimal point. The
// caller guarantees the first rune is a digit or a '.' followed by a digit.
func (l *lexer) scanNumber() {
	sawDot := false
	for {
		r, ok := l.peek()
		if !ok {
			break
		}
		if isDigit(r) {
			l.advance()
			continue
		}
		if r == '.' && !sawDot {
			// look one past the dot: "1.2" continues, "1." does not
			if r2, size := utf8.DecodeRuneInString(l.src[l.cur+1:]); size > 0 && isDigit(r2) {
				sawDot = true
				l.advance()
				continue
			}
		}
		break
	}
}

// scanIdentifier consumes a maximal contiguous run of letters.
func (l *lexer) scanIdentifier() {
	for {
		r, ok := l.peek()
		if !ok || !unicode.IsLetter(r) {
			break
		}
		l.advance()
	}
}

// ───────────────────────────── main scanner ─────────────────────────────────

func (l *lexer) scan() {
	for !l.isAtEnd() {
		l.start = l.cur
		r, _ := l.advance()

		if unicode.IsSpace(r) {
			l.start = l.cur
			continue
		}

		switch {
		case r == '(':
			l.maybeImplicitMul()
			l.addToken(ParenTok, "", false)
			continue
		case r == ')':
			l.addToken(ParenTok, "", false)
			continue
		case isDigit(r):
			l.maybeImplicitMul()
			l.scanNumber()
			l.addToken(NumberTok, "", false)
			continue
		case r == '.':
			if r2, ok := l.peek(); ok && isDigit(r2) {
				// a dot glued to a preceding number is a second decimal
				// point, not "1.2 times .3"
				if prev := l.previousToken(); prev != nil && prev.Kind == NumberTok &&
					prev.Pos+len(prev.Text) == l.start {
					l.err(l.start, "second decimal point in number")
					l.scanNumber()
					l.start = l.cur
					continue
				}
				l.maybeImplicitMul()
				l.scanNumber()
				l.addToken(NumberTok, "", false)
				continue
			}
			l.err(l.start, "unrecognized character %q", r)
			l.start = l.cur
			continue
		case unicode.IsLetter(r) && !isOperatorRune(r):
			l.maybeImplicitMul()
			l.scanIdentifier()
			l.addToken(VariableTok, "", false)
			continue
		}

		op := string(r)
		if alias, ok := opAliases[r]; ok {
			op = alias
		}
		info, known := opTable[op]
		if !known {
			l.err(l.start, "unrecognized character %q", r)
			l.start = l.cur
			continue
		}

		switch info.arity {
		case arityPrefix:
			// '√' starts an operand: "2√9" needs the implicit '*'.
			l.maybeImplicitMul()
			l.addToken(OperatorTok, op, true)
		case arityPostfix:
			l.addToken(OperatorTok, op, true)
		case arityContextual:
			// unary at start of input, after a non-postfix operator, or
			// after '('; binary after anything that ends an operand
			unary := !endsOperand(l.previousToken())
			l.addToken(OperatorTok, op, unary)
		default:
			l.addToken(OperatorTok, op, false)
		}
	}
}

// isOperatorRune guards identifier scanning against operator symbols that
// Unicode classifies oddly (none of the current set are letters, but the
// check keeps the two tables authoritative).
func isOperatorRune(r rune) bool {
	if _, ok := opAliases[r]; ok {
		return true
	}
	_, ok := opTable[string(r)]
	return ok
}
