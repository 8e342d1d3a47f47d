// errors.go: typed diagnostics and caret-snippet rendering
//
// What this file does
// -------------------
// The core never raises past its boundary; every failure is a structured
// error value from a three-kind taxonomy:
//
//   - *LexError   — unrecognized character; recorded by the tokenizer,
//     which keeps scanning.
//   - *ParseError — empty input, unbalanced parentheses, missing operand,
//     trailing unconsumed tokens, invalid operator arity for a position.
//   - *EvalError  — unbound variable, division by zero, invalid domain
//     for a unary operator (e.g. square root of a negative).
//
// `WrapErrorWithSource` renders a lex/parse error as a readable snippet
// with a caret under the offending column:
//
//	PARSE ERROR at 7: expected closing parenthesis
//
//	  | (2 + 3
//	  |       ^
//
// `IsIncomplete` recognizes parse errors caused by input that merely
// ended too early (unclosed paren, operator with nothing after it); a
// REPL uses it to keep reading lines instead of reporting a hard error.
package mathexpr

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LexError reports one unrecognized character. Pos is the byte offset in
// the source; it is rendered 1-based.
type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d: %s", e.Pos+1, e.Msg)
}

// ParseError reports a structural failure while building the AST.
type ParseError struct {
	Pos        int
	Msg        string
	incomplete bool // input ended before the construct could finish
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos+1, e.Msg)
}

// EvalError reports a failure during numeric evaluation.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string { return e.Msg }

// IsIncomplete reports whether err is a parse error caused only by the
// input ending too early. Suitable for REPL continuation prompts.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.incomplete
}

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src, when err is a lex or parse error with a usable position.
// Other errors are returned unchanged. Output is plain text, suitable for
// logs and terminals.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", caretSnippet(src, "LEX ERROR", e.Pos, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", caretSnippet(src, "PARSE ERROR", e.Pos, e.Msg))
	default:
		return err
	}
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: snippet rendering
   =========================== */

// caretSnippet builds the header plus a caret line. Expressions are
// single-line; any newline in src is flattened so the caret stays aligned.
// pos is a byte offset; the caret column counts runes up to it, so
// multi-byte characters earlier in the line (√, ×, α) do not push the
// caret off target. The position is clamped to the source bounds.
func caretSnippet(src, header string, pos int, msg string) string {
	line := strings.ReplaceAll(src, "\n", " ")
	if pos < 0 {
		pos = 0
	}
	if pos > len(line) {
		pos = len(line)
	}
	col := utf8.RuneCountInString(line[:pos])
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d: %s\n\n", header, col+1, msg)
	fmt.Fprintf(&b, "  | %s\n", line)
	fmt.Fprintf(&b, "  | %s^\n", strings.Repeat(" ", col))
	return b.String()
}
