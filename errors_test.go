// errors_test.go
package mathexpr

import (
	"strings"
	"testing"
)

func Test_Errors_Messages_ArePositioned(t *testing.T) {
	_, errs := Tokenize("2 @ 3")
	if len(errs) != 1 {
		t.Fatalf("want one lex error, got %v", errs)
	}
	if got := errs[0].Error(); !strings.HasPrefix(got, "lex error at 3:") {
		t.Fatalf("want 1-based position in message, got %q", got)
	}

	_, err := ParseExpression("2 + 3)")
	if err == nil || !strings.HasPrefix(err.Error(), "parse error at 6:") {
		t.Fatalf("want 1-based position in message, got %v", err)
	}
}

func Test_Errors_WrapWithSource_Caret(t *testing.T) {
	src := "(2 + 3"
	_, err := ParseExpression(src)
	if err == nil {
		t.Fatalf("want parse error")
	}
	wrapped := WrapErrorWithSource(err, src).Error()
	if !strings.Contains(wrapped, "PARSE ERROR at 7:") {
		t.Fatalf("missing header, got:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, "  | (2 + 3\n") {
		t.Fatalf("missing source line, got:\n%s", wrapped)
	}
	// caret sits one past the last character
	if !strings.Contains(wrapped, "  |       ^") {
		t.Fatalf("caret misaligned, got:\n%s", wrapped)
	}
}

func Test_Errors_WrapWithSource_LexError(t *testing.T) {
	src := "1 + $"
	_, errs := Tokenize(src)
	wrapped := WrapErrorWithSource(errs[0], src).Error()
	if !strings.Contains(wrapped, "LEX ERROR at 5:") {
		t.Fatalf("missing header, got:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, "  |     ^") {
		t.Fatalf("caret misaligned, got:\n%s", wrapped)
	}
}

func Test_Errors_WrapWithSource_MultibyteAlignment(t *testing.T) {
	// '√' is three bytes; the caret column must count runes, not bytes
	src := "√9 + $"
	_, errs := Tokenize(src)
	if len(errs) != 1 {
		t.Fatalf("want one lex error, got %v", errs)
	}
	wrapped := WrapErrorWithSource(errs[0], src).Error()
	if !strings.Contains(wrapped, "LEX ERROR at 6:") {
		t.Fatalf("want rune column 6 in header, got:\n%s", wrapped)
	}
	if !strings.Contains(wrapped, "  |      ^") {
		t.Fatalf("caret should sit under the '$', got:\n%s", wrapped)
	}
}

func Test_Errors_WrapWithSource_PassThrough(t *testing.T) {
	_, err := EvaluateExpression("x", nil)
	if err == nil {
		t.Fatalf("want eval error")
	}
	if WrapErrorWithSource(err, "x") != err {
		t.Fatalf("eval errors carry no position and should pass through unchanged")
	}
}

func Test_Errors_IsIncomplete_OnlyForParseErrors(t *testing.T) {
	if IsIncomplete(&EvalError{Msg: "x"}) {
		t.Fatalf("eval errors are never incomplete")
	}
	if IsIncomplete(&LexError{Pos: 0, Msg: "x"}) {
		t.Fatalf("lex errors are never incomplete")
	}
	_, err := ParseExpression("(1 +")
	if !IsIncomplete(err) {
		t.Fatalf("unfinished input should be incomplete: %v", err)
	}
}
