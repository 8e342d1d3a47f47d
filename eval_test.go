// eval_test.go
package mathexpr

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func evalOK(t *testing.T, src string, bindings map[string]float64) float64 {
	t.Helper()
	v, err := EvaluateExpression(src, bindings)
	if err != nil {
		t.Fatalf("EvaluateExpression(%q): %v", src, err)
	}
	return v
}

func evalErr(t *testing.T, src string, bindings map[string]float64, frag string) {
	t.Helper()
	_, err := EvaluateExpression(src, bindings)
	if err == nil {
		t.Fatalf("EvaluateExpression(%q): want error containing %q", src, frag)
	}
	if !strings.Contains(err.Error(), frag) {
		t.Fatalf("EvaluateExpression(%q): want error containing %q, got %q", src, frag, err.Error())
	}
}

func Test_Eval_Constants(t *testing.T) {
	if v := evalOK(t, "2 + 3 * 4", nil); v != 14 {
		t.Fatalf("want 14, got %v", v)
	}
	if v := evalOK(t, "2^3^2", nil); v != 512 {
		t.Fatalf("want 512, got %v", v)
	}
	if v := evalOK(t, "10 % 3", nil); v != 1 {
		t.Fatalf("want 1, got %v", v)
	}
	if v := evalOK(t, "√9 + 3²", nil); v != 12 {
		t.Fatalf("want 12, got %v", v)
	}
}

func Test_Eval_Bindings(t *testing.T) {
	b := map[string]float64{"x": 3, "y": 4}
	if v := evalOK(t, "x² + y²", b); v != 25 {
		t.Fatalf("want 25, got %v", v)
	}
	if v := evalOK(t, "2x + y", b); v != 10 {
		t.Fatalf("want 10, got %v", v)
	}
	// multi-letter identifiers are single variables
	if v := evalOK(t, "rate * 2", map[string]float64{"rate": 1.5}); v != 3 {
		t.Fatalf("want 3, got %v", v)
	}
}

func Test_Eval_UndefinedVariable(t *testing.T) {
	evalErr(t, "x + 1", nil, "undefined variable: x")
	evalErr(t, "a + b", map[string]float64{"a": 1}, "undefined variable: b")
}

func Test_Eval_DivisionByZero(t *testing.T) {
	evalErr(t, "1 / 0", nil, "division by zero")
	evalErr(t, "1 / (x - x)", map[string]float64{"x": 5}, "division by zero")
	evalErr(t, "5 % 0", nil, "modulo by zero")
}

func Test_Eval_SqrtOfNegative(t *testing.T) {
	evalErr(t, "√(0 - 9)", nil, "square root of negative")
}

func Test_Eval_PlusMinus_NotEvaluable(t *testing.T) {
	evalErr(t, "2 ± 3", nil, "±")
}

func Test_Eval_NonFiniteResult(t *testing.T) {
	evalErr(t, "10 ^ 1000 * 10 ^ 1000", nil, "not finite")
}

func Test_Eval_ShortCircuit_FirstErrorWins(t *testing.T) {
	// the left subtree fails before the right one is reached
	_, err := EvaluateExpression("1/0 + missing", nil)
	if err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("want the left subtree's error, got %v", err)
	}
	var ee *EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("want *EvalError, got %T", err)
	}
}

func Test_Eval_ParseErrorPassesThrough(t *testing.T) {
	_, err := EvaluateExpression("2 +", nil)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
}

// ─────────────────────────── cross-oracle property ───────────────────────────

// randConstExpr emits a random constant expression in the ASCII grammar
// both evaluators accept. Exponents stay small so values remain finite.
func randConstExpr(rng *rand.Rand, depth int) string {
	if depth <= 0 || rng.Intn(3) == 0 {
		if rng.Intn(4) == 0 {
			return fmt.Sprintf("%.1f", float64(rng.Intn(90))/10+1)
		}
		return fmt.Sprintf("%d", rng.Intn(9)+1)
	}
	a := randConstExpr(rng, depth-1)
	b := randConstExpr(rng, depth-1)
	switch rng.Intn(5) {
	case 0:
		return "(" + a + " + " + b + ")"
	case 1:
		return "(" + a + " - " + b + ")"
	case 2:
		return "(" + a + " * " + b + ")"
	case 3:
		return "(" + a + " / " + b + ")"
	default:
		return "(" + a + " ^ " + fmt.Sprintf("%d", rng.Intn(3)) + ")"
	}
}

func Test_Eval_AgreesWithOracle_RandomSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		src := randConstExpr(rng, 3)
		ev, eerr := EvaluateExpression(src, nil)
		ov, oerr := SafeEvaluate(src)
		if (eerr == nil) != (oerr == nil) {
			t.Fatalf("sample %d %q: evaluator err=%v, oracle err=%v", i, src, eerr, oerr)
		}
		if eerr != nil {
			continue
		}
		scale := math.Max(1, math.Max(math.Abs(ev), math.Abs(ov)))
		if math.Abs(ev-ov) > 1e-6*scale {
			t.Fatalf("sample %d %q: evaluator %v vs oracle %v", i, src, ev, ov)
		}
	}
}
