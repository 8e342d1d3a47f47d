// eval.go — variable-binding numeric evaluation.
//
// EvaluateExpression parses its input and walks the tree recursively.
// Evaluation short-circuits on the first error in any subtree; sibling
// subtrees are not evaluated once a failure is found. Division by zero
// fails explicitly with an *EvalError rather than producing Inf or NaN,
// and every intermediate result is checked to stay finite.
//
// binaryValue / unaryValue hold the single source of truth for operator
// semantics; the simplifier's constant folding uses the same functions so
// folding can never disagree with evaluation.
package mathexpr

import (
	"fmt"
	"math"
)

// EvaluateExpression parses text and evaluates it under the given variable
// bindings (nil is treated as empty). On a parse failure the parse error
// is returned; on an evaluation failure, an *EvalError.
func EvaluateExpression(text string, bindings map[string]float64) (float64, error) {
	ast, err := ParseExpression(text)
	if err != nil {
		return 0, err
	}
	return evalNode(ast, bindings)
}

func evalNode(n *Node, bindings map[string]float64) (float64, error) {
	switch n.Kind {
	case NumberNode:
		return n.Value, nil
	case VariableNode:
		v, ok := bindings[n.Name]
		if !ok {
			return 0, &EvalError{Msg: fmt.Sprintf("undefined variable: %s", n.Name)}
		}
		return v, nil
	case UnaryNode:
		v, err := evalNode(n.Operand, bindings)
		if err != nil {
			return 0, err
		}
		return unaryValue(n.Op, v)
	case BinaryNode:
		l, err := evalNode(n.Left, bindings)
		if err != nil {
			return 0, err
		}
		r, err := evalNode(n.Right, bindings)
		if err != nil {
			return 0, err
		}
		return binaryValue(n.Op, l, r)
	}
	return 0, &EvalError{Msg: "malformed expression tree"}
}

// ───────────────────────────── operator semantics ───────────────────────────

func binaryValue(op string, l, r float64) (float64, error) {
	var v float64
	switch op {
	case "+":
		v = l + r
	case "-":
		v = l - r
	case "*":
		v = l * r
	case "/":
		if r == 0 {
			return 0, &EvalError{Msg: "division by zero"}
		}
		v = l / r
	case "%":
		if r == 0 {
			return 0, &EvalError{Msg: "modulo by zero"}
		}
		v = math.Mod(l, r)
	case "^":
		v = math.Pow(l, r)
	case "±":
		return 0, &EvalError{Msg: "operator ± does not produce a single value"}
	default:
		return 0, &EvalError{Msg: fmt.Sprintf("unknown binary operator %q", op)}
	}
	if !isFinite(v) {
		return 0, &EvalError{Msg: fmt.Sprintf("result of %q is not finite", op)}
	}
	return v, nil
}

func unaryValue(op string, x float64) (float64, error) {
	var v float64
	switch op {
	case "-":
		v = -x
	case "√":
		if x < 0 {
			return 0, &EvalError{Msg: "square root of negative number"}
		}
		v = math.Sqrt(x)
	case "²":
		v = x * x
	case "³":
		v = x * x * x
	case "±":
		return 0, &EvalError{Msg: "operator ± does not produce a single value"}
	default:
		return 0, &EvalError{Msg: fmt.Sprintf("unknown unary operator %q", op)}
	}
	if !isFinite(v) {
		return 0, &EvalError{Msg: fmt.Sprintf("result of %q is not finite", op)}
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
