// simplify.go — bottom-up constant folding and identity elimination.
//
// SimplifyAST is pure, total, and deterministic. It recurses post-order:
// children are simplified first, then the rule set is applied once at the
// current node. Because children arrive already simplified, a single pass
// handles nested cases like (x+0)*1 — the inner '+' collapses to x, so
// the outer '*' sees (x, 1) and reduces to x — and --x, where the outer
// node recognizes the double negation once the inner Unary is in place.
//
// Rules applied at each node:
//
//	both operands numeric      → fold via operator semantics (eval.go)
//	A + 0, 0 + A               → A
//	A - 0                      → A
//	A * 1, 1 * A               → A
//	A * 0, 0 * A               → 0
//	A / 1                      → A
//	A ^ 1                      → A
//	A ^ 0                      → 1
//	-(-A)                      → A
//	-(Number n)                → Number(-n)
//
// Division by a literal zero is deliberately left unfolded: folding would
// have to produce a non-finite Number, and error reporting belongs to the
// evaluator, not the rewriter.
package mathexpr

// SimplifyAST returns a simplified copy of the tree. The input tree is
// never mutated and stays valid.
func SimplifyAST(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case NumberNode:
		return mkNum(n.Value)
	case VariableNode:
		return mkVar(n.Name)
	case UnaryNode:
		return simplifyUnary(n.Op, SimplifyAST(n.Operand))
	case BinaryNode:
		return simplifyBinary(n.Op, SimplifyAST(n.Left), SimplifyAST(n.Right))
	}
	return n
}

func simplifyUnary(op string, operand *Node) *Node {
	if op == "-" {
		// double negation: -(-A) → A
		if operand.Kind == UnaryNode && operand.Op == "-" {
			return operand.Operand
		}
		// literal negation: -(n) → Number(-n)
		if operand.Kind == NumberNode {
			return mkNum(-operand.Value)
		}
	}
	if operand.Kind == NumberNode {
		if v, err := unaryValue(op, operand.Value); err == nil {
			return mkNum(v)
		}
	}
	return mkUnary(op, operand)
}

func simplifyBinary(op string, l, r *Node) *Node {
	// constant fold; a folding error (division by zero, non-finite result)
	// leaves the node intact
	if l.Kind == NumberNode && r.Kind == NumberNode {
		if v, err := binaryValue(op, l.Value, r.Value); err == nil {
			return mkNum(v)
		}
	}

	switch op {
	case "+":
		if isNumber(l, 0) {
			return r
		}
		if isNumber(r, 0) {
			return l
		}
	case "-":
		if isNumber(r, 0) {
			return l
		}
	case "*":
		if isNumber(l, 0) || isNumber(r, 0) {
			return mkNum(0)
		}
		if isNumber(l, 1) {
			return r
		}
		if isNumber(r, 1) {
			return l
		}
	case "/":
		if isNumber(r, 1) {
			return l
		}
	case "^":
		if isNumber(r, 1) {
			return l
		}
		if isNumber(r, 0) {
			return mkNum(1)
		}
	}
	return mkBinary(op, l, r)
}

func isNumber(n *Node, v float64) bool {
	return n.Kind == NumberNode && n.Value == v
}
