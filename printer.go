// printer.go — infix rendering of expression trees.
//
// Two renderers, both pure total functions over the tree:
//
//   - FormatAST: human-readable, precedence-minimal. A child is wrapped in
//     parentheses only when its operator binds looser than its position
//     requires, or equally loose on the associativity-conflicting side.
//     2+3*4 → "2 + 3 * 4";  (2+3)*4 → "(2 + 3) * 4".
//   - CanonicalString: fully parenthesizes every compound node regardless
//     of precedence, so structurally distinct trees can never collide on
//     the same text by accident. This is the form the equivalence checker
//     and canonicalization helpers compare.
package mathexpr

import (
	"strconv"
	"strings"
)

// FormatAST renders the tree as minimal-parenthesis infix text.
func FormatAST(n *Node) string {
	var b strings.Builder
	writeMinimal(&b, n)
	return b.String()
}

// CanonicalString renders the tree with every unary and binary node fully
// parenthesized.
func CanonicalString(n *Node) string {
	var b strings.Builder
	writeCanonical(&b, n)
	return b.String()
}

//// END_OF_PUBLIC

/* ---------- shared helpers ---------- */

// formatNumber renders v in plain decimal so that every printed number
// re-tokenizes; exponent notation is not part of the number grammar.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nodePrec(n *Node) int {
	if n.Kind == BinaryNode {
		return opTable[n.Op].prec
	}
	return 0
}

/* ---------- minimal-parenthesis renderer ---------- */

func writeMinimal(b *strings.Builder, n *Node) {
	switch n.Kind {
	case NumberNode:
		b.WriteString(formatNumber(n.Value))
	case VariableNode:
		b.WriteString(n.Name)
	case UnaryNode:
		writeMinimalUnary(b, n)
	case BinaryNode:
		info := opTable[n.Op]
		writeChild(b, n.Left, info.prec, info.rightAssoc, false)
		b.WriteString(" ")
		b.WriteString(n.Op)
		b.WriteString(" ")
		writeChild(b, n.Right, info.prec, info.rightAssoc, true)
	}
}

func writeMinimalUnary(b *strings.Builder, n *Node) {
	if opTable[n.Op].arity == arityPostfix {
		// the operand of a postfix operator must re-parse as one primary
		if postfixOperandNeedsParens(n.Operand) {
			b.WriteString("(")
			writeMinimal(b, n.Operand)
			b.WriteString(")")
		} else {
			writeMinimal(b, n.Operand)
		}
		b.WriteString(n.Op)
		return
	}
	b.WriteString(n.Op)
	if n.Operand.Kind == BinaryNode ||
		(n.Operand.Kind == NumberNode && n.Operand.Value < 0) {
		b.WriteString("(")
		writeMinimal(b, n.Operand)
		b.WriteString(")")
	} else {
		writeMinimal(b, n.Operand)
	}
}

func postfixOperandNeedsParens(n *Node) bool {
	switch n.Kind {
	case NumberNode:
		return n.Value < 0
	case VariableNode:
		return false
	case UnaryNode:
		return opTable[n.Op].arity != arityPostfix
	}
	return true
}

// writeChild wraps a binary child in parentheses when its precedence is
// lower than required by its position, or equal with conflicting
// associativity. Unary children never need help: prefix operators bind to
// the base of '^' in the grammar, and postfix renderers add their own
// parentheses.
func writeChild(b *strings.Builder, child *Node, parentPrec int, parentRightAssoc, isRight bool) {
	if child.Kind == BinaryNode {
		cp := nodePrec(child)
		need := cp < parentPrec
		if cp == parentPrec {
			if parentRightAssoc {
				need = !isRight
			} else {
				need = isRight
			}
		}
		if need {
			b.WriteString("(")
			writeMinimal(b, child)
			b.WriteString(")")
			return
		}
	}
	writeMinimal(b, child)
}

/* ---------- canonical (always-paren) renderer ---------- */

func writeCanonical(b *strings.Builder, n *Node) {
	switch n.Kind {
	case NumberNode:
		b.WriteString(formatNumber(n.Value))
	case VariableNode:
		b.WriteString(n.Name)
	case UnaryNode:
		b.WriteString("(")
		if opTable[n.Op].arity == arityPostfix {
			writeCanonical(b, n.Operand)
			b.WriteString(n.Op)
		} else {
			b.WriteString(n.Op)
			writeCanonical(b, n.Operand)
		}
		b.WriteString(")")
	case BinaryNode:
		b.WriteString("(")
		writeCanonical(b, n.Left)
		b.WriteString(" ")
		b.WriteString(n.Op)
		b.WriteString(" ")
		writeCanonical(b, n.Right)
		b.WriteString(")")
	}
}
