// ast.go — expression tree and the static operator table.
//
// The AST is a tagged union: a single Node struct whose Kind selects which
// fields are meaningful. Every consumer switches exhaustively on Kind.
// Trees are never mutated in place; simplification and canonicalization
// always allocate fresh nodes, so a parsed tree stays valid after any
// transformation.
package mathexpr

// NodeKind selects the active variant of a Node.
type NodeKind int

const (
	NumberNode NodeKind = iota
	VariableNode
	UnaryNode
	BinaryNode
)

// Node is one vertex of an expression tree. The tree is acyclic and each
// child is exclusively owned by its parent, so all algorithms over it use
// plain structural recursion.
//
// Field usage by Kind:
//
//	NumberNode:   Value
//	VariableNode: Name
//	UnaryNode:    Op, Operand
//	BinaryNode:   Op, Left, Right
type Node struct {
	Kind    NodeKind
	Value   float64
	Name    string
	Op      string
	Operand *Node
	Left    *Node
	Right   *Node
}

func mkNum(v float64) *Node   { return &Node{Kind: NumberNode, Value: v} }
func mkVar(name string) *Node { return &Node{Kind: VariableNode, Name: name} }
func mkUnary(op string, operand *Node) *Node {
	return &Node{Kind: UnaryNode, Op: op, Operand: operand}
}
func mkBinary(op string, l, r *Node) *Node {
	return &Node{Kind: BinaryNode, Op: op, Left: l, Right: r}
}

// ───────────────────────────── operator metadata ────────────────────────────

// opArity classifies how an operator symbol may be used.
type opArity int

const (
	arityBinary     opArity = iota // binary only
	arityPrefix                    // unary prefix only
	arityPostfix                   // unary postfix only
	arityContextual                // unary or binary depending on position
)

// opInfo is the static, read-only metadata for one operator symbol.
// Precedence levels, low to high: additive 10, multiplicative 20,
// power/postfix 30, prefix 40.
type opInfo struct {
	prec       int
	rightAssoc bool
	arity      opArity
}

// opTable covers every operator the core knows, keyed by its normalized
// form. The table is immutable after init, which makes it safe to read
// from any goroutine.
var opTable = map[string]opInfo{
	"+": {prec: 10, arity: arityContextual},
	"-": {prec: 10, arity: arityContextual},
	"±": {prec: 10, arity: arityContextual},
	"*": {prec: 20, arity: arityBinary},
	"/": {prec: 20, arity: arityBinary},
	"%": {prec: 20, arity: arityBinary},
	"^": {prec: 30, rightAssoc: true, arity: arityBinary},
	"²": {prec: 30, arity: arityPostfix},
	"³": {prec: 30, arity: arityPostfix},
	"√": {prec: 40, arity: arityPrefix},
}

// opAliases maps Unicode operator variants to the normalized class used
// for the token's role. The original symbol is kept as display text.
var opAliases = map[rune]string{
	'−': "-",
	'×': "*",
	'·': "*",
	'÷': "/",
}
