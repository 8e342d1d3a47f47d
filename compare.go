// compare.go — algebraic equivalence via canonical normal forms.
//
// OVERVIEW
// --------
// CompareExpressions decides whether two expression strings denote the
// same value under the algebraic laws the core knows: commutativity and
// associativity of '+' and '*', coefficient grouping (x + x ≡ 2*x),
// identity elimination, and one bounded pass of distribution
// (a*(b+c) ≡ a*b + a*c). It is total: a parse failure on either side is
// simply "not equivalent".
//
// The pipeline per side: parse → simplify → normalize. Normalization
// rebuilds the tree into a normal form where
//
//   - subtraction and unary minus become multiplication by -1,
//   - '²'/'³' become '^2'/'^3',
//   - nested '+' and '*' chains are flattened into operand lists,
//   - numeric operands are folded into a single constant ('+') or
//     coefficient ('*'),
//   - identical '+' operands merge by accumulating their coefficients,
//   - operand lists are re-ordered by the total order over their own
//     canonical string form.
//
// Two trees are equivalent iff their normal forms render to identical
// canonical strings — directly, or after the distributive pass. The pass
// carries a hard cap on generated terms; blowing the cap yields
// "not equivalent" rather than an unbounded computation.
package mathexpr

import (
	"math"
	"sort"
)

const (
	// foldEpsilon is the relative tolerance for deciding that two folded
	// constants are the same number.
	foldEpsilon = 1e-9

	// oracleEpsilon is the looser tolerance used when cross-checking the
	// evaluator against the independent safe oracle.
	oracleEpsilon = 1e-6

	// distributeTermCap bounds the number of terms one distributive
	// expansion may generate per side.
	distributeTermCap = 64
)

// CompareExpressions reports whether a and b are algebraically equivalent.
// Never panics; parse failure on either side yields false.
func CompareExpressions(a, b string) bool {
	ta, err := ParseExpression(a)
	if err != nil {
		return false
	}
	tb, err := ParseExpression(b)
	if err != nil {
		return false
	}
	sa, sb := SimplifyAST(ta), SimplifyAST(tb)

	// pure constants compare numerically, within tolerance
	if sa.Kind == NumberNode && sb.Kind == NumberNode {
		return approxEqual(sa.Value, sb.Value, foldEpsilon)
	}

	na, nb := normalize(sa), normalize(sb)
	if CanonicalString(na) == CanonicalString(nb) {
		return true
	}

	// one bounded distributive pass per side
	budgetA := distributeTermCap
	ea, ok := distribute(na, &budgetA)
	if !ok {
		return false
	}
	budgetB := distributeTermCap
	eb, ok := distribute(nb, &budgetB)
	if !ok {
		return false
	}
	return CanonicalString(normalize(ea)) == CanonicalString(normalize(eb))
}

// CanonicalizeExpression parses text and returns the canonical string of
// its simplified normal form. Upstream collaborators use it to compare
// extracted sub-expressions textually and to detect algebraically trivial
// results (x - x canonicalizes to "0"). Returns ok=false when text does
// not parse.
func CanonicalizeExpression(text string) (string, bool) {
	ast, err := ParseExpression(text)
	if err != nil {
		return "", false
	}
	return CanonicalString(normalize(SimplifyAST(ast))), true
}

func approxEqual(a, b, eps float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= eps*scale
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

// normalize rebuilds n into the canonical normal form described in the
// file header. It is idempotent and never mutates its input.
func normalize(n *Node) *Node {
	switch n.Kind {
	case NumberNode:
		return mkNum(n.Value)
	case VariableNode:
		return mkVar(n.Name)
	case UnaryNode:
		switch n.Op {
		case "-":
			return normalizeProduct(mkBinary("*", mkNum(-1), n.Operand))
		case "²":
			return normalize(mkBinary("^", n.Operand, mkNum(2)))
		case "³":
			return normalize(mkBinary("^", n.Operand, mkNum(3)))
		default: // '√', '±'
			return mkUnary(n.Op, normalize(n.Operand))
		}
	case BinaryNode:
		switch n.Op {
		case "+", "-":
			return normalizeSum(n)
		case "*":
			return normalizeProduct(n)
		default: // '/', '%', '^', '±' are neither commutative nor flattened
			return mkBinary(n.Op, normalize(n.Left), normalize(n.Right))
		}
	}
	return n
}

/* ---------- sums: flatten, group coefficients, sort ---------- */

type sumAccum struct {
	constant float64
	coeffs   map[string]float64
	keys     map[string]*Node
}

func normalizeSum(n *Node) *Node {
	acc := &sumAccum{coeffs: map[string]float64{}, keys: map[string]*Node{}}
	collectTerms(n, 1, acc)

	terms := make([]*Node, 0, len(acc.coeffs)+1)
	for ks, c := range acc.coeffs {
		switch {
		case math.Abs(c) <= foldEpsilon:
			continue
		case c == 1:
			terms = append(terms, acc.keys[ks])
		default:
			terms = append(terms, mkBinary("*", mkNum(c), acc.keys[ks]))
		}
	}
	if math.Abs(acc.constant) > foldEpsilon {
		terms = append(terms, mkNum(acc.constant))
	}
	if len(terms) == 0 {
		return mkNum(0)
	}
	sort.Slice(terms, func(i, j int) bool {
		return CanonicalString(terms[i]) < CanonicalString(terms[j])
	})
	return chain("+", terms)
}

// collectTerms walks the +/- spine of n, pushing each leaf term into acc
// with its accumulated sign. Unary minus along the spine flips the sign.
func collectTerms(n *Node, sign float64, acc *sumAccum) {
	switch {
	case n.Kind == BinaryNode && n.Op == "+":
		collectTerms(n.Left, sign, acc)
		collectTerms(n.Right, sign, acc)
		return
	case n.Kind == BinaryNode && n.Op == "-":
		collectTerms(n.Left, sign, acc)
		collectTerms(n.Right, -sign, acc)
		return
	case n.Kind == UnaryNode && n.Op == "-":
		collectTerms(n.Operand, -sign, acc)
		return
	}
	addTerm(normalize(n), sign, acc)
}

// addTerm merges one normalized term into the accumulator, splitting off
// its numeric coefficient so that x + x and 2*x meet in the same bucket.
func addTerm(m *Node, sign float64, acc *sumAccum) {
	// a normalized child can itself be a sum (e.g. the spine contained
	// -(a+b), whose operand flattened independently); fold its chain in
	if m.Kind == BinaryNode && m.Op == "+" {
		collectTerms(m, sign, acc)
		return
	}
	coeff, key := splitCoeff(m)
	coeff *= sign
	if key == nil {
		acc.constant += coeff
		return
	}
	ks := CanonicalString(key)
	if _, seen := acc.coeffs[ks]; !seen {
		acc.keys[ks] = key
	}
	acc.coeffs[ks] += coeff
}

// splitCoeff separates a normalized term into numeric coefficient and
// symbolic rest. Normalized products always carry their coefficient as
// the leftmost factor.
func splitCoeff(m *Node) (float64, *Node) {
	if m.Kind == NumberNode {
		return m.Value, nil
	}
	if m.Kind == BinaryNode && m.Op == "*" && m.Left.Kind == NumberNode {
		return m.Left.Value, m.Right
	}
	return 1, m
}

/* ---------- products: flatten, fold coefficient, sort ---------- */

func normalizeProduct(n *Node) *Node {
	coeff := 1.0
	var factors []*Node
	collectFactors(n, &coeff, &factors)

	if coeff == 0 {
		return mkNum(0)
	}
	if len(factors) == 0 {
		return mkNum(coeff)
	}
	factors = mergeRepeatedFactors(factors)
	sort.Slice(factors, func(i, j int) bool {
		return CanonicalString(factors[i]) < CanonicalString(factors[j])
	})
	body := chain("*", factors)
	if coeff == 1 {
		return body
	}
	return mkBinary("*", mkNum(coeff), body)
}

// mergeRepeatedFactors replaces k identical factors with one '^ k' node,
// so distribution's x*x meets a literal x^2. It only counts repetition;
// it never adds exponents of pre-existing power nodes. Sum factors are
// left unmerged: distribution only expands '*' nodes, so folding
// (x+1)*(x+1) into (x+1)^2 here would hide the product from the
// expansion pass.
func mergeRepeatedFactors(factors []*Node) []*Node {
	counts := map[string]int{}
	first := map[string]*Node{}
	var order []string
	out := make([]*Node, 0, len(factors))
	for _, f := range factors {
		if f.Kind == BinaryNode && f.Op == "+" {
			out = append(out, f)
			continue
		}
		ks := CanonicalString(f)
		if counts[ks] == 0 {
			first[ks] = f
			order = append(order, ks)
		}
		counts[ks]++
	}
	for _, ks := range order {
		f := first[ks]
		if c := counts[ks]; c > 1 {
			f = mkBinary("^", f, mkNum(float64(c)))
		}
		out = append(out, f)
	}
	return out
}

func collectFactors(n *Node, coeff *float64, out *[]*Node) {
	if n.Kind == BinaryNode && n.Op == "*" {
		collectFactors(n.Left, coeff, out)
		collectFactors(n.Right, coeff, out)
		return
	}
	appendFactor(normalize(n), coeff, out)
}

// appendFactor flattens an already-normalized factor into the product:
// nested products open up, numbers fold into the coefficient.
func appendFactor(m *Node, coeff *float64, out *[]*Node) {
	if m.Kind == BinaryNode && m.Op == "*" {
		appendFactor(m.Left, coeff, out)
		appendFactor(m.Right, coeff, out)
		return
	}
	if m.Kind == NumberNode {
		*coeff *= m.Value
		return
	}
	*out = append(*out, m)
}

// chain folds operands into a left-associative binary spine.
func chain(op string, parts []*Node) *Node {
	n := parts[0]
	for _, p := range parts[1:] {
		n = mkBinary(op, n, p)
	}
	return n
}

/* ---------- bounded distributive expansion ---------- */

// distribute performs one bottom-up distributive pass over a normalized
// tree: every product with a sum operand is expanded pairwise. remaining
// is the term budget; ok=false means the cap was exceeded and the caller
// must treat the comparison as indeterminate.
func distribute(n *Node, remaining *int) (*Node, bool) {
	switch n.Kind {
	case NumberNode:
		return mkNum(n.Value), true
	case VariableNode:
		return mkVar(n.Name), true
	case UnaryNode:
		op, ok := distribute(n.Operand, remaining)
		if !ok {
			return nil, false
		}
		return mkUnary(n.Op, op), true
	case BinaryNode:
		l, ok := distribute(n.Left, remaining)
		if !ok {
			return nil, false
		}
		r, ok := distribute(n.Right, remaining)
		if !ok {
			return nil, false
		}
		if n.Op != "*" {
			return mkBinary(n.Op, l, r), true
		}
		lt := sumChain(l)
		rt := sumChain(r)
		if len(lt) == 1 && len(rt) == 1 {
			return mkBinary("*", l, r), true
		}
		*remaining -= len(lt) * len(rt)
		if *remaining < 0 {
			return nil, false
		}
		products := make([]*Node, 0, len(lt)*len(rt))
		for _, a := range lt {
			for _, b := range rt {
				products = append(products, mkBinary("*", a, b))
			}
		}
		return chain("+", products), true
	}
	return n, true
}

// sumChain flattens the '+' spine of a normalized tree into its operands.
func sumChain(n *Node) []*Node {
	if n.Kind == BinaryNode && n.Op == "+" {
		return append(sumChain(n.Left), sumChain(n.Right)...)
	}
	return []*Node{n}
}
