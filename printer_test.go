// printer_test.go
package mathexpr

import "testing"

func wantFormat(t *testing.T, src, want string) {
	t.Helper()
	if got := FormatAST(parse(t, src)); got != want {
		t.Fatalf("FormatAST(%q): want %q, got %q", src, want, got)
	}
}

func Test_Printer_MinimalParens_DropsRedundant(t *testing.T) {
	wantFormat(t, "2 + (3 * 4)", "2 + 3 * 4")
	wantFormat(t, "((x)) + ((y))", "x + y")
	wantFormat(t, "(x ^ 2) + 1", "x ^ 2 + 1")
}

func Test_Printer_MinimalParens_KeepsRequired(t *testing.T) {
	wantFormat(t, "(2 + 3) * 4", "(2 + 3) * 4")
	wantFormat(t, "2 / (3 * 4)", "2 / (3 * 4)")
	wantFormat(t, "(x + 1) ^ 2", "(x + 1) ^ 2")
}

func Test_Printer_Associativity_Parens(t *testing.T) {
	// left-assoc: right-nested subtraction keeps its parens
	wantFormat(t, "10 - (3 - 2)", "10 - (3 - 2)")
	wantFormat(t, "(10 - 3) - 2", "10 - 3 - 2")
	// right-assoc: left-nested power keeps its parens
	wantFormat(t, "(2 ^ 3) ^ 2", "(2 ^ 3) ^ 2")
	wantFormat(t, "2 ^ (3 ^ 2)", "2 ^ 3 ^ 2")
}

func Test_Printer_Unary(t *testing.T) {
	wantFormat(t, "-x", "-x")
	wantFormat(t, "-(x + 1)", "-(x + 1)")
	wantFormat(t, "√(x + 1)", "√(x + 1)")
	wantFormat(t, "√x + 1", "√x + 1")
	wantFormat(t, "x²", "x²")
	wantFormat(t, "(x + 1)²", "(x + 1)²")
	wantFormat(t, "-x²", "-x²")
}

func Test_Printer_NormalizesUnicodeToASCII(t *testing.T) {
	// display uses the normalized operator class, not the source glyph
	wantFormat(t, "6 ÷ 2 × 3", "6 / 2 * 3")
	wantFormat(t, "a − b", "a - b")
}

func Test_Printer_NumbersStayDecimal(t *testing.T) {
	// folded constants must re-tokenize, so no exponent notation
	got := FormatAST(SimplifyAST(parse(t, "2 ^ 30")))
	if got != "1073741824" {
		t.Fatalf("2^30: want plain decimal, got %q", got)
	}
	wantFormat(t, "0.5", "0.5")
}

func Test_Printer_Canonical_FullParens(t *testing.T) {
	cases := [][2]string{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"-x", "(-x)"},
		{"x²", "(x²)"},
		{"√(a + b)", "(√(a + b))"},
		{"2 ^ 3 ^ 2", "(2 ^ (3 ^ 2))"},
	}
	for _, c := range cases {
		if got := CanonicalString(parse(t, c[0])); got != c[1] {
			t.Fatalf("CanonicalString(%q): want %q, got %q", c[0], c[1], got)
		}
	}
}

func Test_Printer_Canonical_DistinguishesShapes(t *testing.T) {
	a := CanonicalString(parse(t, "(2 + 3) * 4"))
	b := CanonicalString(parse(t, "2 + 3 * 4"))
	if a == b {
		t.Fatalf("structurally different trees collided on %q", a)
	}
}

// FormatAST output must parse back into the identical tree.
func Test_Printer_RoundTrip(t *testing.T) {
	sources := []string{
		"2 + 3 * 4",
		"(2 + 3) * 4",
		"2 ^ 3 ^ 2",
		"(2 ^ 3) ^ 2",
		"-x² + √(y + 1)",
		"a / (b * c) - d % e",
		"10 - (3 - 2)",
		"2 * -x",
		"x ± 1",
	}
	for _, src := range sources {
		orig := parse(t, src)
		rendered := FormatAST(orig)
		back, err := ParseExpression(rendered)
		if err != nil {
			t.Fatalf("%q rendered to unparseable %q: %v", src, rendered, err)
		}
		if CanonicalString(back) != CanonicalString(orig) {
			t.Fatalf("%q: round trip changed the tree: %q → %q",
				src, CanonicalString(orig), CanonicalString(back))
		}
	}
}
