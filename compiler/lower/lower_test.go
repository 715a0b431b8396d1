package lower

import (
	"testing"

	"rulex/compiler/ast"
	"rulex/compiler/diagnose"
	"rulex/compiler/feature"
	"rulex/compiler/flavor"
	"rulex/compiler/regexir"
	"rulex/compiler/resolve"
)

func compile(t *testing.T, root ast.Rule) (regexir.Node, []*diagnose.SemanticError) {
	t.Helper()
	cs := resolve.NewCompileState(feature.All(), flavor.PCRE)
	if errs := resolve.Resolve(root, cs); len(errs) != 0 {
		t.Fatalf("resolve errors: %v", errs)
	}
	node, errs := New(cs).Lower(root)
	return node, errs
}

func TestLowerLiteral(t *testing.T) {
	node, errs := compile(t, &ast.Literal{Text: "abc"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	lit, ok := node.(*regexir.Literal)
	if !ok || lit.Text != "abc" {
		t.Fatalf("got %#v, want Literal{abc}", node)
	}
}

func TestLowerCapturingGroupUsesAssignedIndex(t *testing.T) {
	group := &ast.Group{
		Capture:  ast.Capture{Capturing: true, Name: "x"},
		Children: []ast.Rule{&ast.Literal{Text: "a"}},
	}
	node, errs := compile(t, group)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	g, ok := node.(*regexir.Group)
	if !ok || !g.Capturing || g.Name != "x" || g.Index != 1 {
		t.Fatalf("got %#v, want capturing Group index 1 named x", node)
	}
}

func TestLowerVariableBuiltinGrapheme(t *testing.T) {
	node, errs := compile(t, &ast.Variable{Name: "G"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := node.(*regexir.Grapheme); !ok {
		t.Fatalf("got %#v, want Grapheme", node)
	}
}

func TestLowerRecursiveVariableIsError(t *testing.T) {
	cs := resolve.NewCompileState(feature.All(), flavor.PCRE)
	cs.Variables["loop"] = &ast.Variable{Name: "loop"}
	root := &ast.Variable{Name: "loop"}
	if errs := resolve.Resolve(root, cs); len(errs) != 0 {
		t.Fatalf("resolve errors: %v", errs)
	}
	_, errs := New(cs).Lower(root)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1 (recursive variable)", len(errs))
	}
}

func TestLowerNegatedCharClassFlipsPolarity(t *testing.T) {
	cc := &ast.CharClass{Items: []ast.Item{{Kind: ast.ItemChar, Lo: 'a'}}}
	neg := &ast.Negation{Inner: cc}
	node, errs := compile(t, neg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ir, ok := node.(*regexir.CharClass)
	if !ok || !ir.Set.Negative {
		t.Fatalf("got %#v, want negated CharClass", node)
	}
}

func TestLowerNegatedWordBoundaryToggles(t *testing.T) {
	neg := &ast.Negation{Inner: &ast.Boundary{Kind: ast.BoundaryWord}}
	node, errs := compile(t, neg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	wb, ok := node.(*regexir.WordBoundary)
	if !ok || !wb.Negate {
		t.Fatalf("got %#v, want negated WordBoundary", node)
	}
}

func TestLowerNegationOfLiteralIsNotSupported(t *testing.T) {
	neg := &ast.Negation{Inner: &ast.Literal{Text: "a"}}
	_, errs := compile(t, neg)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1 (not supported)", len(errs))
	}
}

func TestLowerDoubleNegationCancels(t *testing.T) {
	neg := &ast.Negation{Inner: &ast.Negation{Inner: &ast.Boundary{Kind: ast.BoundaryWord}}}
	node, errs := compile(t, neg)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	wb, ok := node.(*regexir.WordBoundary)
	if !ok || wb.Negate {
		t.Fatalf("got %#v, want plain (non-negated) WordBoundary", node)
	}
}

func TestLowerRelativeBackrefUsesSourcePosition(t *testing.T) {
	// :("a") :("b") ::-1 - the relative reference follows two groups, so
	// ::-1 must resolve to group 1, not to (total + (-1) + 1) = 2.
	groupA := &ast.Group{Capture: ast.Capture{Capturing: true}, Children: []ast.Rule{&ast.Literal{Text: "a"}}}
	groupB := &ast.Group{Capture: ast.Capture{Capturing: true}, Children: []ast.Rule{&ast.Literal{Text: "b"}}}
	ref := &ast.Reference{Kind: ast.ReferenceRelative, Relative: -1}
	root := &ast.Group{Children: []ast.Rule{groupA, groupB, ref}}

	node, errs := compile(t, root)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	g, ok := node.(*regexir.Group)
	if !ok || len(g.Children) != 3 {
		t.Fatalf("got %#v, want 3-child Group", node)
	}
	back, ok := g.Children[2].(*regexir.Backref)
	if !ok || back.Number != 1 {
		t.Fatalf("got %#v, want Backref{Number: 1}", g.Children[2])
	}
}

func TestLowerRelativeBackrefForwardReference(t *testing.T) {
	// :("a") ::+1 :("b") - the reference precedes groupB, so ::+1 must
	// resolve to group 2, not to the clamped value 1.
	groupA := &ast.Group{Capture: ast.Capture{Capturing: true}, Children: []ast.Rule{&ast.Literal{Text: "a"}}}
	ref := &ast.Reference{Kind: ast.ReferenceRelative, Relative: 1}
	groupB := &ast.Group{Capture: ast.Capture{Capturing: true}, Children: []ast.Rule{&ast.Literal{Text: "b"}}}
	root := &ast.Group{Children: []ast.Rule{groupA, ref, groupB}}

	node, errs := compile(t, root)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	g, ok := node.(*regexir.Group)
	if !ok || len(g.Children) != 3 {
		t.Fatalf("got %#v, want 3-child Group", node)
	}
	back, ok := g.Children[1].(*regexir.Backref)
	if !ok || back.Number != 2 {
		t.Fatalf("got %#v, want Backref{Number: 2}", g.Children[1])
	}
}

func TestLowerRangeSingleDigit(t *testing.T) {
	r := &ast.Range{DigitsLo: []uint8{2}, DigitsHi: []uint8{7}, Radix: 10}
	node, errs := compile(t, r)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	cc, ok := node.(*regexir.CharClass)
	if !ok {
		t.Fatalf("got %#v, want CharClass", node)
	}
	if len(cc.Set.Intervals) != 1 || cc.Set.Intervals[0].Lo != '2' || cc.Set.Intervals[0].Hi != '8' {
		t.Fatalf("got interval %#v, want ['2','8')", cc.Set.Intervals)
	}
}

func TestLowerRangeCrossesDigitCount(t *testing.T) {
	// 5..12 in base 10: single digit 5..9, then two digits 10..12.
	r := &ast.Range{DigitsLo: []uint8{5}, DigitsHi: []uint8{1, 2}, Radix: 10}
	node, errs := compile(t, r)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	alt, ok := node.(*regexir.Alt)
	if !ok {
		t.Fatalf("got %#v, want Alt", node)
	}
	if len(alt.Branches) == 0 {
		t.Fatalf("expected at least one branch")
	}
}

func TestLowerRangeSameBoundRoundTrips(t *testing.T) {
	r := &ast.Range{DigitsLo: []uint8{4, 2}, DigitsHi: []uint8{4, 2}, Radix: 10}
	node, errs := compile(t, r)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	g, ok := node.(*regexir.Group)
	if !ok || len(g.Children) != 2 {
		t.Fatalf("got %#v, want 2-digit literal concatenation", node)
	}
}

func TestLowerRangeHexDigitMatchesBothCases(t *testing.T) {
	// range 'a'-'f' base 16: a single hex digit, must match both cases.
	r := &ast.Range{DigitsLo: []uint8{10}, DigitsHi: []uint8{15}, Radix: 16}
	node, errs := compile(t, r)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	cc, ok := node.(*regexir.CharClass)
	if !ok {
		t.Fatalf("got %#v, want CharClass", node)
	}
	var hasLower, hasUpper bool
	for _, iv := range cc.Set.Intervals {
		if iv.Lo == 'a' && iv.Hi == 'g' {
			hasLower = true
		}
		if iv.Lo == 'A' && iv.Hi == 'G' {
			hasUpper = true
		}
	}
	if !hasLower || !hasUpper {
		t.Fatalf("got intervals %#v, want both 'a'-'f' and 'A'-'F'", cc.Set.Intervals)
	}
}
