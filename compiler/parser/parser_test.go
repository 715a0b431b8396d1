package parser

import (
	"testing"

	"rulex/compiler/ast"
	"rulex/compiler/diagnose"
	"rulex/compiler/lexer"
)

func parse(t *testing.T, src string) Result {
	t.Helper()
	sc := lexer.NewScanner([]byte(src))
	toks := sc.ScanTokens()
	if len(sc.Errors) > 0 {
		t.Fatalf("lex errors for %q: %v", src, sc.Errors)
	}
	return Parse(toks)
}

func TestParseLiteral(t *testing.T) {
	res := parse(t, `"foo"`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	lit, ok := res.Root.(*ast.Literal)
	if !ok {
		t.Fatalf("root = %T, want *ast.Literal", res.Root)
	}
	if lit.Text != "foo" {
		t.Errorf("Text = %q, want %q", lit.Text, "foo")
	}
}

func TestParseAlternation(t *testing.T) {
	res := parse(t, `"ab" | "cd"`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	alt, ok := res.Root.(*ast.Alternation)
	if !ok {
		t.Fatalf("root = %T, want *ast.Alternation", res.Root)
	}
	if len(alt.Branches) != 2 {
		t.Fatalf("len(Branches) = %d, want 2", len(alt.Branches))
	}
}

func TestParseCapturingGroup(t *testing.T) {
	res := parse(t, `:name("ab" | "cd")`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	g, ok := res.Root.(*ast.Group)
	if !ok {
		t.Fatalf("root = %T, want *ast.Group", res.Root)
	}
	if !g.Capture.Capturing || g.Capture.Name != "name" {
		t.Errorf("Capture = %+v, want capturing group named %q", g.Capture, "name")
	}
}

func TestParseRepetitionLazy(t *testing.T) {
	res := parse(t, `'a'+ lazy`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	rep, ok := res.Root.(*ast.Repetition)
	if !ok {
		t.Fatalf("root = %T, want *ast.Repetition", res.Root)
	}
	if rep.Quantifier != ast.QuantifierLazy {
		t.Errorf("Quantifier = %v, want Lazy", rep.Quantifier)
	}
	if rep.Kind.Min != 1 || rep.Kind.Max != nil {
		t.Errorf("Kind = %+v, want {1, inf}", rep.Kind)
	}
}

func TestParseRepetitionChainRejectsQuestionAfterPlus(t *testing.T) {
	res := parse(t, `'a'+?`)
	if len(res.Errors) == 0 {
		t.Fatalf("expected a QuestionMarkAfterRepetition error")
	}
}

func TestParseCharClass(t *testing.T) {
	res := parse(t, `[ascii_digit 'a'-'z']`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	cc, ok := res.Root.(*ast.CharClass)
	if !ok {
		t.Fatalf("root = %T, want *ast.CharClass", res.Root)
	}
	if len(cc.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(cc.Items))
	}
	if cc.Items[1].Kind != ast.ItemRange || cc.Items[1].Lo != 'a' || cc.Items[1].Hi != 'z' {
		t.Errorf("Items[1] = %+v, want range a-z", cc.Items[1])
	}
}

func TestParseEmptyCharClassIsError(t *testing.T) {
	res := parse(t, `[]`)
	if len(res.Errors) == 0 {
		t.Fatalf("expected a CharClass(Empty) error")
	}
}

func TestParseReferenceByNumberAndName(t *testing.T) {
	res := parse(t, `:(("a")) ::1`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	g, ok := res.Root.(*ast.Group)
	if !ok || len(g.Children) != 2 {
		t.Fatalf("root = %#v, want a 2-child group", res.Root)
	}
	ref, ok := g.Children[1].(*ast.Reference)
	if !ok || ref.Kind != ast.ReferenceNumber || ref.Number != 1 {
		t.Errorf("Children[1] = %+v, want Reference(Number=1)", g.Children[1])
	}
}

func TestParseRange(t *testing.T) {
	res := parse(t, `range '0'-'255'`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	r, ok := res.Root.(*ast.Range)
	if !ok {
		t.Fatalf("root = %T, want *ast.Range", res.Root)
	}
	if r.Radix != 10 {
		t.Errorf("Radix = %d, want 10", r.Radix)
	}
}

func TestParseRangeStripsLeadingZeros(t *testing.T) {
	res := parse(t, `range '00'-'10'`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	r, ok := res.Root.(*ast.Range)
	if !ok {
		t.Fatalf("root = %T, want *ast.Range", res.Root)
	}
	if len(r.DigitsLo) != 1 || r.DigitsLo[0] != 0 {
		t.Errorf("DigitsLo = %v, want [0] (leading zero stripped)", r.DigitsLo)
	}
	if len(r.DigitsHi) != 2 || r.DigitsHi[0] != 1 || r.DigitsHi[1] != 0 {
		t.Errorf("DigitsHi = %v, want [1 0]", r.DigitsHi)
	}
}

func TestParseRangeAllZerosStaysOneDigit(t *testing.T) {
	res := parse(t, `range '000'-'000'`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	r, ok := res.Root.(*ast.Range)
	if !ok {
		t.Fatalf("root = %T, want *ast.Range", res.Root)
	}
	if len(r.DigitsLo) != 1 || r.DigitsLo[0] != 0 {
		t.Errorf("DigitsLo = %v, want [0]", r.DigitsLo)
	}
}

func TestParseRangeDescendingIsError(t *testing.T) {
	res := parse(t, `range '9'-'1'`)
	if len(res.Errors) == 0 {
		t.Fatalf("expected a RangeIsNotIncreasing error")
	}
}

func TestParseLetAndVariable(t *testing.T) {
	res := parse(t, `let x = "a"; x+`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	se, ok := res.Root.(*ast.StmtExpr)
	if !ok {
		t.Fatalf("root = %T, want *ast.StmtExpr", res.Root)
	}
	if se.Statement.Kind != ast.StmtLet || se.Statement.Name != "x" {
		t.Errorf("Statement = %+v, want let x", se.Statement)
	}
}

func TestParseDuplicateLetIsError(t *testing.T) {
	res := parse(t, `let x = "a"; let x = "b"; x`)
	if len(res.Errors) == 0 {
		t.Fatalf("expected a LetBindingExists error")
	}
}

func TestParseNegation(t *testing.T) {
	res := parse(t, `!%`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	neg, ok := res.Root.(*ast.Negation)
	if !ok {
		t.Fatalf("root = %T, want *ast.Negation", res.Root)
	}
	if _, ok := neg.Inner.(*ast.Boundary); !ok {
		t.Errorf("Inner = %T, want *ast.Boundary", neg.Inner)
	}
}

func TestParseLookahead(t *testing.T) {
	res := parse(t, `>> "x"`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	la, ok := res.Root.(*ast.Lookaround)
	if !ok {
		t.Fatalf("root = %T, want *ast.Lookaround", res.Root)
	}
	if la.Direction != ast.LookaroundAhead {
		t.Errorf("Direction = %v, want Ahead", la.Direction)
	}
}

func TestParseDeprecatedBoundaryLiteralsWarn(t *testing.T) {
	res := parse(t, `<% "a" %>`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("len(Warnings) = %d, want 2", len(res.Warnings))
	}
}

func TestParseBareDotIsError(t *testing.T) {
	res := parse(t, `.`)
	if len(res.Errors) == 0 {
		t.Fatalf("expected a Dot parse error")
	}
}

func TestParseDeprecatedBracketDotWarns(t *testing.T) {
	res := parse(t, `[.]`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Kind != diagnose.WarningDeprecationDot {
		t.Fatalf("Warnings = %+v, want one Deprecation(Dot)", res.Warnings)
	}
}
