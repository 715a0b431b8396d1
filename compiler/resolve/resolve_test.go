package resolve

import (
	"testing"

	"rulex/compiler/ast"
	"rulex/compiler/diagnose"
	"rulex/compiler/feature"
	"rulex/compiler/flavor"
)

func TestCaptureNumbering(t *testing.T) {
	root := &ast.Group{Children: []ast.Rule{
		&ast.Group{Capture: ast.Capture{Capturing: true}, Children: []ast.Rule{&ast.Literal{Text: "a"}}},
		&ast.Group{Capture: ast.Capture{Capturing: true, Name: "x"}, Children: []ast.Rule{&ast.Literal{Text: "b"}}},
	}}

	cs := NewCompileState(feature.All(), flavor.PCRE)
	errs := Resolve(root, cs)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(cs.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(cs.Groups))
	}
	if cs.Groups[0].Index != 1 || cs.Groups[1].Index != 2 {
		t.Errorf("Groups = %+v, want indices 1 and 2", cs.Groups)
	}
	if cs.Names["x"] != 2 {
		t.Errorf("Names[x] = %d, want 2", cs.Names["x"])
	}
}

func TestDuplicateNameIsError(t *testing.T) {
	root := &ast.Group{Children: []ast.Rule{
		&ast.Group{Capture: ast.Capture{Capturing: true, Name: "x"}, Children: []ast.Rule{&ast.Literal{Text: "a"}}},
		&ast.Group{Capture: ast.Capture{Capturing: true, Name: "x"}, Children: []ast.Rule{&ast.Literal{Text: "b"}}},
	}}
	cs := NewCompileState(feature.All(), flavor.PCRE)
	errs := Resolve(root, cs)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
}

func TestUnknownNamedReference(t *testing.T) {
	root := &ast.Group{Children: []ast.Rule{
		&ast.Reference{Kind: ast.ReferenceNamed, Name: "missing"},
	}}
	cs := NewCompileState(feature.All(), flavor.PCRE)
	errs := Resolve(root, cs)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1 (unknown reference)", len(errs))
	}
}

func TestReferenceInLetIsError(t *testing.T) {
	let := ast.Stmt{Kind: ast.StmtLet, Name: "x", Body: &ast.Reference{Kind: ast.ReferenceNumber, Number: 1}}
	root := &ast.StmtExpr{Statement: let, Body: &ast.Literal{Text: "a"}}
	cs := NewCompileState(feature.All(), flavor.PCRE)
	errs := Resolve(root, cs)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1 (reference in let)", len(errs))
	}
	if errs[0].Kind != diagnose.SemanticReferenceInLet {
		t.Errorf("Kind = %v, want ReferenceInLet", errs[0].Kind)
	}
}

func TestGraphemeUnsupportedOnJavaScript(t *testing.T) {
	root := &ast.Grapheme{}
	cs := NewCompileState(feature.All(), flavor.JavaScript)
	errs := Resolve(root, cs)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1 (Grapheme unsupported on JavaScript)", len(errs))
	}
}

func TestGraphemeBuiltinVariableUnsupportedOnJavaScript(t *testing.T) {
	root := &ast.Variable{Name: "Grapheme"}
	cs := NewCompileState(feature.All(), flavor.JavaScript)
	errs := Resolve(root, cs)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1 (Grapheme unsupported on JavaScript via the builtin)", len(errs))
	}
	if errs[0].Kind != diagnose.SemanticUnsupported {
		t.Errorf("Kind = %v, want Unsupported", errs[0].Kind)
	}
}

func TestRelativeReferenceResolvesToSourcePosition(t *testing.T) {
	groupA := &ast.Group{Capture: ast.Capture{Capturing: true}, Children: []ast.Rule{&ast.Literal{Text: "a"}}}
	groupB := &ast.Group{Capture: ast.Capture{Capturing: true}, Children: []ast.Rule{&ast.Literal{Text: "b"}}}
	ref := &ast.Reference{Kind: ast.ReferenceRelative, Relative: -1}
	root := &ast.Group{Children: []ast.Rule{groupA, groupB, ref}}

	cs := NewCompileState(feature.All(), flavor.PCRE)
	errs := Resolve(root, cs)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := cs.ResolvedRelative[ref]; got != 1 {
		t.Errorf("ResolvedRelative[ref] = %d, want 1", got)
	}
}

func TestRelativeReferenceOutOfRangeIsError(t *testing.T) {
	ref := &ast.Reference{Kind: ast.ReferenceRelative, Relative: -1}
	root := &ast.Group{Children: []ast.Rule{ref}}

	cs := NewCompileState(feature.All(), flavor.PCRE)
	errs := Resolve(root, cs)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1 (relative reference out of range)", len(errs))
	}
	if _, ok := cs.ResolvedRelative[ref]; ok {
		t.Errorf("ResolvedRelative should not contain an out-of-range reference")
	}
}

func TestRestrictedFeatureSetRejectsReference(t *testing.T) {
	root := &ast.Reference{Kind: ast.ReferenceNumber, Number: 1}
	cs := NewCompileState(feature.FromNames([]string{"numbered_groups"}), flavor.PCRE)
	errs := Resolve(root, cs)
	found := false
	for _, e := range errs {
		if e.Kind == diagnose.SemanticUnsupported {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Unsupported error for `references`, got %v", errs)
	}
}
