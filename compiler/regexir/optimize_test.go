package regexir

import "testing"

func TestOptimizeFlattensNestedConcat(t *testing.T) {
	inner := &Group{Children: []Node{&Literal{Text: "a"}, &Literal{Text: "b"}}}
	outer := &Group{Children: []Node{inner, &Literal{Text: "c"}}}

	got := Optimize(outer)
	g, ok := got.(*Group)
	if !ok {
		t.Fatalf("Optimize result = %T, want *Group", got)
	}
	if len(g.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3 (flattened)", len(g.Children))
	}
}

func TestOptimizeDropsEmptyFromConcat(t *testing.T) {
	n := &Group{Children: []Node{&Literal{Text: "a"}, &Empty{}, &Literal{Text: "b"}}}
	got := Optimize(n).(*Group)
	if len(got.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(got.Children))
	}
}

func TestOptimizeEmptyConcatBecomesEmpty(t *testing.T) {
	n := &Group{Children: []Node{&Empty{}, &Empty{}}}
	got := Optimize(n)
	if _, ok := got.(*Empty); !ok {
		t.Fatalf("Optimize result = %T, want *Empty", got)
	}
}

func TestOptimizeDedupesAltBranches(t *testing.T) {
	n := &Alt{Branches: []Node{&Literal{Text: "a"}, &Literal{Text: "b"}, &Literal{Text: "a"}}}
	got := Optimize(n).(*Alt)
	if len(got.Branches) != 2 {
		t.Fatalf("len(Branches) = %d, want 2 (deduped)", len(got.Branches))
	}
}

func TestOptimizeSingleBranchAltCollapses(t *testing.T) {
	n := &Alt{Branches: []Node{&Literal{Text: "a"}}}
	got := Optimize(n)
	if _, ok := got.(*Literal); !ok {
		t.Fatalf("Optimize result = %T, want *Literal", got)
	}
}

func TestOptimizeCollapsesRepOneOne(t *testing.T) {
	one := 1
	n := &Rep{Inner: &Literal{Text: "a"}, Min: 1, Max: &one}
	got := Optimize(n)
	if _, ok := got.(*Literal); !ok {
		t.Fatalf("Optimize result = %T, want *Literal", got)
	}
}

func TestOptimizeFoldsZeroZeroRepToEmpty(t *testing.T) {
	zero := 0
	n := &Rep{Inner: &Literal{Text: "a"}, Min: 0, Max: &zero}
	got := Optimize(n)
	if _, ok := got.(*Empty); !ok {
		t.Fatalf("Optimize result = %T, want *Empty", got)
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	inner := &Group{Children: []Node{&Group{Children: []Node{&Literal{Text: "a"}}}, &Empty{}}}
	once := Optimize(inner)
	twice := Optimize(once)
	if fingerprint(once) != fingerprint(twice) {
		t.Fatalf("Optimize is not idempotent: %#v != %#v", once, twice)
	}
}

func TestClassifyEmptyClassIsZero(t *testing.T) {
	if Classify(&CharClass{}) != CountZero {
		t.Fatalf("Classify(empty CharClass) != CountZero")
	}
}

func TestClassifySingleCharIsOne(t *testing.T) {
	cc := &CharClass{Set: ClassSet{Intervals: []Interval{{Lo: 'a', Hi: 'b'}}}}
	if Classify(cc) != CountOne {
		t.Fatalf("Classify(single-char CharClass) != CountOne")
	}
}
