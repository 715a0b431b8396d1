package ast

import (
	"strings"
	"testing"

	"rulex/compiler/span"
)

func TestPrintLiteral(t *testing.T) {
	n := &Literal{Text: "foo", Sp: span.Span{Start: 0, End: 3}}
	got := Print(n)
	if !strings.Contains(got, `"foo"`) {
		t.Fatalf("Print(%v) = %q, want it to contain the literal text", n, got)
	}
}

func TestPrintNestedGroup(t *testing.T) {
	inner := &Literal{Text: "a"}
	group := &Group{
		Children: []Rule{inner},
		Capture:  Capture{Capturing: true, Name: "x"},
	}
	got := Print(group)
	if !strings.Contains(got, "CapturingGroup(x)") {
		t.Fatalf("Print(group) = %q, want capture name rendered", got)
	}
	if !strings.Contains(got, `"a"`) {
		t.Fatalf("Print(group) = %q, want child literal rendered", got)
	}
}

func TestSpanAccessors(t *testing.T) {
	cases := []Rule{
		&Literal{Sp: span.Span{Start: 1, End: 2}},
		&CharClass{Sp: span.Span{Start: 2, End: 3}},
		&Group{Sp: span.Span{Start: 3, End: 4}},
		&Alternation{Sp: span.Span{Start: 4, End: 5}},
		&Repetition{Sp: span.Span{Start: 5, End: 6}},
		&Boundary{Sp: span.Span{Start: 6, End: 7}},
		&Lookaround{Sp: span.Span{Start: 7, End: 8}},
		&Variable{Sp: span.Span{Start: 8, End: 9}},
		&Reference{Sp: span.Span{Start: 9, End: 10}},
		&Range{Sp: span.Span{Start: 10, End: 11}},
		&Negation{Sp: span.Span{Start: 11, End: 12}},
		&StmtExpr{Sp: span.Span{Start: 12, End: 13}},
	}
	for i, r := range cases {
		want := i + 1
		if r.Span().Start != want {
			t.Errorf("case %d: Span().Start = %d, want %d", i, r.Span().Start, want)
		}
	}
}
