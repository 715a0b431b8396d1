package codegen

import (
	"testing"

	"rulex/compiler/flavor"
	"rulex/compiler/regexir"
)

func one(n int) *int { return &n }

func TestGenerateLiteralEscapesMetachars(t *testing.T) {
	got := Generate(&regexir.Literal{Text: "a.b*c"}, flavor.PCRE)
	want := `a\.b\*c`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGenerateCharClassMergesIntoRange(t *testing.T) {
	got := Generate(&regexir.CharClass{Set: regexir.ClassSet{
		Intervals: []regexir.Interval{{Lo: 'a', Hi: 'd'}},
	}}, flavor.PCRE)
	if got != "[a-c]" {
		t.Fatalf("got %q, want [a-c]", got)
	}
}

func TestGenerateNegatedCharClass(t *testing.T) {
	got := Generate(&regexir.CharClass{Set: regexir.ClassSet{
		Intervals: []regexir.Interval{{Lo: '0', Hi: ':'}},
		Negative:  true,
	}}, flavor.PCRE)
	if got != "[^0-9]" {
		t.Fatalf("got %q, want [^0-9]", got)
	}
}

func TestGenerateNamedClassWord(t *testing.T) {
	got := Generate(&regexir.CharClass{Set: regexir.ClassSet{
		Named: []regexir.NamedClass{{Name: "word"}},
	}}, flavor.PCRE)
	if got != `[\w]` {
		t.Fatalf("got %q, want [\\w]", got)
	}
}

func TestGenerateConcatenation(t *testing.T) {
	got := Generate(&regexir.Group{Children: []regexir.Node{
		&regexir.Literal{Text: "ab"},
		&regexir.Literal{Text: "cd"},
	}}, flavor.PCRE)
	if got != "abcd" {
		t.Fatalf("got %q, want abcd", got)
	}
}

func TestGenerateCapturingGroup(t *testing.T) {
	got := Generate(&regexir.Group{
		Capturing: true,
		Children:  []regexir.Node{&regexir.Literal{Text: "a"}},
	}, flavor.PCRE)
	if got != "(a)" {
		t.Fatalf("got %q, want (a)", got)
	}
}

func TestGenerateNamedCapturingGroupPython(t *testing.T) {
	got := Generate(&regexir.Group{
		Capturing: true,
		Name:      "x",
		Children:  []regexir.Node{&regexir.Literal{Text: "a"}},
	}, flavor.Python)
	if got != "(?P<x>a)" {
		t.Fatalf("got %q, want (?P<x>a)", got)
	}
}

func TestGenerateNamedCapturingGroupPCRE(t *testing.T) {
	got := Generate(&regexir.Group{
		Capturing: true,
		Name:      "x",
		Children:  []regexir.Node{&regexir.Literal{Text: "a"}},
	}, flavor.PCRE)
	if got != "(?<x>a)" {
		t.Fatalf("got %q, want (?<x>a)", got)
	}
}

func TestGenerateAtomicGroup(t *testing.T) {
	got := Generate(&regexir.Group{
		Atomic:   true,
		Children: []regexir.Node{&regexir.Literal{Text: "a"}},
	}, flavor.PCRE)
	if got != "(?>a)" {
		t.Fatalf("got %q, want (?>a)", got)
	}
}

func TestGenerateAlternation(t *testing.T) {
	got := Generate(&regexir.Alt{Branches: []regexir.Node{
		&regexir.Literal{Text: "a"},
		&regexir.Literal{Text: "b"},
	}}, flavor.PCRE)
	if got != "a|b" {
		t.Fatalf("got %q, want a|b", got)
	}
}

func TestGenerateAltInsideConcatGetsWrapped(t *testing.T) {
	got := Generate(&regexir.Group{Children: []regexir.Node{
		&regexir.Literal{Text: "x"},
		&regexir.Alt{Branches: []regexir.Node{
			&regexir.Literal{Text: "a"},
			&regexir.Literal{Text: "b"},
		}},
	}}, flavor.PCRE)
	if got != "x(?:a|b)" {
		t.Fatalf("got %q, want x(?:a|b)", got)
	}
}

func TestGenerateCapturingGroupWithSoleAltChildIsNotDoubleWrapped(t *testing.T) {
	got := Generate(&regexir.Group{
		Capturing: true,
		Name:      "x",
		Children: []regexir.Node{&regexir.Alt{Branches: []regexir.Node{
			&regexir.Literal{Text: "ab"},
			&regexir.Literal{Text: "cd"},
		}}},
	}, flavor.PCRE)
	if got != "(?<x>ab|cd)" {
		t.Fatalf("got %q, want (?<x>ab|cd)", got)
	}
}

func TestGenerateRepetitionStar(t *testing.T) {
	got := Generate(&regexir.Rep{Inner: &regexir.Literal{Text: "a"}, Min: 0}, flavor.PCRE)
	if got != "a*" {
		t.Fatalf("got %q, want a*", got)
	}
}

func TestGenerateRepetitionLazyPlus(t *testing.T) {
	got := Generate(&regexir.Rep{Inner: &regexir.Literal{Text: "a"}, Min: 1, Quantifier: regexir.Lazy}, flavor.PCRE)
	if got != "a+?" {
		t.Fatalf("got %q, want a+?", got)
	}
}

func TestGenerateRepetitionBraced(t *testing.T) {
	got := Generate(&regexir.Rep{Inner: &regexir.Literal{Text: "a"}, Min: 2, Max: one(4)}, flavor.PCRE)
	if got != "a{2,4}" {
		t.Fatalf("got %q, want a{2,4}", got)
	}
}

func TestGenerateRepetitionOfMultiCharLiteralWraps(t *testing.T) {
	got := Generate(&regexir.Rep{Inner: &regexir.Literal{Text: "ab"}, Min: 0}, flavor.PCRE)
	if got != "(?:ab)*" {
		t.Fatalf("got %q, want (?:ab)*", got)
	}
}

func TestGenerateAnchors(t *testing.T) {
	if got := Generate(&regexir.Anchor{Kind: regexir.AnchorStart}, flavor.PCRE); got != "^" {
		t.Fatalf("got %q, want ^", got)
	}
	if got := Generate(&regexir.Anchor{Kind: regexir.AnchorEnd}, flavor.PCRE); got != "$" {
		t.Fatalf("got %q, want $", got)
	}
}

func TestGenerateWordBoundary(t *testing.T) {
	if got := Generate(&regexir.WordBoundary{}, flavor.PCRE); got != `\b` {
		t.Fatalf("got %q, want \\b", got)
	}
	if got := Generate(&regexir.WordBoundary{Negate: true}, flavor.PCRE); got != `\B` {
		t.Fatalf("got %q, want \\B", got)
	}
}

func TestGenerateLookaround(t *testing.T) {
	cases := []struct {
		dir     regexir.LookDirection
		negate  bool
		want    string
	}{
		{regexir.Ahead, false, "(?=a)"},
		{regexir.Ahead, true, "(?!a)"},
		{regexir.Behind, false, "(?<=a)"},
		{regexir.Behind, true, "(?<!a)"},
	}
	for _, c := range cases {
		got := Generate(&regexir.Lookaround{
			Inner:     &regexir.Literal{Text: "a"},
			Direction: c.dir,
			Negate:    c.negate,
		}, flavor.PCRE)
		if got != c.want {
			t.Fatalf("got %q, want %q", got, c.want)
		}
	}
}

func TestGenerateBackrefNumbered(t *testing.T) {
	got := Generate(&regexir.Backref{Number: 2}, flavor.PCRE)
	if got != `\2` {
		t.Fatalf("got %q, want \\2", got)
	}
}

func TestGenerateBackrefNamed(t *testing.T) {
	got := Generate(&regexir.Backref{Name: "x"}, flavor.PCRE)
	if got != `\k<x>` {
		t.Fatalf("got %q, want \\k<x>", got)
	}
}

func TestGenerateBackrefNamedRuby(t *testing.T) {
	got := Generate(&regexir.Backref{Name: "x"}, flavor.Ruby)
	if got != `\k<x>` {
		t.Fatalf("got %q, want \\k<x>", got)
	}
}

func TestGenerateGrapheme(t *testing.T) {
	got := Generate(&regexir.Grapheme{}, flavor.PCRE)
	if got != `\X` {
		t.Fatalf("got %q, want \\X", got)
	}
}

func TestGenerateDotBuiltin(t *testing.T) {
	got := Generate(&regexir.CharClass{Set: regexir.ClassSet{
		Named: []regexir.NamedClass{{Name: "any"}},
	}}, flavor.PCRE)
	if got != "." {
		t.Fatalf("got %q, want .", got)
	}
}

func TestGenerateUnicodeCategory(t *testing.T) {
	got := Generate(&regexir.Unicode{Kind: regexir.UnicodeCategory, Name: "L"}, flavor.PCRE)
	if got != `\p{L}` {
		t.Fatalf("got %q, want \\p{L}", got)
	}
}

func TestGenerateUnicodeScriptJava(t *testing.T) {
	got := Generate(&regexir.Unicode{Kind: regexir.UnicodeScript, Name: "Greek"}, flavor.Java)
	if got != `\p{IsGreek}` {
		t.Fatalf("got %q, want \\p{IsGreek}", got)
	}
}
