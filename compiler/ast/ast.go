// Package ast defines the rulex abstract syntax tree: a closed sum type of
// expression nodes (spec §3's "AST (Rule)"). Nodes are plain structs
// implementing the minimal Rule interface; every pass (parser, resolver,
// lowering, printer) dispatches over the concrete type with a Go type
// switch rather than a visitor interface, per spec §9's explicit design
// note ("dispatch via exhaustive pattern matching rather than virtual
// methods").
package ast

import "rulex/compiler/span"

// Rule is the tagged-union root: every AST node satisfies it.
type Rule interface {
	Span() span.Span
	ruleNode()
}

// Literal is verbatim text to match.
type Literal struct {
	Text string
	Sp   span.Span
}

func (l *Literal) Span() span.Span { return l.Sp }
func (*Literal) ruleNode()         {}

// GroupName identifies a predefined Unicode character-class category used
// inside a CharClass item, e.g. `ascii_digit` or `space`.
type GroupName int

const (
	GroupUnknown GroupName = iota
	GroupWord
	GroupSpace
	GroupDigit
	GroupHorizSpace
	GroupVertSpace
	GroupAsciiAlpha
	GroupAsciiAlnum
	GroupAsciiDigit
	GroupAsciiSpace
	GroupAsciiPunct
	GroupCodepoint
	GroupUnicodeProperty // general: name holds the raw property identifier
)

// Item is one element of a CharClass's Items form: a single char, a
// char-char range, or a named category (possibly negated).
type Item struct {
	// Kind discriminates which of the three shapes below is populated.
	Kind ItemKind

	// Range / Char
	Lo, Hi rune

	// Named
	Name         GroupName
	PropertyName string // raw identifier when Name == GroupUnicodeProperty
	Negative     bool
}

type ItemKind int

const (
	ItemChar ItemKind = iota
	ItemRange
	ItemNamed
)

// CharGroupKind discriminates CharClass's two surface forms: an explicit
// item list, or the deprecated bracketed `[.]` dot form.
type CharGroupKind int

const (
	CharGroupItems CharGroupKind = iota
	CharGroupDot
)

// CharClass is a set of code points, expressed either as an item list or as
// the deprecated bracketed dot.
type CharClass struct {
	GroupKind CharGroupKind
	Items     []Item
	Sp        span.Span
}

func (c *CharClass) Span() span.Span { return c.Sp }
func (*CharClass) ruleNode()         {}

// Capture describes a group's optional capture behaviour: not capturing,
// capturing anonymously, or capturing with a name.
type Capture struct {
	Capturing bool
	Name      string // empty when capturing anonymously
}

// Group is an ordered concatenation of children, optionally capturing and/or
// atomic (the matched text of an atomic group cannot be backtracked into).
type Group struct {
	Children []Rule
	Capture  Capture
	Atomic   bool
	Sp       span.Span
}

func (g *Group) Span() span.Span { return g.Sp }
func (*Group) ruleNode()         {}

// Negation is the structural `!` prefix; its meaning depends on what it
// wraps and is resolved during lowering (spec §4.4): flips polarity of a
// CharClass, toggles a word Boundary to NotWord, toggles a Lookaround's
// sign, and is a NotSupported error on anything else.
type Negation struct {
	Inner Rule
	Sp    span.Span
}

func (n *Negation) Span() span.Span { return n.Sp }
func (*Negation) ruleNode()         {}

// Alternation is a list of branches, at least one of which must match.
type Alternation struct {
	Branches []Rule
	Sp       span.Span
}

func (a *Alternation) Span() span.Span { return a.Sp }
func (*Alternation) ruleNode()         {}

// Quantifier selects greedy/lazy matching, or QuantifierDefault to defer to the
// compile-wide default quantifier (spec's CompileState.default_quantifier).
type Quantifier int

const (
	QuantifierDefault Quantifier = iota
	QuantifierGreedy
	QuantifierLazy
)

// RepetitionKind is the {min,max} bound of a Repetition; Max == nil means
// unbounded.
type RepetitionKind struct {
	Min int
	Max *int // nil == unbounded
}

// Repetition repeats Inner kind.Min..kind.Max times.
type Repetition struct {
	Inner      Rule
	Kind       RepetitionKind
	Quantifier Quantifier
	Sp         span.Span
}

func (r *Repetition) Span() span.Span { return r.Sp }
func (*Repetition) ruleNode()         {}

// BoundaryKind is which zero-width assertion a Boundary node represents.
type BoundaryKind int

const (
	BoundaryStart BoundaryKind = iota
	BoundaryEnd
	BoundaryWord
	BoundaryNotWord
)

// Boundary is a zero-width assertion: start/end of string, or a (negated)
// word boundary.
type Boundary struct {
	Kind BoundaryKind
	Sp   span.Span
}

func (b *Boundary) Span() span.Span { return b.Sp }
func (*Boundary) ruleNode()         {}

// LookaroundDirection is ahead (`>>`) or behind (`<<`).
type LookaroundDirection int

const (
	LookaroundAhead LookaroundDirection = iota
	LookaroundBehind
)

// Lookaround is a zero-width assertion matching (or, when Negative,
// failing to match) Inner without consuming input.
type Lookaround struct {
	Inner     Rule
	Direction LookaroundDirection
	Negative  bool
	Sp        span.Span
}

func (l *Lookaround) Span() span.Span { return l.Sp }
func (*Lookaround) ruleNode()         {}

// Grapheme matches one user-perceived character (`\X` in most flavors);
// it backs the `Grapheme`/`G` builtins and is rejected by flavors whose
// capability table marks Grapheme unsupported (spec §4.3/§4.6).
type Grapheme struct {
	Sp span.Span
}

func (g *Grapheme) Span() span.Span { return g.Sp }
func (*Grapheme) ruleNode()         {}

// Variable is a reference to a name bound by `let` (or a builtin).
type Variable struct {
	Name string
	Sp   span.Span
}

func (v *Variable) Span() span.Span { return v.Sp }
func (*Variable) ruleNode()         {}

// ReferenceKind discriminates a backreference's target form.
type ReferenceKind int

const (
	ReferenceNumber ReferenceKind = iota
	ReferenceNamed
	ReferenceRelative
)

// Reference is a backreference, by absolute index, by name, or relative to
// the position of the reference itself.
type Reference struct {
	Kind     ReferenceKind
	Number   uint32
	Name     string
	Relative int32
	Sp       span.Span
}

func (r *Reference) Span() span.Span { return r.Sp }
func (*Reference) ruleNode()         {}

// Range matches decimal-or-radix-N integers in a closed interval. Digits are
// big-endian (most significant first), one byte per digit (0..35).
type Range struct {
	DigitsLo []uint8
	DigitsHi []uint8
	Radix    uint8
	Sp       span.Span
}

func (r *Range) Span() span.Span { return r.Sp }
func (*Range) ruleNode()         {}

// BooleanSetting is the flag toggled by an `enable`/`disable` statement.
type BooleanSetting int

const (
	SettingLazy BooleanSetting = iota
)

// StmtKind discriminates an Enable/Disable modifier from a Let binding.
type StmtKind int

const (
	StmtEnable StmtKind = iota
	StmtDisable
	StmtLet
)

// Stmt is one leading statement of a StmtExpr: `enable X;`, `disable X;` or
// `let name = body;`.
type Stmt struct {
	Kind     StmtKind
	Setting  BooleanSetting // valid when Kind is StmtEnable/StmtDisable
	Name     string         // valid when Kind is StmtLet
	Body     Rule           // valid when Kind is StmtLet
	NameSpan span.Span      // valid when Kind is StmtLet
}

// StmtExpr is an expression preceded by one modifier statement; chains of
// statements are represented as nested StmtExpr nodes, with the first
// statement in source order as the outermost node.
type StmtExpr struct {
	Statement Stmt
	Body      Rule
	Sp        span.Span
}

func (s *StmtExpr) Span() span.Span { return s.Sp }
func (*StmtExpr) ruleNode()         {}
