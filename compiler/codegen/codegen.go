// Package codegen renders regex IR (compiler/regexir) into a flavor-specific
// regex source string (spec §4.6). Dispatch is a Go type switch over the IR,
// the same convention the AST and IR packages use (spec §9), not the
// teacher's Visitor interface.
package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rulex/compiler/flavor"
	"rulex/compiler/regexir"
)

// Generator renders one regex IR tree for a single target flavor.
type Generator struct {
	flavor flavor.Flavor
	caps   flavor.Capabilities
	b      strings.Builder
}

// New returns a Generator targeting fl.
func New(fl flavor.Flavor) *Generator {
	return &Generator{flavor: fl, caps: flavor.Caps(fl)}
}

// Generate renders n as a regex source string for the generator's flavor.
func Generate(n regexir.Node, fl flavor.Flavor) string {
	g := New(fl)
	g.emit(n)
	return g.b.String()
}

func (g *Generator) emit(n regexir.Node) {
	switch v := n.(type) {
	case *regexir.Empty:
		// matches the empty string: nothing to write

	case *regexir.Literal:
		g.emitLiteral(v.Text)

	case *regexir.CharClass:
		g.emitCharClass(v.Set)

	case *regexir.Group:
		g.emitGroup(v)

	case *regexir.Alt:
		g.emitAlt(v)

	case *regexir.Rep:
		g.emitRep(v)

	case *regexir.Anchor:
		if v.Kind == regexir.AnchorStart {
			g.b.WriteByte('^')
		} else {
			g.b.WriteByte('$')
		}

	case *regexir.WordBoundary:
		if v.Negate {
			g.b.WriteString(`\B`)
		} else {
			g.b.WriteString(`\b`)
		}

	case *regexir.Lookaround:
		g.emitLookaround(v)

	case *regexir.Backref:
		g.emitBackref(v)

	case *regexir.Grapheme:
		g.b.WriteString(`\X`)

	case *regexir.Unicode:
		g.emitUnicode(v.Kind, v.Name, false)

	default:
		panic(fmt.Sprintf("codegen: unhandled node %T", n))
	}
}

func (g *Generator) emitGroup(v *regexir.Group) {
	opening := g.groupOpening(v)
	if opening != "" {
		g.b.WriteString(opening)
	}
	// A sole Alt child is already delimited by this group's own parens
	// (when it has any); wrapping it again in (?:...) would be redundant.
	if alt, ok := soleAltChild(v); ok && opening != "" {
		g.emitAlt(alt)
	} else {
		for _, c := range v.Children {
			g.emitConcatChild(c)
		}
	}
	if opening != "" {
		g.b.WriteByte(')')
	}
}

// soleAltChild reports whether v has exactly one child and it is an Alt.
func soleAltChild(v *regexir.Group) (*regexir.Alt, bool) {
	if len(v.Children) != 1 {
		return nil, false
	}
	alt, ok := v.Children[0].(*regexir.Alt)
	return alt, ok
}

// groupOpening returns the `(`-prefix for v, or "" when an unnamed,
// non-capturing, non-atomic Group needs no parentheses of its own (its
// children are emitted directly into the surrounding concatenation).
func (g *Generator) groupOpening(v *regexir.Group) string {
	switch {
	case v.Atomic:
		if !g.caps.AtomicGroups {
			return "(" // resolve already rejects this for the target flavor
		}
		return "(?>"
	case v.Capturing && v.Name != "":
		return g.namedGroupOpening(v.Name)
	case v.Capturing:
		return "("
	default:
		return ""
	}
}

func (g *Generator) namedGroupOpening(name string) string {
	// Python spells named captures with a P-prefixed angle form even
	// though its capability table marks NamedCaptureAngle false (the
	// flag tracks the bare <name> form other flavors share).
	if g.flavor == flavor.Python {
		return "(?P<" + name + ">"
	}
	if !g.caps.NamedCaptureAngle {
		return "(?'" + name + "'"
	}
	return "(?<" + name + ">"
}

// emitConcatChild writes c as one element of a concatenation, wrapping it
// in a non-capturing group when its top-level operator (alternation) would
// otherwise bleed into the surrounding sequence.
func (g *Generator) emitConcatChild(c regexir.Node) {
	if alt, ok := c.(*regexir.Alt); ok {
		g.b.WriteString("(?:")
		g.emitAlt(alt)
		g.b.WriteByte(')')
		return
	}
	g.emit(c)
}

func (g *Generator) emitAlt(v *regexir.Alt) {
	for i, b := range v.Branches {
		if i > 0 {
			g.b.WriteByte('|')
		}
		g.emitConcatChild(b)
	}
}

func (g *Generator) emitRep(v *regexir.Rep) {
	g.emitAtom(v.Inner)
	g.b.WriteString(quantifierSuffix(v.Min, v.Max))
	if v.Quantifier == regexir.Lazy {
		g.b.WriteByte('?')
	}
}

// emitAtom writes n so that a following quantifier applies to exactly n:
// already-atomic IR shapes are written as-is, everything else is wrapped
// in a non-capturing group.
func (g *Generator) emitAtom(n regexir.Node) {
	if isAtomic(n) {
		g.emit(n)
		return
	}
	g.b.WriteString("(?:")
	g.emit(n)
	g.b.WriteByte(')')
}

// isAtomic reports whether n is already a single regex atom that a
// quantifier or lookaround can apply to directly without wrapping.
func isAtomic(n regexir.Node) bool {
	switch v := n.(type) {
	case *regexir.Literal:
		return len([]rune(v.Text)) <= 1
	case *regexir.CharClass, *regexir.Backref, *regexir.Grapheme, *regexir.Unicode,
		*regexir.Anchor, *regexir.WordBoundary, *regexir.Lookaround, *regexir.Empty:
		return true
	case *regexir.Group:
		return v.Capturing || v.Atomic
	default:
		return false
	}
}

func quantifierSuffix(min int, max *int) string {
	switch {
	case max == nil:
		if min == 0 {
			return "*"
		}
		if min == 1 {
			return "+"
		}
		return "{" + strconv.Itoa(min) + ",}"
	case min == 0 && *max == 1:
		return "?"
	case min == *max:
		return "{" + strconv.Itoa(min) + "}"
	default:
		return "{" + strconv.Itoa(min) + "," + strconv.Itoa(*max) + "}"
	}
}

func (g *Generator) emitLookaround(v *regexir.Lookaround) {
	switch {
	case v.Direction == regexir.Ahead && !v.Negate:
		g.b.WriteString("(?=")
	case v.Direction == regexir.Ahead && v.Negate:
		g.b.WriteString("(?!")
	case v.Direction == regexir.Behind && !v.Negate:
		g.b.WriteString("(?<=")
	default:
		g.b.WriteString("(?<!")
	}
	g.emit(v.Inner)
	g.b.WriteByte(')')
}

func (g *Generator) emitBackref(v *regexir.Backref) {
	if v.Name != "" {
		switch {
		case g.flavor == flavor.Python:
			g.b.WriteString("(?P=" + v.Name + ")")
		case !g.caps.NamedCaptureBackrefK:
			g.b.WriteString("\\g{" + v.Name + "}")
		default:
			g.b.WriteString(`\k<` + v.Name + ">")
		}
		return
	}
	g.b.WriteByte('\\')
	g.b.WriteString(strconv.FormatUint(uint64(v.Number), 10))
}

func (g *Generator) emitLiteral(text string) {
	for _, r := range text {
		if isMetaChar(r) {
			g.b.WriteByte('\\')
		}
		g.b.WriteRune(r)
	}
}

var metaChars = map[rune]bool{
	'.': true, '^': true, '$': true, '*': true, '+': true, '?': true,
	'(': true, ')': true, '[': true, ']': true, '{': true, '}': true,
	'|': true, '\\': true,
}

func isMetaChar(r rune) bool { return metaChars[r] }

func (g *Generator) emitCharClass(set regexir.ClassSet) {
	// A positive "any codepoint" member already covers every other member,
	// so such a class is rendered as the sole-any form.
	for _, nc := range set.Named {
		if nc.Name == "any" && !nc.Negative {
			set = regexir.ClassSet{Named: []regexir.NamedClass{nc}, Negative: set.Negative}
			break
		}
	}
	if isSoleAnyClass(set) {
		if set.Negative {
			// "not any codepoint" never matches; flavors have no single
			// token for this, so fall back to a lookahead idiom.
			g.b.WriteString("(?!)")
			return
		}
		g.b.WriteByte('.')
		return
	}

	g.b.WriteByte('[')
	if set.Negative {
		g.b.WriteByte('^')
	}
	for _, iv := range sortedIntervals(set.Intervals) {
		g.emitClassChar(iv.Lo)
		if iv.Hi-iv.Lo > 1 {
			g.b.WriteByte('-')
			g.emitClassChar(iv.Hi - 1)
		}
	}
	for _, nc := range set.Named {
		g.emitNamedClassMember(nc)
	}
	g.b.WriteByte(']')
}

// isSoleAnyClass reports whether set is exactly the single "any codepoint"
// named class with no other members, the shape the Codepoint/dot builtins
// lower to.
func isSoleAnyClass(set regexir.ClassSet) bool {
	return len(set.Intervals) == 0 && len(set.Named) == 1 &&
		!set.Named[0].Negative && set.Named[0].Name == "any"
}

func sortedIntervals(in []regexir.Interval) []regexir.Interval {
	out := make([]regexir.Interval, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].Lo < out[j].Lo })
	return out
}

var classMetaChars = map[rune]bool{
	']': true, '^': true, '-': true, '\\': true,
}

func (g *Generator) emitClassChar(r rune) {
	if classMetaChars[r] {
		g.b.WriteByte('\\')
	}
	g.b.WriteRune(r)
}

var namedClassEscapes = map[string]string{
	"word":        `\w`,
	"space":       `\s`,
	"digit":       `\d`,
	"horiz_space": `\h`,
	"vert_space":  `\v`,
}

func (g *Generator) emitNamedClassMember(nc regexir.NamedClass) {
	if esc, ok := namedClassEscapes[nc.Name]; ok && !nc.Negative {
		g.b.WriteString(esc)
		return
	}
	if esc, ok := namedClassEscapes[nc.Name]; ok && nc.Negative {
		g.b.WriteString(esc[:1] + strings.ToUpper(esc[1:]))
		return
	}
	// POSIX-style ASCII classes are inlined as their member ranges; no
	// flavor's bracket syntax negates one member of a class in place, so a
	// negated ASCII member (not produced by lowering today) would need to
	// live in its own top-level negated class instead.
	switch nc.Name {
	case "ascii_alpha":
		g.b.WriteString("A-Za-z")
	case "ascii_alnum":
		g.b.WriteString("A-Za-z0-9")
	case "ascii_digit":
		g.b.WriteString("0-9")
	case "ascii_space":
		g.b.WriteString(" \\t\\r\\n\\f\\v")
	case "ascii_punct":
		g.b.WriteString("!-/:-@\\[-`{-~")
	case "any":
		// handled at the set level: emitCharClass reduces any class with a
		// positive "any" member to the sole-any form, so nothing further
		// to render here.
	default:
		g.emitUnicode(regexir.UnicodeCategory, nc.Name, nc.Negative)
	}
}

func (g *Generator) emitUnicode(kind regexir.UnicodeKind, name string, negative bool) {
	prefix := `\p{`
	if negative {
		prefix = `\P{`
	}
	switch kind {
	case regexir.UnicodeScript:
		if g.flavor == flavor.Java {
			g.b.WriteString(prefix + "Is" + name + "}")
			return
		}
		g.b.WriteString(prefix + "Script=" + name + "}")
	case regexir.UnicodeBlock:
		if g.flavor == flavor.Java {
			g.b.WriteString(prefix + "In" + name + "}")
			return
		}
		g.b.WriteString(prefix + "Block=" + name + "}")
	default:
		g.b.WriteString(prefix + name + "}")
	}
}
