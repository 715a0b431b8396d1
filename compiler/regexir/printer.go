package regexir

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders n as an indented tree, for the CLI's `inspect ir` stage.
// Mirrors ast.Print's shape: one function, one type switch, no visitor.
func Print(n Node) string {
	var b strings.Builder
	print1(&b, n, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func print1(b *strings.Builder, n Node, depth int) {
	indent(b, depth)
	if n == nil {
		b.WriteString("<nil>\n")
		return
	}

	switch v := n.(type) {
	case *Literal:
		fmt.Fprintf(b, "Literal %q\n", v.Text)
	case *CharClass:
		fmt.Fprintf(b, "CharClass %s\n", classSetString(v.Set))
	case *Group:
		label := "Group"
		if v.Atomic {
			label = "AtomicGroup"
		}
		if v.Capturing {
			if v.Name != "" {
				label = fmt.Sprintf("CapturingGroup(%s, #%d)", v.Name, v.Index)
			} else {
				label = fmt.Sprintf("CapturingGroup(#%d)", v.Index)
			}
		}
		fmt.Fprintf(b, "%s\n", label)
		for _, c := range v.Children {
			print1(b, c, depth+1)
		}
	case *Alt:
		b.WriteString("Alt\n")
		for _, br := range v.Branches {
			print1(b, br, depth+1)
		}
	case *Rep:
		fmt.Fprintf(b, "Rep {%d,%s} %s\n", v.Min, maxString(v.Max), quantifierString(v.Quantifier))
		print1(b, v.Inner, depth+1)
	case *Anchor:
		if v.Kind == AnchorStart {
			b.WriteString("Anchor Start\n")
		} else {
			b.WriteString("Anchor End\n")
		}
	case *WordBoundary:
		fmt.Fprintf(b, "WordBoundary negate=%v\n", v.Negate)
	case *Lookaround:
		dir := "ahead"
		if v.Direction == Behind {
			dir = "behind"
		}
		fmt.Fprintf(b, "Lookaround %s negate=%v\n", dir, v.Negate)
		print1(b, v.Inner, depth+1)
	case *Backref:
		if v.Name != "" {
			fmt.Fprintf(b, "Backref %s\n", v.Name)
		} else {
			fmt.Fprintf(b, "Backref #%d\n", v.Number)
		}
	case *Grapheme:
		b.WriteString("Grapheme\n")
	case *Empty:
		b.WriteString("Empty\n")
	case *Unicode:
		fmt.Fprintf(b, "Unicode %s\n", v.Name)
	default:
		fmt.Fprintf(b, "<unknown node %T>\n", v)
	}
}

func maxString(m *int) string {
	if m == nil {
		return "inf"
	}
	return strconv.Itoa(*m)
}

func quantifierString(q Quantifier) string {
	if q == Lazy {
		return "lazy"
	}
	return "greedy"
}

func classSetString(s ClassSet) string {
	var b strings.Builder
	if s.Negative {
		b.WriteByte('^')
	}
	for i, it := range s.Intervals {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "[%q-%q)", it.Lo, it.Hi)
	}
	for _, nc := range s.Named {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if nc.Negative {
			b.WriteByte('!')
		}
		b.WriteString(nc.Name)
	}
	return b.String()
}
