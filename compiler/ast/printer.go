package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders r as an indented S-expression-like tree, for the `-d`/debug
// CLI flag. It exists purely for humans; no pass parses its own output back.
func Print(r Rule) string {
	var b strings.Builder
	print1(&b, r, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func print1(b *strings.Builder, r Rule, depth int) {
	indent(b, depth)
	if r == nil {
		b.WriteString("<nil>\n")
		return
	}

	switch n := r.(type) {
	case *Literal:
		fmt.Fprintf(b, "Literal %q\n", n.Text)
	case *CharClass:
		if n.GroupKind == CharGroupDot {
			b.WriteString("CharClass [.]\n")
			return
		}
		b.WriteString("CharClass [\n")
		for _, it := range n.Items {
			indent(b, depth+1)
			b.WriteString(itemString(it))
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteString("]\n")
	case *Group:
		label := "Group"
		if n.Atomic {
			label = "AtomicGroup"
		}
		if n.Capture.Capturing {
			if n.Capture.Name != "" {
				label = fmt.Sprintf("CapturingGroup(%s)", n.Capture.Name)
			} else {
				label = "CapturingGroup"
			}
		}
		fmt.Fprintf(b, "%s\n", label)
		for _, c := range n.Children {
			print1(b, c, depth+1)
		}
	case *Alternation:
		b.WriteString("Alternation\n")
		for _, c := range n.Branches {
			print1(b, c, depth+1)
		}
	case *Repetition:
		fmt.Fprintf(b, "Repetition {%d,%s} %s\n", n.Kind.Min, maxString(n.Kind.Max), quantifierString(n.Quantifier))
		print1(b, n.Inner, depth+1)
	case *Boundary:
		fmt.Fprintf(b, "Boundary %s\n", boundaryString(n.Kind))
	case *Lookaround:
		dir := "ahead"
		if n.Direction == LookaroundBehind {
			dir = "behind"
		}
		fmt.Fprintf(b, "Lookaround %s negative=%v\n", dir, n.Negative)
		print1(b, n.Inner, depth+1)
	case *Grapheme:
		b.WriteString("Grapheme\n")
	case *Variable:
		fmt.Fprintf(b, "Variable %s\n", n.Name)
	case *Reference:
		fmt.Fprintf(b, "Reference %s\n", referenceString(n))
	case *Range:
		fmt.Fprintf(b, "Range base=%d lo=%v hi=%v\n", n.Radix, n.DigitsLo, n.DigitsHi)
	case *Negation:
		b.WriteString("Negation\n")
		print1(b, n.Inner, depth+1)
	case *StmtExpr:
		fmt.Fprintf(b, "StmtExpr %s\n", stmtString(n.Statement))
		print1(b, n.Body, depth+1)
	default:
		fmt.Fprintf(b, "<unknown node %T>\n", n)
	}
}

func maxString(m *int) string {
	if m == nil {
		return "inf"
	}
	return strconv.Itoa(*m)
}

func quantifierString(q Quantifier) string {
	switch q {
	case QuantifierGreedy:
		return "greedy"
	case QuantifierLazy:
		return "lazy"
	default:
		return "default"
	}
}

func boundaryString(k BoundaryKind) string {
	switch k {
	case BoundaryStart:
		return "Start"
	case BoundaryEnd:
		return "End"
	case BoundaryWord:
		return "Word"
	case BoundaryNotWord:
		return "NotWord"
	default:
		return "?"
	}
}

func referenceString(r *Reference) string {
	switch r.Kind {
	case ReferenceNumber:
		return fmt.Sprintf("#%d", r.Number)
	case ReferenceNamed:
		return r.Name
	case ReferenceRelative:
		return fmt.Sprintf("%+d", r.Relative)
	default:
		return "?"
	}
}

func stmtString(s Stmt) string {
	switch s.Kind {
	case StmtEnable:
		return "enable lazy"
	case StmtDisable:
		return "disable lazy"
	case StmtLet:
		return fmt.Sprintf("let %s =", s.Name)
	default:
		return "?"
	}
}

func itemString(it Item) string {
	switch it.Kind {
	case ItemChar:
		return fmt.Sprintf("Char %q", it.Lo)
	case ItemRange:
		return fmt.Sprintf("Range %q-%q", it.Lo, it.Hi)
	case ItemNamed:
		if it.Negative {
			return "!" + it.PropertyName
		}
		return it.PropertyName
	default:
		return "?"
	}
}
