package lower

import (
	"rulex/compiler/ast"
	"rulex/compiler/diagnose"
	"rulex/compiler/regexir"
)

// lowerCharClass converts a CharClass into IR, applying forceNegative on top
// of whatever polarity the surface syntax already carries. forceNegative is
// set when this class is reached through a structural `!` (spec §4.4).
func (l *Lowerer) lowerCharClass(n *ast.CharClass, forceNegative bool) regexir.Node {
	if n.GroupKind == ast.CharGroupDot {
		return &regexir.CharClass{Set: regexir.ClassSet{
			Named:    []regexir.NamedClass{{Name: "any"}},
			Negative: forceNegative,
		}}
	}

	set := regexir.ClassSet{Negative: forceNegative}
	for _, it := range n.Items {
		switch it.Kind {
		case ast.ItemChar:
			set.Intervals = append(set.Intervals, regexir.Interval{Lo: it.Lo, Hi: it.Lo + 1})
		case ast.ItemRange:
			set.Intervals = append(set.Intervals, regexir.Interval{Lo: it.Lo, Hi: it.Hi + 1})
		case ast.ItemNamed:
			set.Named = append(set.Named, regexir.NamedClass{Name: namedClassName(it), Negative: it.Negative})
		}
	}
	return &regexir.CharClass{Set: set}
}

// namedClassName maps a named Item to the identifier codegen matches
// against when choosing each flavor's native class escape (e.g. \w, \s).
func namedClassName(it ast.Item) string {
	if it.Name == ast.GroupUnicodeProperty {
		return it.PropertyName
	}
	switch it.Name {
	case ast.GroupWord:
		return "word"
	case ast.GroupSpace:
		return "space"
	case ast.GroupDigit:
		return "digit"
	case ast.GroupHorizSpace:
		return "horiz_space"
	case ast.GroupVertSpace:
		return "vert_space"
	case ast.GroupAsciiAlpha:
		return "ascii_alpha"
	case ast.GroupAsciiAlnum:
		return "ascii_alnum"
	case ast.GroupAsciiDigit:
		return "ascii_digit"
	case ast.GroupAsciiSpace:
		return "ascii_space"
	case ast.GroupAsciiPunct:
		return "ascii_punct"
	case ast.GroupCodepoint:
		return "any"
	default:
		return "unknown"
	}
}

// lowerNegation resolves a structural `!` against whatever it wraps (spec
// §4.4): cancel a double negation, flip a CharClass's polarity, toggle a
// word Boundary or a Lookaround's sign, follow through a Variable to its
// bound value, and report NotSupported on anything else (a literal, a
// group, a repeated expression, ... negating those has no defined
// meaning).
func (l *Lowerer) lowerNegation(n *ast.Negation, defaultQuant ast.Quantifier, errs *[]*diagnose.SemanticError) regexir.Node {
	switch inner := n.Inner.(type) {
	case *ast.Negation:
		return l.lower(inner.Inner, defaultQuant, errs)

	case *ast.CharClass:
		return l.lowerCharClass(inner, true)

	case *ast.Boundary:
		switch inner.Kind {
		case ast.BoundaryWord:
			return &regexir.WordBoundary{Negate: true}
		case ast.BoundaryNotWord:
			return &regexir.WordBoundary{Negate: false}
		default:
			*errs = append(*errs, diagnose.NewSemanticError(diagnose.SemanticNotSupported,
				"`!` cannot negate a start/end anchor", n.Sp))
			return &regexir.Empty{}
		}

	case *ast.Lookaround:
		dir := regexir.Ahead
		if inner.Direction == ast.LookaroundBehind {
			dir = regexir.Behind
		}
		return &regexir.Lookaround{
			Inner:     l.lower(inner.Inner, defaultQuant, errs),
			Direction: dir,
			Negate:    !inner.Negative,
		}

	case *ast.Variable:
		body, ok := l.cs.Variables[inner.Name]
		if !ok {
			*errs = append(*errs, diagnose.NewSemanticError(diagnose.SemanticUnknownReference,
				"unknown variable `"+inner.Name+"`", inner.Sp))
			return &regexir.Empty{}
		}
		return l.lowerNegation(&ast.Negation{Inner: body, Sp: n.Sp}, defaultQuant, errs)

	default:
		*errs = append(*errs, diagnose.NewSemanticError(diagnose.SemanticNotSupported,
			"`!` is not supported on this expression", n.Sp))
		return &regexir.Empty{}
	}
}
