package resolve

import (
	"rulex/compiler/ast"
	"rulex/compiler/diagnose"
	"rulex/compiler/feature"
	"rulex/compiler/flavor"
	"rulex/compiler/span"
)

// checkFeatures walks node reporting every feature/flavor incompatibility
// (spec §4.3.1): a construct whose feature isn't in cs.Features, or whose
// target flavor capability table marks it unsupported, becomes an
// Unsupported(feature, flavor) error at the node's span.
func checkFeatures(node ast.Rule, cs *CompileState, errs *[]*diagnose.SemanticError) {
	checkFeaturesVisiting(node, cs, errs, make(map[string]bool))
}

// checkFeaturesVisiting is checkFeatures plus a set of variable names
// currently being followed through, so a `Variable` node's bound value is
// validated too (a bare `Grapheme`/`G` builtin reference must still trip
// the Grapheme capability check its bound *ast.Grapheme carries) without
// looping forever on a variable that refers to itself.
func checkFeaturesVisiting(node ast.Rule, cs *CompileState, errs *[]*diagnose.SemanticError, visiting map[string]bool) {
	if node == nil {
		return
	}
	caps := flavor.Caps(cs.Flavor)

	switch n := node.(type) {
	case *ast.Grapheme:
		requireFeature(cs, feature.Grapheme, n.Sp, errs)
		if !caps.Grapheme {
			unsupported(cs, feature.Grapheme, n.Sp, errs)
		}

	case *ast.Group:
		if n.Capture.Capturing {
			if n.Capture.Name != "" {
				requireFeature(cs, feature.NamedGroups, n.Sp, errs)
			} else {
				requireFeature(cs, feature.NumberedGroups, n.Sp, errs)
			}
		}
		if n.Atomic {
			requireFeature(cs, feature.Atomics, n.Sp, errs)
			if !caps.AtomicGroups {
				unsupported(cs, feature.Atomics, n.Sp, errs)
			}
		}
		for _, c := range n.Children {
			checkFeaturesVisiting(c, cs, errs, visiting)
		}

	case *ast.Alternation:
		for _, b := range n.Branches {
			checkFeaturesVisiting(b, cs, errs, visiting)
		}

	case *ast.Repetition:
		if n.Quantifier == ast.QuantifierLazy {
			requireFeature(cs, feature.LazyMode, n.Sp, errs)
		}
		checkFeaturesVisiting(n.Inner, cs, errs, visiting)

	case *ast.Lookaround:
		if n.Direction == ast.LookaroundAhead {
			requireFeature(cs, feature.Lookahead, n.Sp, errs)
		} else {
			requireFeature(cs, feature.Lookbehind, n.Sp, errs)
			if !caps.Lookbehind {
				unsupported(cs, feature.Lookbehind, n.Sp, errs)
			} else if _, fixed := fixedLength(n.Inner); !fixed && !caps.VariableLookbehind {
				unsupported(cs, feature.Lookbehind, n.Sp, errs)
			}
		}
		checkFeaturesVisiting(n.Inner, cs, errs, visiting)

	case *ast.Negation:
		checkFeaturesVisiting(n.Inner, cs, errs, visiting)

	case *ast.Boundary:
		if n.Kind == ast.BoundaryWord || n.Kind == ast.BoundaryNotWord {
			requireFeature(cs, feature.Boundaries, n.Sp, errs)
		}

	case *ast.Reference:
		requireFeature(cs, feature.References, n.Sp, errs)

	case *ast.Range:
		requireFeature(cs, feature.Ranges, n.Sp, errs)

	case *ast.Variable:
		requireFeature(cs, feature.Variables, n.Sp, errs)
		if bound, ok := cs.Variables[n.Name]; ok && !visiting[n.Name] {
			visiting[n.Name] = true
			checkFeaturesVisiting(bound, cs, errs, visiting)
			visiting[n.Name] = false
		}

	case *ast.CharClass:
		if n.GroupKind == ast.CharGroupDot {
			requireFeature(cs, feature.Dot, n.Sp, errs)
		}
		for _, it := range n.Items {
			if it.Kind == ast.ItemNamed && it.Name == ast.GroupUnicodeProperty {
				requireFeature(cs, feature.Unicode, n.Sp, errs)
				if !caps.UnicodeProperty {
					unsupported(cs, feature.Unicode, n.Sp, errs)
				}
			}
		}

	case *ast.StmtExpr:
		checkFeaturesVisiting(n.Body, cs, errs, visiting)
	}
}

// requireFeature reports a SemanticUnsupported error when f is gated off by
// the user's --allowed-features set, independent of flavor capability.
func requireFeature(cs *CompileState, f feature.Feature, sp span.Span, errs *[]*diagnose.SemanticError) {
	if !cs.Features.Supports(f) {
		*errs = append(*errs, diagnose.NewSemanticError(diagnose.SemanticUnsupported,
			"feature `"+f.String()+"` is not in the allowed feature set", sp))
	}
}

// unsupported reports a SemanticUnsupported error when f is gated off by the
// target flavor's capability table, regardless of --allowed-features.
func unsupported(cs *CompileState, f feature.Feature, sp span.Span, errs *[]*diagnose.SemanticError) {
	*errs = append(*errs, diagnose.NewSemanticError(diagnose.SemanticUnsupported,
		"feature `"+f.String()+"` is not supported by flavor `"+cs.Flavor.String()+"`", sp))
}

// fixedLength reports whether r matches a statically known, fixed number of
// code points, and that length — used to gate flavors whose lookbehind
// support requires a fixed-width operand (spec §9's quantified-lookbehind
// open question).
func fixedLength(r ast.Rule) (int, bool) {
	switch n := r.(type) {
	case *ast.Literal:
		return len([]rune(n.Text)), true
	case *ast.CharClass:
		return 1, true
	case *ast.Boundary:
		return 0, true
	case *ast.Lookaround:
		return 0, true
	case *ast.Group:
		total := 0
		for _, c := range n.Children {
			l, ok := fixedLength(c)
			if !ok {
				return 0, false
			}
			total += l
		}
		return total, true
	case *ast.Alternation:
		var length int
		for i, b := range n.Branches {
			l, ok := fixedLength(b)
			if !ok {
				return 0, false
			}
			if i > 0 && l != length {
				return 0, false
			}
			length = l
		}
		return length, true
	case *ast.Repetition:
		if n.Kind.Max == nil || *n.Kind.Max != n.Kind.Min {
			return 0, false
		}
		l, ok := fixedLength(n.Inner)
		if !ok {
			return 0, false
		}
		return l * n.Kind.Min, true
	case *ast.Range:
		if len(n.DigitsLo) == len(n.DigitsHi) {
			return len(n.DigitsLo), true
		}
		return 0, false
	case *ast.StmtExpr:
		return fixedLength(n.Body)
	default:
		// Variable, Reference, Negation, Grapheme: conservatively treated as
		// variable-length since resolving them here would need the
		// variable environment or a backreference's own match length,
		// neither known statically at this pass.
		return 0, false
	}
}
