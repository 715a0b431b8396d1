package resolve

import (
	"rulex/compiler/ast"
	"rulex/compiler/diagnose"
)

// Resolve runs both semantic traversals spec §4.3 describes — feature/flavor
// validation and capture/name resolution — over root, mutating cs in place
// (capture numbering, the name table, the variable environment) and
// returning every semantic error found. Lowering should not proceed if this
// returns any error.
func Resolve(root ast.Rule, cs *CompileState) []*diagnose.SemanticError {
	var errs []*diagnose.SemanticError

	checkFeatures(root, cs, &errs)

	groupsSoFar := 0
	var pending []pendingRef
	assignAndCollect(root, cs, false, &groupsSoFar, &pending, &errs)

	total := len(cs.Groups)
	for _, p := range pending {
		if p.insideLet {
			errs = append(errs, diagnose.NewSemanticError(diagnose.SemanticReferenceInLet,
				"a backreference cannot appear inside a `let` binding", p.ref.Span()))
			continue
		}
		switch p.ref.Kind {
		case ast.ReferenceNumber:
			if p.ref.Number < 1 || int(p.ref.Number) > total {
				errs = append(errs, diagnose.NewSemanticError(diagnose.SemanticUnknownReference,
					"no capturing group with this number", p.ref.Sp))
			}
		case ast.ReferenceNamed:
			if _, ok := cs.Names[p.ref.Name]; !ok {
				errs = append(errs, diagnose.NewSemanticError(diagnose.SemanticUnknownReference,
					"no capturing group with this name", p.ref.Sp))
			}
		case ast.ReferenceRelative:
			target := p.groupsSoFar + int(p.ref.Relative)
			if target < 1 || target > total {
				errs = append(errs, diagnose.NewSemanticError(diagnose.SemanticUnknownReference,
					"relative reference falls outside the capturing groups", p.ref.Sp))
				continue
			}
			cs.ResolvedRelative[p.ref] = uint32(target)
		}
	}

	return errs
}

type pendingRef struct {
	ref        *ast.Reference
	groupsSoFar int
	insideLet  bool
}

// assignAndCollect walks root in source order, assigning capture indices and
// names (spec §4.3.2) and recording every Reference node for a second pass
// once the final group count and name table are known.
func assignAndCollect(node ast.Rule, cs *CompileState, insideLet bool, groupsSoFar *int, pending *[]pendingRef, errs *[]*diagnose.SemanticError) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ast.Group:
		if n.Capture.Capturing {
			idx := cs.NextIndex
			cs.NextIndex++
			if n.Capture.Name != "" {
				if _, dup := cs.Names[n.Capture.Name]; dup {
					*errs = append(*errs, diagnose.NewSemanticError(diagnose.SemanticNameUsedMultipleTimes,
						"capture name `"+n.Capture.Name+"` is used more than once", n.Sp))
				} else {
					cs.Names[n.Capture.Name] = idx
				}
			}
			cs.Groups = append(cs.Groups, GroupInfo{Index: idx, Name: n.Capture.Name, Span: n.Sp})
			cs.GroupIndex[n] = idx
			*groupsSoFar++
		}
		for _, c := range n.Children {
			assignAndCollect(c, cs, insideLet, groupsSoFar, pending, errs)
		}

	case *ast.Alternation:
		for _, b := range n.Branches {
			assignAndCollect(b, cs, insideLet, groupsSoFar, pending, errs)
		}

	case *ast.Repetition:
		assignAndCollect(n.Inner, cs, insideLet, groupsSoFar, pending, errs)

	case *ast.Lookaround:
		assignAndCollect(n.Inner, cs, insideLet, groupsSoFar, pending, errs)

	case *ast.Negation:
		assignAndCollect(n.Inner, cs, insideLet, groupsSoFar, pending, errs)

	case *ast.StmtExpr:
		if n.Statement.Kind == ast.StmtLet {
			cs.Variables[n.Statement.Name] = n.Statement.Body
			assignAndCollect(n.Statement.Body, cs, true, groupsSoFar, pending, errs)
		}
		// enable/disable's effect on the default quantifier is resolved
		// during lowering (spec's component F groups default_quantifier
		// with lowering, not with capture/name resolution).
		assignAndCollect(n.Body, cs, insideLet, groupsSoFar, pending, errs)

	case *ast.Reference:
		*pending = append(*pending, pendingRef{ref: n, groupsSoFar: *groupsSoFar, insideLet: insideLet})

	default:
		// Literal, CharClass, Boundary, Variable, Range, Grapheme: leaves,
		// nothing to assign or collect.
	}
}
