// Package lower walks a validated AST producing the flavor-agnostic regex
// IR (spec §4.4): inlining variables, converting `range` into a minimal
// alternation, and resolving the structural `!` negation against whatever
// it wraps.
package lower

import (
	"rulex/compiler/ast"
	"rulex/compiler/diagnose"
	"rulex/compiler/regexir"
	"rulex/compiler/resolve"
)

// Lowerer holds the compile state threaded through a lowering pass.
type Lowerer struct {
	cs *resolve.CompileState
}

// New returns a Lowerer over cs, the CompileState a prior resolve.Resolve
// call already populated with capture indices and the variable
// environment.
func New(cs *resolve.CompileState) *Lowerer {
	return &Lowerer{cs: cs}
}

// Lower converts root into regex IR. Errors are semantic (RecursiveVariable,
// NotSupported) rather than structural, matching spec §7's policy that
// lowering errors are collected and abort the pipeline.
func (l *Lowerer) Lower(root ast.Rule) (regexir.Node, []*diagnose.SemanticError) {
	var errs []*diagnose.SemanticError
	node := l.lower(root, ast.QuantifierGreedy, &errs)
	return node, errs
}

func (l *Lowerer) lower(r ast.Rule, defaultQuant ast.Quantifier, errs *[]*diagnose.SemanticError) regexir.Node {
	if r == nil {
		return &regexir.Empty{}
	}

	switch n := r.(type) {
	case *ast.Literal:
		return &regexir.Literal{Text: n.Text}

	case *ast.Grapheme:
		return &regexir.Grapheme{}

	case *ast.CharClass:
		return l.lowerCharClass(n, false)

	case *ast.Group:
		children := make([]regexir.Node, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, l.lower(c, defaultQuant, errs))
		}
		g := &regexir.Group{Children: children, Atomic: n.Atomic}
		if n.Capture.Capturing {
			g.Capturing = true
			g.Name = n.Capture.Name
			g.Index = l.cs.GroupIndex[n]
		}
		return g

	case *ast.Alternation:
		branches := make([]regexir.Node, 0, len(n.Branches))
		for _, b := range n.Branches {
			branches = append(branches, l.lower(b, defaultQuant, errs))
		}
		return &regexir.Alt{Branches: branches}

	case *ast.Repetition:
		inner := l.lower(n.Inner, defaultQuant, errs)
		quant := toIRQuantifier(n.Quantifier, defaultQuant)
		rep := &regexir.Rep{Inner: inner, Min: n.Kind.Min, Quantifier: quant}
		if n.Kind.Max != nil {
			m := *n.Kind.Max
			rep.Max = &m
		}
		return rep

	case *ast.Boundary:
		switch n.Kind {
		case ast.BoundaryStart:
			return &regexir.Anchor{Kind: regexir.AnchorStart}
		case ast.BoundaryEnd:
			return &regexir.Anchor{Kind: regexir.AnchorEnd}
		case ast.BoundaryWord:
			return &regexir.WordBoundary{Negate: false}
		default:
			return &regexir.WordBoundary{Negate: true}
		}

	case *ast.Lookaround:
		dir := regexir.Ahead
		if n.Direction == ast.LookaroundBehind {
			dir = regexir.Behind
		}
		return &regexir.Lookaround{Inner: l.lower(n.Inner, defaultQuant, errs), Direction: dir, Negate: n.Negative}

	case *ast.Negation:
		return l.lowerNegation(n, defaultQuant, errs)

	case *ast.Variable:
		return l.lowerVariable(n, errs)

	case *ast.Reference:
		switch n.Kind {
		case ast.ReferenceNumber:
			return &regexir.Backref{Number: n.Number}
		case ast.ReferenceNamed:
			return &regexir.Backref{Name: n.Name}
		default: // Relative: resolve already computed and stored the absolute index
			return &regexir.Backref{Number: l.cs.ResolvedRelative[n]}
		}

	case *ast.Range:
		return lowerRange(n)

	case *ast.StmtExpr:
		return l.lowerStmt(n, defaultQuant, errs)

	default:
		return &regexir.Empty{}
	}
}

func (l *Lowerer) lowerStmt(n *ast.StmtExpr, defaultQuant ast.Quantifier, errs *[]*diagnose.SemanticError) regexir.Node {
	switch n.Statement.Kind {
	case ast.StmtEnable:
		return l.lower(n.Body, ast.QuantifierLazy, errs)
	case ast.StmtDisable:
		return l.lower(n.Body, ast.QuantifierGreedy, errs)
	default: // StmtLet: the binding itself contributes nothing at its own
		// position; its body is lowered lazily on first Variable reference.
		return l.lower(n.Body, defaultQuant, errs)
	}
}

func toIRQuantifier(q ast.Quantifier, fallback ast.Quantifier) regexir.Quantifier {
	effective := q
	if effective == ast.QuantifierDefault {
		effective = fallback
	}
	if effective == ast.QuantifierLazy {
		return regexir.Lazy
	}
	return regexir.Greedy
}

// lowerVariable resolves a Variable reference against the compile state's
// environment (user `let` bindings shadow builtins by name, spec §9),
// lowering and caching the bound body on first use and detecting cycles via
// the LoweringInProgress marker (spec §4.4).
func (l *Lowerer) lowerVariable(n *ast.Variable, errs *[]*diagnose.SemanticError) regexir.Node {
	if cached, ok := l.cs.LoweredCache[n.Name]; ok {
		return cached
	}
	body, ok := l.cs.Variables[n.Name]
	if !ok {
		*errs = append(*errs, diagnose.NewSemanticError(diagnose.SemanticUnknownReference,
			"unknown variable `"+n.Name+"`", n.Sp))
		return &regexir.Empty{}
	}
	if l.cs.LoweringInProgress[n.Name] {
		*errs = append(*errs, diagnose.NewSemanticError(diagnose.SemanticRecursiveVariable,
			"`"+n.Name+"` is defined in terms of itself", n.Sp))
		return &regexir.Empty{}
	}
	l.cs.LoweringInProgress[n.Name] = true
	lowered := l.lower(body, ast.QuantifierGreedy, errs)
	delete(l.cs.LoweringInProgress, n.Name)
	l.cs.LoweredCache[n.Name] = lowered
	return lowered
}
