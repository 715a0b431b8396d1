// Package resolve implements the semantic pass over a parsed AST: capture
// numbering and name resolution, and feature/flavor capability validation
// (spec §4.3), plus the compile state (spec's component F) threaded on into
// lowering.
package resolve

import (
	"rulex/compiler/ast"
	"rulex/compiler/feature"
	"rulex/compiler/flavor"
	"rulex/compiler/regexir"
	"rulex/compiler/span"
)

// GroupInfo records one capturing group's final index, optional name, and
// declaration span.
type GroupInfo struct {
	Index uint32
	Name  string
	Span  span.Span
}

// CompileState is the mutable context carried through semantic analysis and
// lowering: the next capture index, the name table, the default quantifier,
// the `let` variable environment (pre-seeded with builtins), and the
// feature/flavor gate.
type CompileState struct {
	NextIndex         uint32
	Names             map[string]uint32
	Groups            []GroupInfo
	DefaultQuantifier ast.Quantifier
	Variables         map[string]ast.Rule
	Features          feature.Set
	Flavor            flavor.Flavor

	// GroupIndex maps each capturing *ast.Group encountered during Resolve
	// to its assigned index, so lowering can look a node's index up by
	// identity instead of re-deriving it.
	GroupIndex map[*ast.Group]uint32

	// ResolvedRelative maps each *ast.Reference of kind ReferenceRelative to
	// the absolute group index Resolve computed for it (groupsSoFar at the
	// reference's position plus its relative offset), so lowering emits the
	// same group Resolve validated instead of re-deriving it from the final
	// group count.
	ResolvedRelative map[*ast.Reference]uint32

	// LoweringInProgress marks a variable currently being lowered, so a
	// re-entrant reference to it can be reported as RecursiveVariable
	// (spec §4.4). Owned here so resolve and lower share one map.
	LoweringInProgress map[string]bool
	// LoweredCache holds each variable's lowered IR the first time it is
	// used, keyed by name; subsequent uses reuse the cached subtree.
	LoweredCache map[string]regexir.Node
}

// NewCompileState returns a CompileState with the builtins namespace
// (Start, End, Grapheme, G, Codepoint, C) pre-registered.
func NewCompileState(features feature.Set, fl flavor.Flavor) *CompileState {
	cs := &CompileState{
		NextIndex:          1,
		Names:              make(map[string]uint32),
		DefaultQuantifier:  ast.QuantifierGreedy,
		Variables:          make(map[string]ast.Rule),
		Features:           features,
		Flavor:             fl,
		GroupIndex:         make(map[*ast.Group]uint32),
		ResolvedRelative:   make(map[*ast.Reference]uint32),
		LoweringInProgress: make(map[string]bool),
		LoweredCache:       make(map[string]regexir.Node),
	}
	registerBuiltins(cs)
	return cs
}

// registerBuiltins seeds the variable environment with the predefined
// synthetic nodes named in spec §4.4. A user `let` with the same name
// overwrites the entry in Variables, which is the shadowing behavior spec
// §9's open question resolves in favor of: pomsky-lib's own variable
// environment looks up user bindings back-to-front before falling back to
// builtins, so a user `let C = ...` legitimately shadows the builtin.
func registerBuiltins(cs *CompileState) {
	cs.Variables["Start"] = &ast.Boundary{Kind: ast.BoundaryStart}
	cs.Variables["End"] = &ast.Boundary{Kind: ast.BoundaryEnd}
	cs.Variables["Grapheme"] = &ast.Grapheme{}
	cs.Variables["G"] = &ast.Grapheme{}
	codepoint := &ast.CharClass{
		GroupKind: ast.CharGroupItems,
		Items:     []ast.Item{{Kind: ast.ItemNamed, Name: ast.GroupCodepoint, PropertyName: "codepoint"}},
	}
	cs.Variables["Codepoint"] = codepoint
	cs.Variables["C"] = codepoint
}
