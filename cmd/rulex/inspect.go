package main

import (
	"context"
	"fmt"
	"log/slog"

	"rulex/compiler"
	"rulex/compiler/ast"
	"rulex/compiler/codegen"
	"rulex/compiler/diagnose"
	"rulex/compiler/feature"
	"rulex/compiler/flavor"
	"rulex/compiler/lexer"
	"rulex/compiler/lower"
	"rulex/compiler/regexir"
	"rulex/compiler/resolve"
)

// InspectCmd runs a single pipeline stage and prints its output, adapting
// the teacher's cmd/topple/inspect.go Stage enum (tokens, ast, resolution,
// transform, codegen) to this pipeline's stages.
type InspectCmd struct {
	Expression string `arg:"" optional:"" help:"rulex expression to inspect"`
	Path       string `help:"Read the expression from a .rulex file instead of the positional argument"`
	Stage      string `help:"Pipeline stage to inspect" enum:"tokens,ast,semantic,ir,codegen" default:"codegen"`
	Flavor     string `name:"flavor" short:"f" default:"pcre" help:"Target regex flavor (only used by the ir/codegen stages)"`
}

func (c *InspectCmd) Run(globals *Globals, ctx *context.Context, log *slog.Logger) error {
	source, err := readExpressionOrPath(c.Expression, c.Path, log)
	if err != nil {
		return err
	}

	fl, err := parseFlavor(c.Flavor)
	if err != nil {
		return argError("%v", err)
	}

	switch c.Stage {
	case "tokens":
		return inspectTokens(source)
	case "ast":
		return inspectAST(source)
	case "semantic":
		return inspectSemantic(source, fl)
	case "ir":
		return inspectIR(source, fl)
	case "codegen":
		return inspectCodegen(source, fl)
	default:
		return argError("unknown stage %q", c.Stage)
	}
}

func inspectTokens(source string) error {
	scanner := lexer.NewScanner([]byte(source))
	tokens := scanner.ScanTokens()
	for i, tok := range tokens {
		fmt.Printf("%d: %s @ %s\n", i, tok, tok.Span)
	}
	if len(scanner.Errors) > 0 {
		return compileFailure()
	}
	return nil
}

func inspectAST(source string) error {
	root, _, diags := compiler.Parse(source)
	if root == nil {
		printDiagnostics(diags, source)
		return compileFailure()
	}
	fmt.Print(ast.Print(root))
	return nil
}

func inspectSemantic(source string, fl flavor.Flavor) error {
	root, _, diags := compiler.Parse(source)
	if root == nil {
		printDiagnostics(diags, source)
		return compileFailure()
	}

	cs := resolve.NewCompileState(feature.All(), fl)
	semErrs := resolve.Resolve(root, cs)
	if len(semErrs) > 0 {
		for _, e := range semErrs {
			fmt.Println(e.ToDiagnostic().DefaultDisplay(source))
		}
		return compileFailure()
	}

	fmt.Printf("groups: %d\n", len(cs.Groups))
	for _, g := range cs.Groups {
		if g.Name != "" {
			fmt.Printf("  #%d %s\n", g.Index, g.Name)
		} else {
			fmt.Printf("  #%d\n", g.Index)
		}
	}
	return nil
}

func inspectIR(source string, fl flavor.Flavor) error {
	node, err := lowerForInspect(source, fl)
	if err != nil {
		return err
	}
	fmt.Print(regexir.Print(regexir.Optimize(node)))
	return nil
}

func inspectCodegen(source string, fl flavor.Flavor) error {
	node, err := lowerForInspect(source, fl)
	if err != nil {
		return err
	}
	fmt.Println(codegen.Generate(regexir.Optimize(node), fl))
	return nil
}

// lowerForInspect runs the pipeline through lowering, shared by the ir and
// codegen inspect stages (everything up to regexir.Optimize is identical).
func lowerForInspect(source string, fl flavor.Flavor) (regexir.Node, error) {
	root, _, diags := compiler.Parse(source)
	if root == nil {
		printDiagnostics(diags, source)
		return nil, compileFailure()
	}

	cs := resolve.NewCompileState(feature.All(), fl)
	if semErrs := resolve.Resolve(root, cs); len(semErrs) > 0 {
		for _, e := range semErrs {
			fmt.Println(e.ToDiagnostic().DefaultDisplay(source))
		}
		return nil, compileFailure()
	}

	node, lowerErrs := lower.New(cs).Lower(root)
	if len(lowerErrs) > 0 {
		for _, e := range lowerErrs {
			fmt.Println(e.ToDiagnostic().DefaultDisplay(source))
		}
		return nil, compileFailure()
	}

	return node, nil
}

func printDiagnostics(diags []diagnose.Diagnostic, source string) {
	for _, d := range diags {
		fmt.Println(d.DefaultDisplay(source))
	}
}
