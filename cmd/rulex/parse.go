package main

import (
	"context"
	"fmt"
	"log/slog"

	"rulex/compiler"
	"rulex/compiler/ast"
)

// ParseCmd runs the lexer and parser and prints the resulting AST,
// mirroring the teacher's parse command.
type ParseCmd struct {
	Expression string `arg:"" optional:"" help:"rulex expression to parse"`
	Path       string `help:"Read the expression from a .rulex file instead of the positional argument"`
}

func (p *ParseCmd) Run(globals *Globals, ctx *context.Context, log *slog.Logger) error {
	source, err := readExpressionOrPath(p.Expression, p.Path, log)
	if err != nil {
		return err
	}

	root, warnings, diags := compiler.Parse(source)

	for _, d := range diags {
		fmt.Println(d.Description)
	}
	if root == nil {
		return compileFailure()
	}

	fmt.Print(ast.Print(root))
	for _, w := range warnings {
		d := w.ToDiagnostic()
		fmt.Println(d.DefaultDisplay(source))
	}
	return nil
}
