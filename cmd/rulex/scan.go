package main

import (
	"context"
	"fmt"
	"log/slog"

	"rulex/compiler/lexer"
)

// ScanCmd runs just the tokenizer and prints the resulting tokens,
// mirroring the teacher's scan command but operating on a single rulex
// expression rather than a directory of source files.
type ScanCmd struct {
	Expression string `arg:"" optional:"" help:"rulex expression to scan"`
	Path       string `help:"Read the expression from a .rulex file instead of the positional argument"`
}

func (s *ScanCmd) Run(globals *Globals, ctx *context.Context, log *slog.Logger) error {
	source, err := readExpressionOrPath(s.Expression, s.Path, log)
	if err != nil {
		return err
	}

	scanner := lexer.NewScanner([]byte(source))
	tokens := scanner.ScanTokens()

	for i, tok := range tokens {
		fmt.Printf("%d: %s @ %s\n", i, tok, tok.Span)
	}

	if len(scanner.Errors) > 0 {
		fmt.Printf("\n-- errors (%d) --\n", len(scanner.Errors))
		for i, e := range scanner.Errors {
			fmt.Printf("%d: %v\n", i+1, e)
		}
		return compileFailure()
	}
	return nil
}
