// Package compiler assembles the pipeline lexer -> parser -> resolve ->
// lower -> regexir.Optimize -> codegen into the two entry points spec §6's
// abstract API names: Parse and Compile, plus a ParseAndCompile convenience.
// Grounded on the teacher's compiler/compiler.go, which wires its own
// scanner -> parser -> transformers -> codegen chain behind a single
// StandardCompiler; this package keeps that "one function per pipeline
// stage, called in sequence from one entry point" shape but drops the
// teacher's Compiler interface (there is only ever one implementation here,
// so an interface would have exactly one caller and one callee).
package compiler

import (
	"time"

	"rulex/compiler/ast"
	"rulex/compiler/codegen"
	"rulex/compiler/diagnose"
	"rulex/compiler/feature"
	"rulex/compiler/flavor"
	"rulex/compiler/lexer"
	"rulex/compiler/lower"
	"rulex/compiler/parser"
	"rulex/compiler/regexir"
	"rulex/compiler/resolve"
)

// Options configures a Compile call: target flavor, the allowed feature
// set (spec's `--allowed-features`), and which warning categories to
// surface (spec's `-W`).
type Options struct {
	Flavor   flavor.Flavor
	Features feature.Set
	Warnings *diagnose.WarningSet
}

// DefaultOptions returns the CLI's default: PCRE, every feature allowed,
// every warning category enabled.
func DefaultOptions() Options {
	return Options{
		Flavor:   flavor.PCRE,
		Features: feature.All(),
		Warnings: diagnose.NewWarningSet(),
	}
}

// Parse scans and parses source, returning the AST root (nil on a fatal lex
// or parse error), any deprecation warnings collected during parsing, and
// any lex/parse diagnostics. No unused-variable warning is produced. This is spec §6's
// `parse(source) -> (Option<AST>, warnings)`.
func Parse(source string) (ast.Rule, []diagnose.Warning, []diagnose.Diagnostic) {
	scanner := lexer.NewScanner([]byte(source))
	tokens := scanner.ScanTokens()

	var diags []diagnose.Diagnostic
	for _, e := range scanner.Errors {
		diags = append(diags, *e.ToDiagnostic())
	}
	if len(scanner.Errors) > 0 {
		return nil, nil, diags
	}

	result := parser.Parse(tokens)
	for _, e := range result.Errors {
		diags = append(diags, *e.ToDiagnostic())
	}
	if len(result.Errors) > 0 {
		return nil, result.Warnings, diags
	}
	return result.Root, result.Warnings, diags
}

// Compile runs the full pipeline over source and returns the spec §6
// Result: either a rendered regex with Success true, or Success false with
// at least one error diagnostic. This is spec §6's
// `AST::compile(source, options) -> Result<String, Diagnostic>`, folded
// together with parsing since the public surface only ever needs to go
// from raw source to a finished result or a reason it failed.
func Compile(source string, opts Options) diagnose.Result {
	start := time.Now()

	root, warnings, diags := Parse(source)
	if root == nil {
		return diagnose.NewFailure(opts.Warnings.Filter(diags), elapsedMicros(start))
	}

	cs := resolve.NewCompileState(opts.Features, opts.Flavor)
	if semErrs := resolve.Resolve(root, cs); len(semErrs) > 0 {
		for _, e := range semErrs {
			diags = append(diags, *e.ToDiagnostic())
		}
		return diagnose.NewFailure(opts.Warnings.Filter(diags), elapsedMicros(start))
	}

	node, lowerErrs := lower.New(cs).Lower(root)
	if len(lowerErrs) > 0 {
		for _, e := range lowerErrs {
			diags = append(diags, *e.ToDiagnostic())
		}
		return diagnose.NewFailure(opts.Warnings.Filter(diags), elapsedMicros(start))
	}

	node = regexir.Optimize(node)

	var output string
	if regexir.Classify(node) != regexir.CountZero {
		output = codegen.Generate(node, opts.Flavor)
	}
	// A CountZero node can't match anything (e.g. a non-negated character
	// class with no members, or a sequence containing one); emitting
	// regex syntax for it would be dead code, so it compiles to the empty
	// string instead, mirroring the original's optimize()-returns-Zero
	// short-circuit.

	for _, w := range warnings {
		diags = append(diags, *w.ToDiagnostic())
	}
	return diagnose.NewSuccess(output, opts.Warnings.Filter(diags), elapsedMicros(start))
}

// ParseAndCompile runs Parse and Compile together, for callers that want
// both the AST (e.g. for `--debug` AST dumping) and the compiled result
// from a single call. This is spec §6's `parse_and_compile` convenience.
func ParseAndCompile(source string, opts Options) (ast.Rule, diagnose.Result) {
	root, _, _ := Parse(source)
	return root, Compile(source, opts)
}

func elapsedMicros(start time.Time) int64 {
	return time.Since(start).Microseconds()
}
