package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"rulex/compiler"
	"rulex/compiler/ast"
	"rulex/compiler/diagnose"
	"rulex/compiler/feature"
	"rulex/compiler/flavor"
)

// CompileCmd is the CLI's primary command, spec §6's external interface:
// an expression in, a regex (or a JSON diagnostic report) out.
type CompileCmd struct {
	Expression string `arg:"" optional:"" help:"rulex expression to compile"`
	Path       string `help:"Read the expression from a .rulex file instead of the positional argument"`

	Flavor          string   `name:"flavor" short:"f" default:"pcre" help:"Target regex flavor: pcre, js, java, dotnet, python, ruby, rust"`
	JSON            bool     `name:"json" help:"Emit the result as a single JSON object to stdout"`
	NoNewLine       bool     `name:"no-new-line" short:"n" help:"Omit the trailing newline on plain-text regex output"`
	Debug           bool     `name:"debug" short:"d" help:"Print the parsed AST to stderr"`
	Warn            []string `name:"warn" short:"W" help:"Enable/disable a warning category (kind=0, kind=1, or bare 0 to silence all)"`
	AllowedFeatures string   `name:"allowed-features" help:"Comma-separated opt-in feature gate"`
}

func (c *CompileCmd) Run(globals *Globals, ctx *context.Context, log *slog.Logger) error {
	source, err := c.readSource(log)
	if err != nil {
		return err
	}

	fl, err := parseFlavor(c.Flavor)
	if err != nil {
		return argError("%v", err)
	}

	features, err := parseFeatures(c.AllowedFeatures)
	if err != nil {
		return argError("%v", err)
	}

	warnings, err := parseWarningFlags(c.Warn)
	if err != nil {
		return argError("%v", err)
	}

	opts := compiler.Options{Flavor: fl, Features: features, Warnings: warnings}

	if c.Debug {
		root, _, _ := compiler.Parse(source)
		if root != nil {
			fmt.Fprintln(os.Stderr, ast.Print(root))
		}
	}

	result := compiler.Compile(source, opts)

	if c.JSON {
		return writeJSONResult(result)
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.DefaultDisplay(source))
	}

	if !result.Success {
		return compileFailure()
	}

	out := *result.Output
	if !c.NoNewLine {
		out += "\n"
	}
	fmt.Print(out)
	return nil
}

// readSource resolves the Expression/--path mutual exclusion (spec §6:
// "reads an expression from a positional argument or --path FILE").
func (c *CompileCmd) readSource(log *slog.Logger) (string, error) {
	return readExpressionOrPath(c.Expression, c.Path, log)
}

// parseFlavor maps a --flavor argument onto flavor.Flavor, accepting the
// spec's "js" shorthand as an alias for flavor.JavaScript's canonical
// "javascript" name.
func parseFlavor(s string) (flavor.Flavor, error) {
	if s == "js" {
		s = "javascript"
	}
	return flavor.Parse(s)
}

// parseFeatures builds the --allowed-features gate, rejecting an unknown
// feature name as an argument error rather than silently ignoring it.
func parseFeatures(raw string) (feature.Set, error) {
	if raw == "" {
		return feature.All(), nil
	}
	names := strings.Split(raw, ",")
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
		if !feature.Valid(names[i]) {
			return feature.Set{}, fmt.Errorf("unknown feature %q", names[i])
		}
	}
	return feature.FromNames(names), nil
}

// parseWarningFlags implements `-W <kind>{=0,1}`: a bare "0" disables every
// category, "kind=0"/"kind=1" disables/enables one.
func parseWarningFlags(flags []string) (*diagnose.WarningSet, error) {
	ws := diagnose.NewWarningSet()
	for _, f := range flags {
		if f == "0" {
			ws.DisableAll()
			continue
		}
		kind, val, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -W value %q (want kind=0, kind=1, or 0)", f)
		}
		switch val {
		case "0":
			ws.Set(kind, false)
		case "1":
			ws.Set(kind, true)
		default:
			return nil, fmt.Errorf("invalid -W value %q (want kind=0 or kind=1)", f)
		}
	}
	return ws, nil
}

func writeJSONResult(result diagnose.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return ioError(err)
	}
	fmt.Println(string(data))
	if !result.Success {
		return compileFailure()
	}
	return nil
}
