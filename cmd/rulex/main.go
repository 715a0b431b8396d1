// Package main wires the rulex compiler pipeline behind a kong CLI,
// mirroring the teacher's cmd/main.go shape: a Globals struct carrying
// flags shared across subcommands, a slog.Logger built once in main and
// threaded through context, and one Cmd struct per subcommand.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
)

var Version = "dev"

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

// Globals holds flags shared by every subcommand.
type Globals struct {
	Debug     bool        `help:"Enable debug logging" short:"d"`
	Version   VersionFlag `name:"version" help:"Print version information and quit"`
	Recursive bool        `help:"Process directories recursively" short:"r"`
}

// CLI holds the root command structure including global flags.
type CLI struct {
	Globals

	Compile CompileCmd `cmd:"" default:"1" help:"Compile a rulex expression to a regex"`
	Scan    ScanCmd    `cmd:"" help:"Run the tokenizer and show tokens"`
	Parse   ParseCmd   `cmd:"" help:"Run the parser and show the AST"`
	Inspect InspectCmd `cmd:"" help:"Run one pipeline stage and show its output"`
	Watch   WatchCmd   `cmd:"" help:"Watch a directory of .rulex files and recompile on change"`
}

// exitCoder lets a subcommand's Run report spec §6's exit code (2 argument
// error, 3 I/O error) instead of the kong default of 1 for every error.
type exitCoder interface {
	ExitCode() int
}

func main() {
	cli := CLI{}

	if len(os.Args) < 2 {
		os.Args = append(os.Args, "--help")
	}

	kCtx := kong.Parse(&cli,
		kong.Name("rulex"),
		kong.Description("rulex compiler CLI - compile a regex meta-language expression to a target regex flavor"),
		kong.UsageOnError(),
		kong.Vars{
			"version": Version,
		},
	)

	level := slog.LevelInfo
	if cli.Globals.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()
	log.DebugContext(ctx, "startup", slog.Int("GOMAXPROCS", runtime.GOMAXPROCS(0)))

	err := kCtx.Run(&cli.Globals, &ctx, log)
	if err == nil {
		return
	}

	if err.Error() != "" {
		fmt.Fprintln(os.Stderr, err)
	}
	if ec, ok := err.(exitCoder); ok {
		os.Exit(ec.ExitCode())
	}
	os.Exit(2)
}
