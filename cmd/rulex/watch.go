package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rulex/compiler"
	"rulex/compiler/diagnose"
	"rulex/compiler/feature"
	"rulex/internal/filesystem"
)

// WatchCmd watches a directory of .rulex files and recompiles each one on
// change, mirroring the teacher's cmd/topple/watch.go debounce-and-recompile
// loop. Every file compiles under one flavor per run, same as CompileCmd.
type WatchCmd struct {
	Directory string `arg:"" required:"" help:"Directory to watch for .rulex file changes"`
	Output    string `help:"Output directory for compiled .regex files (default: same as input)" default:""`
	Delay     int    `help:"Debounce delay in milliseconds" default:"300"`

	Flavor string `name:"flavor" short:"f" default:"pcre" help:"Target regex flavor"`
}

func (w *WatchCmd) Run(globals *Globals, ctx *context.Context, log *slog.Logger) error {
	fl, err := parseFlavor(w.Flavor)
	if err != nil {
		return argError("%v", err)
	}

	fs := filesystem.NewFileSystem(log)

	exists, err := fs.Exists(w.Directory)
	if err != nil {
		return ioError(err)
	}
	if !exists {
		return argError("directory does not exist: %s", w.Directory)
	}
	isDir, err := fs.IsDir(w.Directory)
	if err != nil {
		return ioError(err)
	}
	if !isDir {
		return argError("path is not a directory: %s", w.Directory)
	}

	opts := compiler.Options{Flavor: fl, Features: feature.All(), Warnings: diagnose.NewWarningSet()}

	log.InfoContext(*ctx, "performing initial compilation", slog.String("directory", w.Directory))
	if err := compileDirectory(fs, w.Directory, w.Output, globals.Recursive, opts, log, *ctx); err != nil {
		return ioError(err)
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := fs.WatchFiles(watchCtx, []string{w.Directory}, globals.Recursive)
	if err != nil {
		return ioError(err)
	}

	timer := time.NewTimer(time.Duration(w.Delay) * time.Millisecond)
	timer.Stop()
	needsRecompile := false

	fmt.Printf("watching '%s' for changes...\n", w.Directory)

	for {
		select {
		case <-(*ctx).Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !isRulexFile(event.Path) {
				continue
			}
			timer.Reset(time.Duration(w.Delay) * time.Millisecond)
			needsRecompile = true

		case <-timer.C:
			if !needsRecompile {
				continue
			}
			log.InfoContext(*ctx, "recompiling after file changes")
			if err := compileDirectory(fs, w.Directory, w.Output, globals.Recursive, opts, log, *ctx); err != nil {
				log.ErrorContext(*ctx, "compilation failed", slog.String("error", err.Error()))
				fmt.Printf("compilation error: %v\n", err)
			} else {
				fmt.Println("compilation successful")
			}
			needsRecompile = false
		}
	}
}

// compileDirectory compiles every .rulex file under dir, writing each
// result next to its source (or into outputDir) as a .regex file.
func compileDirectory(fs filesystem.FileSystem, dir, outputDir string, recursive bool, opts compiler.Options, log *slog.Logger, ctx context.Context) error {
	files, err := fs.ListRulexFiles(dir, recursive)
	if err != nil {
		return fmt.Errorf("error listing rulex files: %w", err)
	}

	start := time.Now()
	for _, file := range files {
		if err := compileOneFile(fs, file, outputDir, opts, log, ctx); err != nil {
			return fmt.Errorf("error compiling %s: %w", file, err)
		}
	}
	log.InfoContext(ctx, "directory compilation completed",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("fileCount", len(files)))
	return nil
}

func compileOneFile(fs filesystem.FileSystem, inputPath, outputDir string, opts compiler.Options, log *slog.Logger, ctx context.Context) error {
	content, err := fs.ReadFile(inputPath)
	if err != nil {
		return err
	}

	outputPath, err := fs.GetOutputPath(inputPath, outputDir)
	if err != nil {
		return err
	}

	result := compiler.Compile(string(content), opts)
	if !result.Success {
		for _, d := range result.Diagnostics {
			log.ErrorContext(ctx, "compile error", slog.String("file", inputPath), slog.String("message", d.Description))
		}
		return fmt.Errorf("%d error(s) compiling %s", len(result.Diagnostics), inputPath)
	}

	if err := fs.WriteFile(outputPath, []byte(*result.Output+"\n"), 0644); err != nil {
		return err
	}
	log.InfoContext(ctx, "compiled file", slog.String("input", inputPath), slog.String("output", outputPath))
	return nil
}

func isRulexFile(path string) bool {
	return strings.HasSuffix(path, filesystem.SourceExt)
}
