package main

import (
	"log/slog"

	"rulex/internal/filesystem"
)

// readExpressionOrPath is CompileCmd.readSource's logic, shared by the
// introspection commands (scan/parse/inspect) that take the same
// Expression/--path pair.
func readExpressionOrPath(expression, path string, log *slog.Logger) (string, error) {
	if path != "" && expression != "" {
		return "", argError("specify either an expression or --path, not both")
	}
	if path == "" && expression == "" {
		return "", argError("an expression or --path is required")
	}
	if path == "" {
		return expression, nil
	}

	fs := filesystem.NewFileSystem(log)
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", ioError(err)
	}
	return string(data), nil
}
