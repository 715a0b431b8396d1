// Package diagnose defines the error and warning values threaded through
// every compiler stage (lexer, parser, resolver) and the two renderers that
// turn them into user-facing output: a caret-underlined plain-text form and
// the stable JSON schema consumed by `rulex --json`.
package diagnose

import (
	"fmt"
	"strings"

	"rulex/compiler/span"
)

// Severity distinguishes a fatal problem from an advisory one.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is the single rendering-ready shape every stage-specific error
// or warning is converted into. Kind is a stable, machine-readable category
// name; Code is the "P###" identifier from spec §7 (empty for ad-hoc
// diagnostics that have no assigned code).
type Diagnostic struct {
	Severity    Severity
	Kind        string
	Code        string
	Span        span.Span
	Description string
	Help        string
	Fixes       []string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Kind, d.Description)
}

// AdHoc builds a Diagnostic that has no source span, used for CLI-level
// errors (bad arguments, I/O failures) that never reach the parser.
func AdHoc(severity Severity, message string) *Diagnostic {
	return &Diagnostic{Severity: severity, Kind: "ad-hoc", Description: message}
}

// DefaultDisplay renders a caret-underlined plain-text form of the
// diagnostic. When source is empty (no span information available) it falls
// back to a single line.
func (d *Diagnostic) DefaultDisplay(source string) string {
	var b strings.Builder
	b.WriteString(d.Description)

	if source != "" && !(d.Span.Start == 0 && d.Span.End == 0) {
		line, col, lineText := lineAndColumn(source, d.Span.Start)
		width := d.Span.End - d.Span.Start
		if width < 1 {
			width = 1
		}
		fmt.Fprintf(&b, "\n  --> line %d, column %d\n", line, col)
		fmt.Fprintf(&b, "  | %s\n", lineText)
		fmt.Fprintf(&b, "  | %s%s\n", strings.Repeat(" ", col-1), strings.Repeat("^", width))
	}
	if d.Help != "" {
		fmt.Fprintf(&b, "  help: %s", d.Help)
	}
	return b.String()
}

// lineAndColumn converts a byte offset into 1-based line/column numbers and
// returns the text of that line (without its trailing newline).
func lineAndColumn(source string, offset int) (line, col int, lineText string) {
	if offset > len(source) {
		offset = len(source)
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1

	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd == -1 {
		lineText = source[lineStart:]
	} else {
		lineText = source[lineStart : lineStart+lineEnd]
	}
	return line, col, lineText
}
