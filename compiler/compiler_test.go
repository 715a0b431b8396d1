package compiler

import (
	"testing"

	"rulex/compiler/flavor"
)

func TestCompileLiteral(t *testing.T) {
	result := Compile(`"foo"`, DefaultOptions())
	if !result.Success {
		t.Fatalf("expected success, diagnostics: %v", result.Diagnostics)
	}
	if result.Output == nil || *result.Output != "foo" {
		t.Fatalf("output = %v, want foo", result.Output)
	}
}

func TestCompileLazyRepetition(t *testing.T) {
	result := Compile(`'a'+ lazy`, DefaultOptions())
	if !result.Success {
		t.Fatalf("expected success, diagnostics: %v", result.Diagnostics)
	}
	if *result.Output != "a+?" {
		t.Fatalf("output = %q, want a+?", *result.Output)
	}
}

func TestCompileGreedyRepetitionDefault(t *testing.T) {
	result := Compile(`'a'+`, DefaultOptions())
	if !result.Success {
		t.Fatalf("expected success, diagnostics: %v", result.Diagnostics)
	}
	if *result.Output != "a+" {
		t.Fatalf("output = %q, want a+", *result.Output)
	}
}

func TestCompileNamedCapturingGroup(t *testing.T) {
	result := Compile(`:name("ab" | "cd")`, DefaultOptions())
	if !result.Success {
		t.Fatalf("expected success, diagnostics: %v", result.Diagnostics)
	}
	if *result.Output != "(?<name>ab|cd)" {
		t.Fatalf("output = %q, want (?<name>ab|cd)", *result.Output)
	}
}

func TestCompileGraphemeRejectedUnderJavaScript(t *testing.T) {
	opts := DefaultOptions()
	opts.Flavor = flavor.JavaScript
	result := Compile(`Grapheme`, opts)
	if result.Success {
		t.Fatalf("expected failure for Grapheme under JavaScript")
	}
	if len(result.Diagnostics) == 0 || result.Diagnostics[0].Kind != "Unsupported" {
		t.Fatalf("diagnostics = %#v, want an Unsupported error", result.Diagnostics)
	}
}

func TestCompileSuccessImpliesNoErrorDiagnostic(t *testing.T) {
	result := Compile(`"a" | "b"`, DefaultOptions())
	if !result.Success {
		t.Fatalf("expected success, diagnostics: %v", result.Diagnostics)
	}
	for _, d := range result.Diagnostics {
		if d.Severity == 0 {
			t.Fatalf("success result carries an error diagnostic: %+v", d)
		}
	}
}

func TestCompileLexErrorFails(t *testing.T) {
	result := Compile(`"unterminated`, DefaultOptions())
	if result.Success {
		t.Fatalf("expected failure for unterminated string")
	}
	if result.Output != nil {
		t.Fatalf("Output = %v, want nil on failure", result.Output)
	}
}

func TestParseAndCompileReturnsBothASTAndResult(t *testing.T) {
	root, result := ParseAndCompile(`"foo"`, DefaultOptions())
	if root == nil {
		t.Fatalf("expected a non-nil AST root")
	}
	if !result.Success || *result.Output != "foo" {
		t.Fatalf("result = %+v, want success foo", result)
	}
}
