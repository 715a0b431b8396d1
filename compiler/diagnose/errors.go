package diagnose

import (
	"fmt"

	"rulex/compiler/span"
)

// LexError is an error produced by the scanner.
type LexError struct {
	Kind    LexErrorKind
	Message string
	Span    span.Span
}

// NewLexError creates a new LexError.
func NewLexError(kind LexErrorKind, message string, sp span.Span) *LexError {
	return &LexError{Kind: kind, Message: message, Span: sp}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Span, e.Message)
}

// ToDiagnostic converts the LexError to a renderable Diagnostic.
func (e *LexError) ToDiagnostic() *Diagnostic {
	return &Diagnostic{
		Severity:    SeverityError,
		Kind:        e.Kind.String(),
		Code:        lexErrorCode[e.Kind],
		Span:        e.Span,
		Description: e.Message,
	}
}

// ParseError is an error produced by the parser.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
	Span    span.Span
}

// NewParseError creates a new ParseError.
func NewParseError(kind ParseErrorKind, message string, sp span.Span) *ParseError {
	return &ParseError{Kind: kind, Message: message, Span: sp}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Span, e.Message)
}

// ToDiagnostic converts the ParseError to a renderable Diagnostic.
func (e *ParseError) ToDiagnostic() *Diagnostic {
	return &Diagnostic{
		Severity:    SeverityError,
		Kind:        e.Kind.String(),
		Code:        parseErrorCode[e.Kind],
		Span:        e.Span,
		Description: e.Message,
	}
}

// SemanticError is an error produced by the resolver (capture/name/feature
// validation pass).
type SemanticError struct {
	Kind    SemanticErrorKind
	Message string
	Span    span.Span
}

// NewSemanticError creates a new SemanticError.
func NewSemanticError(kind SemanticErrorKind, message string, sp span.Span) *SemanticError {
	return &SemanticError{Kind: kind, Message: message, Span: sp}
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Span, e.Message)
}

// ToDiagnostic converts the SemanticError to a renderable Diagnostic.
func (e *SemanticError) ToDiagnostic() *Diagnostic {
	return &Diagnostic{
		Severity:    SeverityError,
		Kind:        e.Kind.String(),
		Code:        semanticErrorCode[e.Kind],
		Span:        e.Span,
		Description: e.Message,
	}
}

// Warning is a non-fatal diagnostic accumulated during parsing.
type Warning struct {
	Kind WarningKind
	Span span.Span
}

// NewWarning creates a new Warning.
func NewWarning(kind WarningKind, sp span.Span) Warning {
	return Warning{Kind: kind, Span: sp}
}

func (w Warning) Error() string {
	return fmt.Sprintf("at %s: %s", w.Span, warningMessage[w.Kind])
}

// ToDiagnostic converts the Warning to a renderable Diagnostic.
func (w Warning) ToDiagnostic() *Diagnostic {
	return &Diagnostic{
		Severity:    SeverityWarning,
		Kind:        w.Kind.String(),
		Code:        warningCode[w.Kind],
		Span:        w.Span,
		Description: warningMessage[w.Kind],
	}
}
