// Package span provides the byte-offset source locations threaded through
// every stage of the compiler, from the lexer to the final diagnostic.
package span

import "fmt"

// Span is a half-open byte interval [Start, End) into the original source.
// The zero value is the empty span used for synthesized nodes (builtins,
// variable expansions) that have no corresponding source text.
type Span struct {
	Start int
	End   int
}

// Empty returns the sentinel span for synthesized nodes.
func Empty() Span {
	return Span{}
}

// IsEmpty reports whether s is the empty-span sentinel.
func (s Span) IsEmpty() bool {
	return s.Start == 0 && s.End == 0
}

// Join returns the smallest span covering both s and other. An empty operand
// is ignored so that joining a synthesized span with a real one doesn't drag
// the result back to offset zero.
func (s Span) Join(other Span) Span {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Slice returns the source text covered by s, clamped to src's bounds.
func (s Span) Slice(src string) string {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start > end {
		return ""
	}
	return src[start:end]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
