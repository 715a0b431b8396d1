// Package flavor enumerates the target regex engines rulex can emit for,
// and the syntax differences codegen must account for (spec §5).
package flavor

import "fmt"

// Flavor is a target regex engine.
type Flavor int

const (
	PCRE Flavor = iota
	JavaScript
	Java
	DotNet
	Python
	Ruby
	Rust
)

var names = map[Flavor]string{
	PCRE:       "pcre",
	JavaScript: "javascript",
	Java:       "java",
	DotNet:     "dotnet",
	Python:     "python",
	Ruby:       "ruby",
	Rust:       "rust",
}

func (f Flavor) String() string {
	if n, ok := names[f]; ok {
		return n
	}
	return "unknown"
}

// Parse maps a CLI --flavor argument to a Flavor.
func Parse(s string) (Flavor, error) {
	for f, n := range names {
		if n == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown flavor %q", s)
}

// Capabilities is the set of optional regex features a Flavor's engine
// supports. codegen and resolve consult this to reject or rewrite
// unsupported constructs.
type Capabilities struct {
	Grapheme            bool
	Lookbehind          bool
	VariableLookbehind  bool
	AtomicGroups         bool
	NamedCaptureAngle    bool // (?<name>...) vs (?P<name>...)
	NamedCaptureBackrefK bool // \k<name> vs \g{name}
	UnicodeProperty      bool
	PossessiveQuantifier bool
}

var capabilities = map[Flavor]Capabilities{
	PCRE: {
		Grapheme: true, Lookbehind: true, VariableLookbehind: false,
		AtomicGroups: true, NamedCaptureAngle: true, NamedCaptureBackrefK: true,
		UnicodeProperty: true, PossessiveQuantifier: true,
	},
	JavaScript: {
		Grapheme: false, Lookbehind: true, VariableLookbehind: true,
		AtomicGroups: false, NamedCaptureAngle: true, NamedCaptureBackrefK: true,
		UnicodeProperty: true, PossessiveQuantifier: false,
	},
	Java: {
		Grapheme: false, Lookbehind: true, VariableLookbehind: false,
		AtomicGroups: true, NamedCaptureAngle: true, NamedCaptureBackrefK: true,
		UnicodeProperty: true, PossessiveQuantifier: true,
	},
	DotNet: {
		Grapheme: false, Lookbehind: true, VariableLookbehind: true,
		AtomicGroups: true, NamedCaptureAngle: true, NamedCaptureBackrefK: true,
		UnicodeProperty: true, PossessiveQuantifier: false,
	},
	Python: {
		Grapheme: false, Lookbehind: true, VariableLookbehind: false,
		AtomicGroups: false, NamedCaptureAngle: false, NamedCaptureBackrefK: false,
		UnicodeProperty: false, PossessiveQuantifier: false,
	},
	Ruby: {
		Grapheme: true, Lookbehind: true, VariableLookbehind: true,
		AtomicGroups: true, NamedCaptureAngle: true, NamedCaptureBackrefK: true,
		UnicodeProperty: true, PossessiveQuantifier: true,
	},
	Rust: {
		Grapheme: false, Lookbehind: false, VariableLookbehind: false,
		AtomicGroups: false, NamedCaptureAngle: true, NamedCaptureBackrefK: false,
		UnicodeProperty: true, PossessiveQuantifier: false,
	},
}

// Caps returns f's capability table.
func Caps(f Flavor) Capabilities { return capabilities[f] }
