package regexir

import "fmt"

// Count is the three-valued matchability property from spec §4.5: Zero
// means the node cannot match any text, One means it matches exactly one
// possible string, Many means it matches more than one (or an unbounded or
// statically-unknown number of) strings.
type Count int

const (
	CountZero Count = iota
	CountOne
	CountMany
)

// Classify computes n's Count. compiler.Compile consults this to skip
// codegen for a whole tree that can't match anything; codegen itself does
// not call it.
func Classify(n Node) Count {
	switch v := n.(type) {
	case *Empty:
		return CountOne
	case *Literal:
		return CountOne
	case *CharClass:
		if len(v.Set.Intervals) == 0 && len(v.Set.Named) == 0 && !v.Set.Negative {
			return CountZero
		}
		if !v.Set.Negative && len(v.Set.Named) == 0 && len(v.Set.Intervals) == 1 && v.Set.Intervals[0].Hi-v.Set.Intervals[0].Lo == 1 {
			return CountOne
		}
		return CountMany
	case *Group:
		for _, c := range v.Children {
			if Classify(c) == CountZero {
				return CountZero
			}
		}
		for _, c := range v.Children {
			if Classify(c) != CountOne {
				return CountMany
			}
		}
		return CountOne
	case *Alt:
		allZero := true
		for _, b := range v.Branches {
			if Classify(b) != CountZero {
				allZero = false
				break
			}
		}
		if allZero {
			return CountZero
		}
		return CountMany
	case *Rep:
		if v.Max != nil && *v.Max == 0 {
			return CountOne
		}
		inner := Classify(v.Inner)
		if v.Min > 0 && inner == CountZero {
			return CountZero
		}
		if v.Min == 0 && inner == CountZero {
			return CountOne
		}
		if v.Max != nil && *v.Max == v.Min && v.Min == 1 && inner == CountOne {
			return CountOne
		}
		return CountMany
	case *Anchor, *WordBoundary, *Lookaround:
		return CountOne
	default: // Backref, Grapheme, Unicode: matched text is not statically known
		return CountMany
	}
}

// Optimize runs the structural peephole pass spec §4.5 describes: flatten
// nested Alt/Concat, drop Empty children from a concatenation, dedupe
// identical Alt branches, fold a single-branch Alt to its child, collapse
// Rep{1,1} to its inner, and fold Rep{0,0} to Empty. It is idempotent:
// Optimize(Optimize(n)) == Optimize(n).
func Optimize(n Node) Node {
	switch v := n.(type) {
	case *Group:
		children := make([]Node, 0, len(v.Children))
		for _, c := range v.Children {
			oc := Optimize(c)
			if !v.Capturing && !v.Atomic {
				if flat, ok := oc.(*Group); ok && !flat.Capturing && !flat.Atomic {
					children = append(children, flat.Children...)
					continue
				}
			}
			if _, empty := oc.(*Empty); empty {
				continue
			}
			children = append(children, oc)
		}
		if v.Capturing || v.Atomic {
			return &Group{Children: children, Capturing: v.Capturing, Name: v.Name, Index: v.Index, Atomic: v.Atomic}
		}
		switch len(children) {
		case 0:
			return &Empty{}
		case 1:
			return children[0]
		default:
			return &Group{Children: children}
		}

	case *Alt:
		var branches []Node
		seen := make(map[string]bool, len(v.Branches))
		for _, b := range v.Branches {
			ob := Optimize(b)
			if flat, ok := ob.(*Alt); ok {
				for _, fb := range flat.Branches {
					key := fingerprint(fb)
					if seen[key] {
						continue
					}
					seen[key] = true
					branches = append(branches, fb)
				}
				continue
			}
			key := fingerprint(ob)
			if seen[key] {
				continue
			}
			seen[key] = true
			branches = append(branches, ob)
		}
		if len(branches) == 1 {
			return branches[0]
		}
		return &Alt{Branches: branches}

	case *Rep:
		inner := Optimize(v.Inner)
		if v.Max != nil && *v.Max == 0 && v.Min == 0 {
			return &Empty{}
		}
		if v.Max != nil && *v.Max == 1 && v.Min == 1 {
			return inner
		}
		return &Rep{Inner: inner, Min: v.Min, Max: v.Max, Quantifier: v.Quantifier}

	case *Lookaround:
		return &Lookaround{Inner: Optimize(v.Inner), Direction: v.Direction, Negate: v.Negate}

	default:
		return n
	}
}

// fingerprint is a deterministic structural key used to dedupe Alt
// branches. It is for equality comparison only, never rendered to a user.
func fingerprint(n Node) string {
	return fmt.Sprintf("%#v", n)
}
