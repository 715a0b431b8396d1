package lower

import (
	"rulex/compiler/ast"
	"rulex/compiler/regexir"
)

// lowerRange expands an ast.Range into regex IR: an alternation of
// fixed-shape digit sequences matching exactly the base-N integers in
// [lo, hi] (spec §4.4, the "hardest algorithm"). It never emits a
// combinatorial per-value listing: each alternative holds at most one
// character class or literal per digit position, a fully free run of
// positions collapses into one repeated class, and the number of
// alternatives grows linearly with the number of digits, not with hi-lo.
//
// The approach: split [lo, hi] into same-length sub-ranges (a regex
// distinguishes numbers by digit count when there's no leading-zero
// padding), then for each same-length sub-range walk digit positions
// left to right. While the leading digit is forced equal on both bounds,
// emit it literally and recurse on the remaining digits. At the first
// position where the bounds diverge, split into three independent
// branches: the low bound's leading digit with its remainder ranging up
// to all-max, every leading digit strictly between the two bounds with a
// fully free remainder, and the high bound's leading digit with its
// remainder ranging down from all-min.
func lowerRange(n *ast.Range) regexir.Node {
	return rangeDigits(n.DigitsLo, n.DigitsHi, n.Radix)
}

// rangeDigits expands a closed interval [lo, hi] of base-N digit sequences
// (big-endian, one byte per digit, 0..base-1) into regex IR.
func rangeDigits(lo, hi []uint8, base uint8) regexir.Node {
	var branches []regexir.Node
	for length := len(lo); length <= len(hi); length++ {
		switch {
		case length == len(lo) && length == len(hi):
			branches = append(branches, sameLength(lo, hi, base)...)
		case length == len(lo):
			branches = append(branches, sameLength(lo, repeatDigit(base-1, length), base)...)
		case length == len(hi):
			branches = append(branches, sameLength(minLengthDigits(length), hi, base)...)
		default:
			branches = append(branches, sameLength(minLengthDigits(length), repeatDigit(base-1, length), base)...)
		}
	}
	if len(branches) == 1 {
		return branches[0]
	}
	return &regexir.Alt{Branches: branches}
}

// sameLength returns the alternative digit-sequence patterns matching every
// base-N integer with exactly len(lo) digits in [lo, hi]. lo and hi must
// have equal length.
func sameLength(lo, hi []uint8, base uint8) []regexir.Node {
	if len(lo) == 0 {
		return []regexir.Node{&regexir.Empty{}}
	}
	if len(lo) == 1 {
		return []regexir.Node{digitNode(lo[0], hi[0])}
	}

	full := true
	for i := range lo {
		if lo[i] != 0 || hi[i] != base-1 {
			full = false
			break
		}
	}
	if full {
		return []regexir.Node{fullDigitsNode(len(lo), base)}
	}

	if lo[0] == hi[0] {
		d := digitNode(lo[0], lo[0])
		subs := sameLength(lo[1:], hi[1:], base)
		out := make([]regexir.Node, len(subs))
		for i, s := range subs {
			out[i] = concatDigit(d, s)
		}
		return out
	}

	var out []regexir.Node

	// Branch 1: leading digit == lo[0], remainder from lo[1:] up to all-max.
	{
		d := digitNode(lo[0], lo[0])
		subs := sameLength(lo[1:], repeatDigit(base-1, len(lo)-1), base)
		for _, s := range subs {
			out = append(out, concatDigit(d, s))
		}
	}

	// Branch 2: leading digit strictly between the two bounds, remainder free.
	if hi[0]-lo[0] > 1 {
		d := digitNode(lo[0]+1, hi[0]-1)
		out = append(out, concatDigit(d, fullDigitsNode(len(lo)-1, base)))
	}

	// Branch 3: leading digit == hi[0], remainder from all-min down to hi[1:].
	{
		d := digitNode(hi[0], hi[0])
		subs := sameLength(repeatDigit(0, len(lo)-1), hi[1:], base)
		for _, s := range subs {
			out = append(out, concatDigit(d, s))
		}
	}

	return out
}

func concatDigit(d, rest regexir.Node) regexir.Node {
	if _, empty := rest.(*regexir.Empty); empty {
		return d
	}
	return &regexir.Group{Children: []regexir.Node{d, rest}}
}

func fullDigitsNode(length int, base uint8) regexir.Node {
	return &regexir.Rep{
		Inner: digitNode(0, base-1),
		Min:   length,
		Max:   intPtr(length),
	}
}

func repeatDigit(d uint8, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = d
	}
	return out
}

// minLengthDigits returns the smallest n-digit value with no leading zero:
// all zeros for a single digit (0 is a valid one-digit number), otherwise a
// leading 1 followed by zeros. Used when a same-length sub-range spans the
// full width of a digit count that lo didn't reach (spec's range lowering
// never matches e.g. "0" through "9" when the requested interval's lower
// bound already has more than one digit).
func minLengthDigits(n int) []uint8 {
	out := make([]uint8, n)
	if n > 1 {
		out[0] = 1
	}
	return out
}

// digitNode returns the IR matching a single digit whose value is in
// [lo, hi] (0..35), rendered over the character repertoire '0'-'9' and,
// for bases above 10, both 'a'-'z' and 'A'-'Z' (spec §4.4 step 4: a
// radix above 10 matches its letter digits case-insensitively).
func digitNode(lo, hi uint8) regexir.Node {
	if lo == hi && lo < 10 {
		return &regexir.Literal{Text: string(digitChar(lo))}
	}

	var intervals []regexir.Interval
	if lo < 10 {
		digitHi := hi
		if digitHi > 9 {
			digitHi = 9
		}
		intervals = append(intervals, regexir.Interval{Lo: digitChar(lo), Hi: digitChar(digitHi) + 1})
	}
	if hi >= 10 {
		letterLo := lo
		if letterLo < 10 {
			letterLo = 10
		}
		intervals = append(intervals,
			regexir.Interval{Lo: digitChar(letterLo), Hi: digitChar(hi) + 1},
			regexir.Interval{Lo: digitCharUpper(letterLo), Hi: digitCharUpper(hi) + 1})
	}
	return &regexir.CharClass{Set: regexir.ClassSet{Intervals: intervals}}
}

func digitChar(d uint8) rune {
	if d < 10 {
		return rune('0' + d)
	}
	return rune('a' + (d - 10))
}

func digitCharUpper(d uint8) rune {
	return rune('A' + (d - 10))
}

func intPtr(v int) *int { return &v }
