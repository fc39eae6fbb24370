// Package dontcare widens a set across gaps whose contents never occur in
// the input, so the generated pattern needs fewer ranges.
//
// A typical don't-care set is the unassigned code points: if [a-c] and
// [e-g] are wanted and U+0064 could never appear, the set may as well be
// [a-g].
package dontcare

import (
	"uregex/internal/uset"
)

// Container is the membership test Merge needs from the don't-care set.
type Container interface {
	// ContainsRange reports whether every scalar value in [lo, hi] is a
	// member. Surrogate code points inside the range are not required.
	ContainsRange(lo, hi rune) bool
}

const (
	surrogateLo rune = 0xD800
	surrogateHi rune = 0xDFFF
)

// Gaps returns the maximal ranges of scalar values missing from target, in
// ascending order. The surrogate block is not a scalar value, so a gap may
// straddle it; such a gap is reported as one range.
func Gaps(target *uset.Set) []uset.Range {
	var out []uset.Range
	for _, r := range target.Complement().Ranges() {
		if n := len(out); n > 0 && out[n-1].Hi == surrogateLo-1 && r.Lo == surrogateHi+1 {
			out[n-1].Hi = r.Hi
			continue
		}
		out = append(out, r)
	}
	return out
}

// Merge adds to target every interior gap that is entirely covered by
// dontCare, and returns target. Gaps touching 0 or U+10FFFF are left open.
// Merge is idempotent.
func Merge(target *uset.Set, dontCare Container) *uset.Set {
	for _, g := range Spans(target, dontCare) {
		target.AddRange(g.Lo, g.Hi)
	}
	return target
}

// Spans returns the gaps Merge would fill, without modifying target.
func Spans(target *uset.Set, dontCare Container) []uset.Range {
	var out []uset.Range
	for _, g := range Interior(target) {
		if dontCare.ContainsRange(g.Lo, g.Hi) {
			out = append(out, g)
		}
	}
	return out
}

// Interior returns the gaps of target that touch neither end of the
// scalar-value space.
func Interior(target *uset.Set) []uset.Range {
	gaps := Gaps(target)
	out := gaps[:0]
	for _, g := range gaps {
		if g.Lo == 0 || g.Hi == uset.MaxRune {
			continue
		}
		out = append(out, g)
	}
	return out
}
