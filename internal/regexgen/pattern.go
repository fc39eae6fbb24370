package regexgen

import (
	"fmt"

	"uregex/internal/escape"
	"uregex/internal/uset"
)

// Set is the read side of a scalar set consumed by the generator.
//
// Ranges must be ascending, disjoint and non-adjacent; Strings ascending
// and distinct, each of two or more scalar values. Size counts every scalar
// value of every range plus one per string.
type Set interface {
	Ranges() []uset.Range
	Strings() []string
	Size() int
}

// Options configures Render.
type Options struct {
	// Escaper writes members into the pattern. Nil selects escape.Default.
	Escaper escape.Escaper
	// OnlyBMP targets engines that match 16-bit units: supplementary ranges
	// are rewritten as surrogate-pair alternates.
	OnlyBMP bool
}

func (o Options) escaper() escape.Escaper {
	if o.Escaper == nil {
		return escape.Default
	}
	return o.Escaper
}

// Result is a rendered pattern with a summary of its shape.
type Result struct {
	Pattern    string
	Alternates int  // string members plus surrogate branches
	Branches   int  // surrogate branches only
	HasBase    bool // a bracket expression is present
}

// Pattern renders set with the default escaper, leaving supplementary
// values as ordinary characters.
func Pattern(set Set) string {
	return ToPattern(set, nil, false)
}

// ToPattern renders set as a regular expression fragment. A nil esc selects
// escape.Default.
//
// The empty set renders as "", a single member renders as that member
// escaped, and anything else as a bracket expression, possibly grouped with
// alternates: `[a-z]`, `(?:[a-m]|ch)`, `\uD800[\uDC00-\uDC3F]`.
func ToPattern(set Set, esc escape.Escaper, onlyBMP bool) string {
	return Render(set, Options{Escaper: esc, OnlyBMP: onlyBMP}).Pattern
}

// Render is ToPattern with a shape summary.
func Render(set Set, opts Options) Result {
	b := &builder{esc: opts.escaper(), onlyBMP: opts.OnlyBMP}

	switch set.Size() {
	case 0:
		return Result{}
	case 1:
		return Result{Pattern: single(b, set)}
	}

	groups := newCoalescer()
	for _, r := range set.Ranges() {
		checkRange(r)
		if !opts.OnlyBMP || r.Hi <= maxBMP {
			b.addRange(r.Lo, r.Hi)
			continue
		}
		lo := r.Lo
		if lo <= maxBMP {
			b.addRange(lo, maxBMP)
			lo = minSupplementary
		}
		groups.add(lo, r.Hi)
	}
	for _, s := range set.Strings() {
		b.addString(s)
	}

	branches := 0
	for _, g := range groups.sorted() {
		lead := Render(unitSet(g.leads), opts).Pattern
		trail := Render(unitSet{g.trail}, opts).Pattern
		b.addAlternate(lead + trail)
		branches++
	}

	return Result{
		Pattern:    b.pattern(),
		Alternates: b.count,
		Branches:   branches,
		HasBase:    b.base.Len() > 0 || b.count == 0,
	}
}

// single renders the only member of a one-element set.
func single(b *builder, set Set) string {
	if strs := set.Strings(); len(strs) == 1 {
		return b.escapeString(strs[0])
	}
	r := set.Ranges()[0]
	checkRange(r)
	return b.escapeRune(r.Lo)
}

func checkRange(r uset.Range) {
	if r.Lo > r.Hi || r.Lo < 0 || r.Hi > maxScalar {
		panic(fmt.Errorf("regexgen: invalid range %#x-%#x", r.Lo, r.Hi))
	}
}

// unitSet presents a list of 16-bit unit ranges as a Set so lead and trail
// blocks can be rendered by Render itself.
type unitSet []unitRange

func (u unitSet) Ranges() []uset.Range {
	out := make([]uset.Range, len(u))
	for i, r := range u {
		out[i] = uset.Range{Lo: rune(r.lo), Hi: rune(r.hi)}
	}
	return out
}

func (u unitSet) Strings() []string { return nil }

func (u unitSet) Size() int {
	n := 0
	for _, r := range u {
		n += r.len()
	}
	return n
}
