package regexgen

import (
	"cmp"
	"slices"
)

// trailGroup collects every lead range that pairs with one trail range.
type trailGroup struct {
	trail unitRange
	leads []unitRange
}

// size is the number of lead units in the group.
func (g *trailGroup) size() int {
	n := 0
	for _, l := range g.leads {
		n += l.len()
	}
	return n
}

// coalescer groups decomposed sub-ranges by their exact trail range so that
// every distinct trail range costs one alternation branch.
type coalescer struct {
	groups map[unitRange]*trailGroup
}

func newCoalescer() *coalescer {
	return &coalescer{groups: make(map[unitRange]*trailGroup)}
}

// add decomposes one supplementary range and files its blocks.
func (c *coalescer) add(first, last rune) {
	for _, sr := range decompose(first, last) {
		g, ok := c.groups[sr.trail]
		if !ok {
			g = &trailGroup{trail: sr.trail}
			c.groups[sr.trail] = g
		}
		g.leads = append(g.leads, sr.lead)
	}
}

// sorted returns the groups with normalized lead sets, ordered by lead-set
// cardinality, then first lead, then trail bounds.
func (c *coalescer) sorted() []*trailGroup {
	out := make([]*trailGroup, 0, len(c.groups))
	for _, g := range c.groups {
		g.leads = unionUnits(g.leads)
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b *trailGroup) int {
		return cmp.Or(
			cmp.Compare(a.size(), b.size()),
			cmp.Compare(a.leads[0].lo, b.leads[0].lo),
			cmp.Compare(a.trail.lo, b.trail.lo),
			cmp.Compare(a.trail.hi, b.trail.hi),
		)
	})
	return out
}

// unionUnits sorts ranges and merges overlapping or adjacent ones.
func unionUnits(rs []unitRange) []unitRange {
	rs = slices.Clone(rs)
	slices.SortFunc(rs, func(a, b unitRange) int { return cmp.Compare(a.lo, b.lo) })
	out := rs[:0]
	for _, r := range rs {
		if n := len(out); n > 0 && int(r.lo) <= int(out[n-1].hi)+1 {
			out[n-1].hi = max(out[n-1].hi, r.hi)
			continue
		}
		out = append(out, r)
	}
	return out
}
