package uset

import (
	"unicode"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/rangetable"
)

// FromTable returns a set holding every code point of rt.
func FromTable(rt *unicode.RangeTable) *Set {
	s := New()
	if rt == nil {
		return s
	}
	for _, r16 := range rt.R16 {
		addStrided(s, rune(r16.Lo), rune(r16.Hi), rune(r16.Stride))
	}
	for _, r32 := range rt.R32 {
		addStrided(s, rune(r32.Lo), rune(r32.Hi), rune(r32.Stride))
	}
	return s
}

func addStrided(s *Set, lo, hi, stride rune) {
	if stride <= 1 {
		s.AddRange(lo, hi)
		return
	}
	for r := lo; r <= hi; r += stride {
		s.AddRune(r)
	}
}

// FromTables returns the union of the given tables.
func FromTables(tables ...*unicode.RangeTable) *Set {
	if len(tables) == 1 {
		return FromTable(tables[0])
	}
	return FromTable(rangetable.Merge(tables...))
}

// Table converts the scalar values of s into a RangeTable. String members
// have no table representation and are dropped.
func (s *Set) Table() *unicode.RangeTable {
	var rt unicode.RangeTable
	for _, r := range s.ranges {
		if r.Hi <= 0xFFFF {
			rt.R16 = append(rt.R16, unicode.Range16{Lo: mustUint16(r.Lo), Hi: mustUint16(r.Hi), Stride: 1})
			continue
		}
		if r.Lo <= 0xFFFF {
			rt.R16 = append(rt.R16, unicode.Range16{Lo: mustUint16(r.Lo), Hi: 0xFFFF, Stride: 1})
			r.Lo = 0x10000
		}
		rt.R32 = append(rt.R32, unicode.Range32{Lo: mustUint32(r.Lo), Hi: mustUint32(r.Hi), Stride: 1})
	}
	// Merge выставляет LatinOffset и склеивает соседние диапазоны.
	return rangetable.Merge(&rt)
}

func mustUint16(r rune) uint16 {
	v, err := safecast.Conv[uint16](r)
	if err != nil {
		panic(err)
	}
	return v
}

func mustUint32(r rune) uint32 {
	v, err := safecast.Conv[uint32](r)
	if err != nil {
		panic(err)
	}
	return v
}
