package uset

import (
	"fmt"
	"slices"
	"sort"
	"unicode/utf8"
)

const (
	// MaxRune is the largest scalar value.
	MaxRune rune = 0x10FFFF

	surrogateLo rune = 0xD800
	surrogateHi rune = 0xDFFF
)

// Range is an inclusive range of code points.
type Range struct {
	Lo rune
	Hi rune
}

// Len returns the number of code points covered by r.
func (r Range) Len() int {
	return int(r.Hi-r.Lo) + 1
}

// Set is a set of Unicode scalar values plus a set of strings of two or
// more scalar values. Surrogate code points are never members.
//
// Ranges are kept ascending, disjoint and non-adjacent; strings are kept
// ascending and distinct. The zero value is an empty set ready to use.
type Set struct {
	ranges []Range
	strs   []string
}

// New returns an empty set.
func New() *Set {
	return &Set{}
}

// Of returns a set holding the given runes.
func Of(runes ...rune) *Set {
	s := New()
	for _, r := range runes {
		s.AddRune(r)
	}
	return s
}

// FromRanges returns a set holding every range in rs.
func FromRanges(rs ...Range) *Set {
	s := New()
	for _, r := range rs {
		s.AddRange(r.Lo, r.Hi)
	}
	return s
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	return &Set{
		ranges: slices.Clone(s.ranges),
		strs:   slices.Clone(s.strs),
	}
}

// AddRune adds a single scalar value. Surrogates are ignored.
func (s *Set) AddRune(r rune) *Set {
	return s.AddRange(r, r)
}

// AddRange adds every scalar value in [lo, hi]. The surrogate block is
// clipped out of the range. lo > hi or values outside [0, MaxRune] panic.
func (s *Set) AddRange(lo, hi rune) *Set {
	if lo > hi || lo < 0 || hi > MaxRune {
		panic(fmt.Errorf("uset: invalid range %#x-%#x", lo, hi))
	}
	if lo <= surrogateHi && hi >= surrogateLo {
		if lo < surrogateLo {
			s.insert(lo, surrogateLo-1)
		}
		if hi > surrogateHi {
			s.insert(surrogateHi+1, hi)
		}
		return s
	}
	s.insert(lo, hi)
	return s
}

// insert merges [lo, hi] into the range list, coalescing overlapping and
// adjacent neighbours.
func (s *Set) insert(lo, hi rune) {
	// первый диапазон, который пересекается или примыкает слева
	i := sort.Search(len(s.ranges), func(k int) bool { return s.ranges[k].Hi+1 >= lo })
	// первый диапазон, который целиком правее
	j := sort.Search(len(s.ranges), func(k int) bool { return s.ranges[k].Lo > hi+1 })
	if i < j {
		lo = min(lo, s.ranges[i].Lo)
		hi = max(hi, s.ranges[j-1].Hi)
	}
	s.ranges = slices.Replace(s.ranges, i, j, Range{Lo: lo, Hi: hi})
}

// AddString adds str as a member. A single-rune string is added as a
// scalar value; the empty string is ignored.
func (s *Set) AddString(str string) *Set {
	switch utf8.RuneCountInString(str) {
	case 0:
		return s
	case 1:
		r, _ := utf8.DecodeRuneInString(str)
		return s.AddRune(r)
	}
	i, found := slices.BinarySearch(s.strs, str)
	if !found {
		s.strs = slices.Insert(s.strs, i, str)
	}
	return s
}

// AddAll adds every member of o to s.
func (s *Set) AddAll(o *Set) *Set {
	for _, r := range o.ranges {
		s.insert(r.Lo, r.Hi)
	}
	for _, str := range o.strs {
		s.AddString(str)
	}
	return s
}

// Complement returns a new set holding every scalar value that is not in s.
// String members are not carried over.
func (s *Set) Complement() *Set {
	out := New()
	next := rune(0)
	for _, r := range s.ranges {
		if r.Lo > next {
			out.AddRange(next, r.Lo-1)
		}
		next = r.Hi + 1
	}
	if next <= MaxRune {
		out.AddRange(next, MaxRune)
	}
	return out
}

// Contains reports whether r is a member.
func (s *Set) Contains(r rune) bool {
	i := s.find(r)
	return i >= 0
}

// find returns the index of the range holding r, or -1.
func (s *Set) find(r rune) int {
	i := sort.Search(len(s.ranges), func(k int) bool { return s.ranges[k].Hi >= r })
	if i < len(s.ranges) && s.ranges[i].Lo <= r {
		return i
	}
	return -1
}

// ContainsRange reports whether every scalar value in [lo, hi] is a member.
// Surrogates inside the range are not required.
func (s *Set) ContainsRange(lo, hi rune) bool {
	if lo > hi {
		return true
	}
	if lo <= surrogateHi && hi >= surrogateLo {
		ok := true
		if lo < surrogateLo {
			ok = s.ContainsRange(lo, surrogateLo-1)
		}
		if ok && hi > surrogateHi {
			ok = s.ContainsRange(surrogateHi+1, hi)
		}
		return ok
	}
	i := s.find(lo)
	return i >= 0 && s.ranges[i].Hi >= hi
}

// ContainsString reports whether str is a member. Single-rune strings are
// looked up as scalar values.
func (s *Set) ContainsString(str string) bool {
	if utf8.RuneCountInString(str) == 1 {
		r, _ := utf8.DecodeRuneInString(str)
		return s.Contains(r)
	}
	_, found := slices.BinarySearch(s.strs, str)
	return found
}

// Ranges returns the scalar-value ranges in ascending order.
func (s *Set) Ranges() []Range {
	return slices.Clone(s.ranges)
}

// Strings returns the string members in ascending order.
func (s *Set) Strings() []string {
	return slices.Clone(s.strs)
}

// RangeCount returns the number of ranges.
func (s *Set) RangeCount() int {
	return len(s.ranges)
}

// Size returns the number of members: the cardinality of every range plus
// one per string.
func (s *Set) Size() int {
	n := len(s.strs)
	for _, r := range s.ranges {
		n += r.Len()
	}
	return n
}

// IsEmpty reports whether s has no members.
func (s *Set) IsEmpty() bool {
	return len(s.ranges) == 0 && len(s.strs) == 0
}

// Equal reports whether s and o have the same members.
func (s *Set) Equal(o *Set) bool {
	return slices.Equal(s.ranges, o.ranges) && slices.Equal(s.strs, o.strs)
}
