// Package uset implements a set of Unicode scalar values and multi-rune
// strings.
//
// The representation is an inversion-style list of ascending, disjoint,
// non-adjacent ranges plus a sorted list of strings. It supplies exactly the
// operations the pattern generator and the don't-care merger consume:
// ascending range and string iteration, Size, Complement and
// ContainsRange. Parse and String read and write a bracketed set syntax,
// and FromTable/Table convert to and from unicode.RangeTable.
package uset
