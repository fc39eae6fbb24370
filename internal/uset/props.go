package uset

import (
	"strings"
	"unicode"
)

// Property resolves a property name against Go's unicode tables.
//
// Lookup order: general categories, scripts, binary properties, then the
// pseudo-properties Any, ASCII, Assigned and Cn (Unassigned). Matching is
// exact first and case-insensitive second. A "key=value" form such as
// "sc=Greek" or "gc=Lu" is resolved by its value.
func Property(name string) (*Set, bool) {
	if _, value, ok := strings.Cut(name, "="); ok {
		name = strings.TrimSpace(value)
	}
	switch strings.ToLower(name) {
	case "any":
		return FromRanges(Range{Lo: 0, Hi: MaxRune}), true
	case "ascii":
		return FromRanges(Range{Lo: 0, Hi: 0x7F}), true
	case "assigned":
		return assigned(), true
	case "cn", "unassigned":
		return assigned().Complement(), true
	}
	for _, tables := range []map[string]*unicode.RangeTable{unicode.Categories, unicode.Scripts, unicode.Properties} {
		if rt, ok := lookupTable(tables, name); ok {
			return FromTable(rt), true
		}
	}
	return nil, false
}

func lookupTable(tables map[string]*unicode.RangeTable, name string) (*unicode.RangeTable, bool) {
	if rt, ok := tables[name]; ok {
		return rt, true
	}
	for key, rt := range tables {
		if strings.EqualFold(key, name) {
			return rt, true
		}
	}
	return nil, false
}

// assigned returns every code point that has a general category other than Cn.
func assigned() *Set {
	return FromTables(unicode.C, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z)
}
