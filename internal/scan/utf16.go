package scan

import (
	"unicode"
	"unicode/utf16"
)

// Forward16 is Forward over 16-bit code units. A well-formed surrogate pair
// is one scalar value; an unpaired surrogate is tested as itself.
func Forward16(set Container, text []uint16, i int) int {
	return forward16(set, text, i, true)
}

// ForwardNot16 is ForwardNot over 16-bit code units.
func ForwardNot16(set Container, text []uint16, i int) int {
	return forward16(set, text, i, false)
}

// Backward16 is Backward over 16-bit code units.
func Backward16(set Container, text []uint16, i int) int {
	i = clamp(i, len(text))
	for i > 0 {
		r, w := unitBefore(text, i)
		if !set.Contains(r) {
			break
		}
		i -= w
	}
	return i
}

func forward16(set Container, text []uint16, i int, member bool) int {
	i = clamp(i, len(text))
	for i < len(text) {
		r, w := unitAt(text, i)
		if set.Contains(r) != member {
			break
		}
		i += w
	}
	return i
}

// unitAt decodes the code point starting at text[i].
func unitAt(text []uint16, i int) (rune, int) {
	u := rune(text[i])
	if utf16.IsSurrogate(u) && i+1 < len(text) {
		if r := utf16.DecodeRune(u, rune(text[i+1])); r != unicode.ReplacementChar {
			return r, 2
		}
	}
	return u, 1
}

// unitBefore decodes the code point ending at text[i-1].
func unitBefore(text []uint16, i int) (rune, int) {
	u := rune(text[i-1])
	if utf16.IsSurrogate(u) && i >= 2 {
		if r := utf16.DecodeRune(rune(text[i-2]), u); r != unicode.ReplacementChar {
			return r, 2
		}
	}
	return u, 1
}
