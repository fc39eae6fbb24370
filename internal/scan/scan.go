// Package scan advances through text while scalar values are, or are not,
// members of a set.
//
// Every function is total: an index outside the text is clamped to it, and
// the start index comes back unchanged when the first step already fails.
package scan

import "unicode/utf8"

// Container is the membership test used by the scanners.
type Container interface {
	Contains(r rune) bool
}

// Forward returns the first index at or after i whose scalar value is not in
// set, or len(text).
//
// Invalid UTF-8 decodes one byte at a time as utf8.RuneError.
func Forward(set Container, text string, i int) int {
	return forward(set, text, i, true)
}

// ForwardNot returns the first index at or after i whose scalar value is in
// set, or len(text).
func ForwardNot(set Container, text string, i int) int {
	return forward(set, text, i, false)
}

// Backward moves i towards the start of text while the scalar value
// immediately before it is in set, and returns where it stopped.
func Backward(set Container, text string, i int) int {
	i = clamp(i, len(text))
	for i > 0 {
		r, w := utf8.DecodeLastRuneInString(text[:i])
		if !set.Contains(r) {
			break
		}
		i -= w
	}
	return i
}

func forward(set Container, text string, i int, member bool) int {
	i = clamp(i, len(text))
	for i < len(text) {
		r, w := utf8.DecodeRuneInString(text[i:])
		if set.Contains(r) != member {
			break
		}
		i += w
	}
	return i
}

func clamp(i, n int) int {
	return min(max(i, 0), n)
}
