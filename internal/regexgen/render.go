package regexgen

import (
	"strings"
	"unicode/utf8"

	"uregex/internal/escape"
)

// builder accumulates the bracket body and the alternation list of one
// pattern.
type builder struct {
	esc     escape.Escaper
	onlyBMP bool

	base  strings.Builder // bracket body without '[' and ']'
	alts  strings.Builder // "|alt1|alt2..."
	count int             // number of alternates
}

// addRange appends esc(lo) or esc(lo)-esc(hi) to the bracket body.
func (b *builder) addRange(lo, hi rune) {
	first := b.escapeRune(lo)
	if first == "^" && b.base.Len() == 0 {
		// иначе получится отрицание класса
		first = `\^`
	}
	b.base.WriteString(first)
	if lo != hi {
		b.base.WriteByte('-')
		b.base.WriteString(b.escapeRune(hi))
	}
}

// addString appends an escaped string member as an alternate.
func (b *builder) addString(s string) {
	b.addAlternate(b.escapeString(s))
}

func (b *builder) addAlternate(text string) {
	b.alts.WriteByte('|')
	b.alts.WriteString(text)
	b.count++
}

// pattern applies the assembly rules: a bare bracket when there are no
// alternates, a single alternate on its own, and a non-capturing group
// otherwise.
func (b *builder) pattern() string {
	base := b.base.String()
	alts := b.alts.String()
	switch {
	case b.count == 0:
		return "[" + base + "]"
	case base != "":
		return "(?:[" + base + "]|" + alts[1:] + ")"
	case b.count == 1:
		return alts[1:]
	default:
		return "(?:" + alts[1:] + ")"
	}
}

// escapeRune escapes one code point. In BMP-only mode a supplementary
// scalar value is written as its two surrogate units.
func (b *builder) escapeRune(r rune) string {
	if b.onlyBMP && r > maxBMP {
		lead, trail := SurrogatePair(r)
		return b.esc.EscapeRune(rune(lead)) + b.esc.EscapeRune(rune(trail))
	}
	return b.esc.EscapeRune(r)
}

// escapeString escapes a string member. In BMP-only mode supplementary
// characters inside the string are written unit by unit.
func (b *builder) escapeString(s string) string {
	if !b.onlyBMP || !hasSupplementary(s) {
		return b.esc.EscapeString(s)
	}
	var out strings.Builder
	for _, r := range s {
		out.WriteString(b.escapeRune(r))
	}
	return out.String()
}

func hasSupplementary(s string) bool {
	for i := 0; i < len(s); i++ {
		// в UTF-8 дополнительные плоскости начинаются с байта 0xF0 и выше
		if s[i] >= 0xF0 {
			r, _ := utf8.DecodeRuneInString(s[i:])
			if r > maxBMP {
				return true
			}
		}
	}
	return false
}
