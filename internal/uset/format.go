package uset

import (
	"fmt"
	"strings"
	"unicode"
)

// String renders s in the set syntax accepted by Parse, e.g. `[a-z{ch}]`.
func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range s.ranges {
		writeSetRune(&b, r.Lo)
		if r.Hi != r.Lo {
			if r.Hi != r.Lo+1 {
				b.WriteByte('-')
			}
			writeSetRune(&b, r.Hi)
		}
	}
	for _, str := range s.strs {
		b.WriteByte('{')
		for _, r := range str {
			if r == '}' || r == '\\' {
				b.WriteByte('\\')
				b.WriteRune(r)
				continue
			}
			writeEscapedOrRaw(&b, r)
		}
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String()
}

func writeSetRune(b *strings.Builder, r rune) {
	switch r {
	case '[', ']', '-', '^', '\\', '{', '}', ':', '$', '&':
		b.WriteByte('\\')
		b.WriteRune(r)
		return
	}
	writeEscapedOrRaw(b, r)
}

func writeEscapedOrRaw(b *strings.Builder, r rune) {
	if r == ' ' || !unicode.IsPrint(r) {
		writeHex(b, r)
		return
	}
	b.WriteRune(r)
}

// writeHex writes \uXXXX or \UXXXXXXXX.
func writeHex(b *strings.Builder, r rune) {
	if r > 0xFFFF {
		fmt.Fprintf(b, `\U%08X`, r)
		return
	}
	fmt.Fprintf(b, `\u%04X`, r)
}
