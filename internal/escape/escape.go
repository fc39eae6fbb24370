// Package escape turns single code points and string members into tokens
// that are safe to embed in a regular expression.
package escape

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Escaper converts set members into pattern text.
type Escaper interface {
	// EscapeRune escapes one scalar value or one 16-bit surrogate unit.
	EscapeRune(r rune) string
	// EscapeString escapes a string member of two or more scalar values.
	EscapeString(s string) string
}

// PerRune is an Escaper that escapes strings one rune at a time.
type PerRune func(r rune) string

// EscapeRune implements Escaper.
func (f PerRune) EscapeRune(r rune) string {
	return f(r)
}

// EscapeString implements Escaper.
func (f PerRune) EscapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(f(r))
	}
	return b.String()
}

var (
	// Default escapes ']', '-', '\' and '[' with a backslash and writes
	// controls, ASCII whitespace and surrogate units as \uXXXX. Everything
	// else passes through.
	Default Escaper = PerRune(icuRune)

	// RE2 escapes every ASCII punctuation character with a backslash and
	// writes controls, whitespace and surrogate units as \x{H}. The output
	// is valid inside and outside a bracket expression of Go's regexp.
	RE2 Escaper = PerRune(re2Rune)
)

// Dialect names accepted by Lookup.
const (
	DialectICU = "icu"
	DialectRE2 = "re2"
)

// Dialect returns the canonical dialect for name. The empty name selects
// DialectICU.
func Dialect(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DialectICU, "default", "java":
		return DialectICU, nil
	case DialectRE2, "go":
		return DialectRE2, nil
	default:
		return "", fmt.Errorf("unknown escape dialect %q (expected icu|re2)", name)
	}
}

// Lookup resolves a dialect name to its escaper. The empty name selects
// Default.
func Lookup(name string) (Escaper, error) {
	d, err := Dialect(name)
	if err != nil {
		return nil, err
	}
	if d == DialectRE2 {
		return RE2, nil
	}
	return Default, nil
}

func icuRune(r rune) string {
	checkRune(r)
	switch r {
	case ']', '-', '\\', '[':
		return `\` + string(r)
	}
	if needsHex(r) {
		return hex4(r)
	}
	return string(r)
}

func re2Rune(r rune) string {
	checkRune(r)
	if r < 0x80 && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
		return `\` + string(r)
	}
	if needsHex(r) || unicode.IsSpace(r) {
		return fmt.Sprintf(`\x{%X}`, r)
	}
	return string(r)
}

// needsHex reports runes that are written as a hex escape: controls, ASCII
// whitespace and surrogate units, which a Go string cannot hold.
func needsHex(r rune) bool {
	return unicode.IsControl(r) || r == ' ' || utf16.IsSurrogate(r)
}

func hex4(r rune) string {
	if r > 0xFFFF {
		return fmt.Sprintf(`\U%08X`, r)
	}
	return fmt.Sprintf(`\u%04X`, r)
}

func checkRune(r rune) {
	if r < 0 || r > unicode.MaxRune {
		panic(fmt.Errorf("escape: code point %#x out of range", r))
	}
}
