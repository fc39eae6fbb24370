// Package verify compiles a generated pattern with a real engine and checks
// it against the set it was generated from.
package verify

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/dlclark/regexp2"

	"uregex/internal/escape"
	"uregex/internal/uset"
)

// ErrUnitsUnsupported is returned when a BMP-only pattern is paired with a
// dialect whose engine cannot match lone 16-bit units.
var ErrUnitsUnsupported = errors.New("verify: re2 cannot match surrogate code units")

// Matcher is a whole-input matcher for one pattern.
type Matcher struct {
	pattern string
	onlyBMP bool
	re2     *regexp.Regexp
	net     *regexp2.Regexp
}

// Compile anchors pattern and compiles it for dialect. With onlyBMP the
// input is matched as 16-bit units.
func Compile(pattern, dialect string, onlyBMP bool) (*Matcher, error) {
	d, err := escape.Dialect(dialect)
	if err != nil {
		return nil, err
	}
	m := &Matcher{pattern: pattern, onlyBMP: onlyBMP}
	if d == escape.DialectRE2 {
		if onlyBMP {
			return nil, ErrUnitsUnsupported
		}
		re, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", pattern, err)
		}
		m.re2 = re
		return m, nil
	}
	net, err := CompileRegexp2(pattern)
	if err != nil {
		return nil, err
	}
	m.net = net
	return m, nil
}

// CompileRegexp2 anchors an icu pattern and compiles it with regexp2.
func CompileRegexp2(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(`\A(?:`+hyphenAsHex(pattern)+`)\z`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	return re, nil
}

// hyphenAsHex rewrites every escaped hyphen as \x2D. regexp2 reads `\-` as
// the upper end of a range wrongly: `[,-\-]` matches only '-' and
// `[,-\-V]` matches ',' through 'V'.
func hyphenAsHex(pattern string) string {
	if !strings.Contains(pattern, `\-`) {
		return pattern
	}
	var b strings.Builder
	b.Grow(len(pattern) + 8)
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '\\' || i+1 == len(pattern) {
			b.WriteByte(c)
			continue
		}
		i++
		if pattern[i] == '-' {
			b.WriteString(`\x2D`)
			continue
		}
		b.WriteByte(c)
		b.WriteByte(pattern[i])
	}
	return b.String()
}

// Match reports whether the whole of s is accepted.
func (m *Matcher) Match(s string) (bool, error) {
	if m.re2 != nil {
		return m.re2.MatchString(s), nil
	}
	if !m.onlyBMP {
		return m.net.MatchRunes([]rune(s))
	}
	units := utf16.Encode([]rune(s))
	in := make([]rune, len(units))
	for i, u := range units {
		in[i] = rune(u)
	}
	return m.net.MatchRunes(in)
}

// Mismatch is one probe the pattern got wrong.
type Mismatch struct {
	Input string
	Want  bool
}

func (m Mismatch) String() string {
	verb := "rejected"
	if !m.Want {
		verb = "accepted"
	}
	return fmt.Sprintf("%q %s", m.Input, verb)
}

// Report summarizes a check.
type Report struct {
	Checked    int
	Mismatches []Mismatch
}

// OK reports whether every probe matched as expected.
func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

// Set checks m against set on the scalar values at and around every range
// boundary and on every string member.
func Set(m *Matcher, set *uset.Set) (*Report, error) {
	rep := &Report{}
	check := func(input string, want bool) error {
		got, err := m.Match(input)
		if err != nil {
			return fmt.Errorf("match %q: %w", input, err)
		}
		rep.Checked++
		if got != want {
			rep.Mismatches = append(rep.Mismatches, Mismatch{Input: input, Want: want})
		}
		return nil
	}
	for _, v := range Probes(set) {
		if err := check(string(v), set.Contains(v)); err != nil {
			return nil, err
		}
	}
	for _, s := range set.Strings() {
		if err := check(s, true); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// Probes returns the scalar values at, just inside and just outside every
// range boundary of set, plus the edges of the BMP, without duplicates.
func Probes(set *uset.Set) []rune {
	seen := make(map[rune]bool)
	var out []rune
	add := func(r rune) {
		if r < 0 || r > uset.MaxRune || utf16.IsSurrogate(r) || seen[r] {
			return
		}
		seen[r] = true
		out = append(out, r)
	}
	for _, r := range set.Ranges() {
		add(r.Lo - 1)
		add(r.Lo)
		add(r.Lo + 1)
		add(r.Hi - 1)
		add(r.Hi)
		add(r.Hi + 1)
	}
	add(0)
	add(0xFFFF)
	add(0x10000)
	add(uset.MaxRune)
	return out
}
