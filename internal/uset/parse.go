package uset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SyntaxError reports a malformed set pattern.
type SyntaxError struct {
	Offset int    // byte offset into the pattern
	Msg    string // description of the problem
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("uset: %s at offset %d", e.Msg, e.Offset)
}

// Parse builds a set from its textual form.
//
// Accepted syntax: a bracketed list such as `[a-z0-9{ch}]` with an optional
// leading '^', nested brackets (union), escapes \uXXXX, \UXXXXXXXX, \x{H},
// \xHH, \t \n \r \f \v, '\' before any other character, string members in
// braces, and property classes \p{Name}, \P{Name}, [:Name:], [:^Name:].
// A bare property class may also stand alone. Unescaped whitespace between
// items is ignored.
func Parse(pattern string) (*Set, error) {
	p := &parser{src: pattern}
	p.skipSpace()
	var (
		s   *Set
		err error
	)
	switch {
	case p.atProperty():
		s, err = p.parseProperty()
	case p.peek() == '[':
		s, err = p.parseSet()
	default:
		return nil, p.errorf("expected '[' or a property class")
	}
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected trailing input")
	}
	return s, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level tables.
func MustParse(pattern string) *Set {
	s, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return s
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) atProperty() bool {
	rest := p.src[p.pos:]
	return strings.HasPrefix(rest, `\p{`) || strings.HasPrefix(rest, `\P{`) || strings.HasPrefix(rest, "[:")
}

func (p *parser) parseSet() (*Set, error) {
	if p.atProperty() {
		return p.parseProperty()
	}
	p.pos++ // '['
	negate := false
	if p.peek() == '^' {
		negate = true
		p.pos++
	}
	s := New()
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unterminated set")
		}
		switch c := p.peek(); {
		case c == ']':
			p.pos++
			if negate {
				return s.Complement(), nil
			}
			return s, nil
		case c == '[' || p.atProperty():
			inner, err := p.parseSet()
			if err != nil {
				return nil, err
			}
			s.AddAll(inner)
		case c == '{':
			str, err := p.parseString()
			if err != nil {
				return nil, err
			}
			s.AddString(str)
		default:
			if err := p.parseItem(s); err != nil {
				return nil, err
			}
		}
	}
}

// parseItem reads a character or a character range.
func (p *parser) parseItem(s *Set) error {
	lo, err := p.readChar()
	if err != nil {
		return err
	}
	p.skipSpace()
	if p.peek() == '-' && !p.hyphenCloses() {
		p.pos++
		p.skipSpace()
		start := p.pos
		hi, err := p.readChar()
		if err != nil {
			return err
		}
		if hi < lo {
			p.pos = start
			return p.errorf("range end %U precedes start %U", hi, lo)
		}
		s.AddRange(lo, hi)
		return nil
	}
	s.AddRune(lo)
	return nil
}

// hyphenCloses reports whether the '-' at pos is the last item of the set,
// so that it is a literal rather than a range operator.
func (p *parser) hyphenCloses() bool {
	for i := p.pos + 1; i < len(p.src); i++ {
		switch p.src[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ']':
			return true
		default:
			return false
		}
	}
	return true
}

func (p *parser) parseString() (string, error) {
	p.pos++ // '{'
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string member")
		}
		if p.peek() == '}' {
			p.pos++
			return b.String(), nil
		}
		r, err := p.readChar()
		if err != nil {
			return "", err
		}
		if r >= surrogateLo && r <= surrogateHi {
			return "", p.errorf("surrogate %U in string member", r)
		}
		b.WriteRune(r)
	}
}

func (p *parser) readChar() (rune, error) {
	if p.peek() == '\\' {
		return p.readEscape()
	}
	r, w := utf8.DecodeRuneInString(p.src[p.pos:])
	if r == utf8.RuneError && w <= 1 {
		return 0, p.errorf("invalid UTF-8")
	}
	p.pos += w
	return r, nil
}

func (p *parser) readEscape() (rune, error) {
	p.pos++ // '\'
	if p.eof() {
		return 0, p.errorf("trailing backslash")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'u':
		return p.readHex(4)
	case 'U':
		return p.readHex(8)
	case 'x':
		if p.peek() != '{' {
			return p.readHex(2)
		}
		p.pos++
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end <= 0 {
			return 0, p.errorf(`malformed \x{...} escape`)
		}
		r, err := p.hexValue(p.src[p.pos : p.pos+end])
		if err != nil {
			return 0, err
		}
		p.pos += end + 1
		return r, nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'f':
		return '\f', nil
	case 'v':
		return '\v', nil
	}
	p.pos--
	r, w := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += w
	return r, nil
}

func (p *parser) readHex(n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorf("short hex escape")
	}
	r, err := p.hexValue(p.src[p.pos : p.pos+n])
	if err != nil {
		return 0, err
	}
	p.pos += n
	return r, nil
}

func (p *parser) hexValue(digits string) (rune, error) {
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, p.errorf("bad hex digits %q", digits)
	}
	if v > uint64(MaxRune) {
		return 0, p.errorf("code point %#x out of range", v)
	}
	return rune(v), nil
}

func (p *parser) parseProperty() (*Set, error) {
	var (
		name   string
		negate bool
	)
	if strings.HasPrefix(p.src[p.pos:], "[:") {
		p.pos += 2
		if p.peek() == '^' {
			negate = true
			p.pos++
		}
		end := strings.Index(p.src[p.pos:], ":]")
		if end < 0 {
			return nil, p.errorf("unterminated [: property")
		}
		name = p.src[p.pos : p.pos+end]
		p.pos += end + 2
	} else {
		negate = p.src[p.pos+1] == 'P'
		p.pos += 3
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end < 0 {
			return nil, p.errorf(`unterminated \p{ property`)
		}
		name = p.src[p.pos : p.pos+end]
		p.pos += end + 1
	}
	s, ok := Property(strings.TrimSpace(name))
	if !ok {
		return nil, p.errorf("unknown property %q", name)
	}
	if negate {
		return s.Complement(), nil
	}
	return s, nil
}
