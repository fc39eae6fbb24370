package regexgen

import (
	"slices"
	"testing"

	"uregex/internal/escape"
	"uregex/internal/uset"
)

func TestToPatternDegenerate(t *testing.T) {
	cases := []struct {
		name string
		set  *uset.Set
		want string
	}{
		{"empty", uset.New(), ""},
		{"one rune", uset.Of('a'), "a"},
		{"one escaped rune", uset.Of('-'), `\-`},
		{"one control", uset.Of('\n'), `\u000A`},
		{"one string", uset.New().AddString("abc"), "abc"},
		{"one string escaped", uset.New().AddString("a]c"), `a\]c`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, onlyBMP := range []bool{false, true} {
				if got := ToPattern(tc.set, nil, onlyBMP); got != tc.want {
					t.Errorf("ToPattern(%s, onlyBMP=%v) = %q, want %q", tc.set, onlyBMP, got, tc.want)
				}
			}
		})
	}
}

func TestToPatternShapes(t *testing.T) {
	cases := []struct {
		name    string
		set     *uset.Set
		onlyBMP bool
		want    string
	}{
		{
			name: "lowercase",
			set:  uset.New().AddRange('a', 'z'),
			want: "[a-z]",
		},
		{
			name: "metacharacters in brackets",
			set:  uset.Of('-', ']', '[', '\\', 'a'),
			want: `[\-\[-\]a]`,
		},
		{
			name: "leading caret is not a negation",
			set:  uset.Of('^', 'a'),
			want: `[\^a]`,
		},
		{
			name: "caret after another member stays bare",
			set:  uset.Of('A', '^'),
			want: "[A^]",
		},
		{
			name: "range plus string",
			set:  uset.New().AddRange('a', 'm').AddString("ch"),
			want: "(?:[a-m]|ch)",
		},
		{
			name: "strings only",
			set:  uset.New().AddString("ab").AddString("cd"),
			want: "(?:ab|cd)",
		},
		{
			name: "supplementary kept whole",
			set:  uset.New().AddRange(0x10000, 0x1003F),
			want: "[\U00010000-\U0001003F]",
		},
		{
			name:    "single lead",
			set:     uset.New().AddRange(0x10000, 0x1003F),
			onlyBMP: true,
			want:    `\uD800[\uDC00-\uDC3F]`,
		},
		{
			// [\uD800-\uD801] and [\uD800\uD801] match the same two units.
			name:    "two leads share a trail range",
			set:     uset.New().AddRange(0x10000, 0x1000F).AddRange(0x10400, 0x1040F),
			onlyBMP: true,
			want:    `[\uD800-\uD801][\uDC00-\uDC0F]`,
		},
		{
			name:    "mixed range is split at the BMP boundary",
			set:     uset.New().AddRange(0xFFF0, 0x10005),
			onlyBMP: true,
			want:    "(?:[\uFFF0-\uFFFF]|" + `\uD800[\uDC00-\uDC05])`,
		},
		{
			name:    "string with supplementary character",
			set:     uset.New().AddRange('x', 'y').AddString("a\U0001F600"),
			onlyBMP: true,
			want:    `(?:[x-y]|a\uD83D\uDE00)`,
		},
		{
			name:    "single supplementary character",
			set:     uset.Of(0x1F600),
			onlyBMP: true,
			want:    `\uD83D\uDE00`,
		},
		{
			name:    "strings come before surrogate branches",
			set:     uset.New().AddRange(0x10000, 0x10001).AddString("ab"),
			onlyBMP: true,
			want:    `(?:ab|\uD800[\uDC00-\uDC01])`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToPattern(tc.set, nil, tc.onlyBMP); got != tc.want {
				t.Fatalf("ToPattern = %q, want %q", got, tc.want)
			}
		})
	}
}

// The example from the original documentation: two wide supplementary ranges
// collapse into three branches.
func TestCoalesceWideRanges(t *testing.T) {
	set := uset.FromRanges(
		uset.Range{Lo: 0xFFF0, Hi: 0x10000F},
		uset.Range{Lo: 0x10100F, Hi: 0x10300F},
	)
	res := Render(set, Options{OnlyBMP: true})

	want := "(?:[\uFFF0-\uFFFF]|" +
		`\uDBC4[\uDC0F-\uDFFF]|` +
		`[\uDBC0\uDBCC][\uDC00-\uDC0F]|` +
		`[\uD800-\uDBBF\uDBC5-\uDBCB][\uDC00-\uDFFF])`
	if res.Pattern != want {
		t.Fatalf("pattern =\n  %q\nwant\n  %q", res.Pattern, want)
	}
	if res.Alternates != 3 || res.Branches != 3 || !res.HasBase {
		t.Fatalf("shape = %+v", res)
	}
}

func TestBranchOrder(t *testing.T) {
	cases := []struct {
		name string
		set  *uset.Set
		want string
	}{
		{
			name: "smaller lead set first",
			set: uset.FromRanges(
				uset.Range{Lo: 0x10000, Hi: 0x10001},
				uset.Range{Lo: 0x10400, Hi: 0x10401},
				uset.Range{Lo: 0x10805, Hi: 0x10806},
			),
			want: `(?:\uD802[\uDC05-\uDC06]|[\uD800-\uD801][\uDC00-\uDC01])`,
		},
		{
			name: "lower first lead before lower trail",
			set: uset.FromRanges(
				uset.Range{Lo: 0x10005, Hi: 0x10006},
				uset.Range{Lo: 0x10400, Hi: 0x10401},
			),
			want: `(?:\uD800[\uDC05-\uDC06]|\uD801[\uDC00-\uDC01])`,
		},
		{
			name: "same leads ordered by trail",
			set: uset.FromRanges(
				uset.Range{Lo: 0x10000, Hi: 0x10005},
				uset.Range{Lo: 0x10010, Hi: 0x10012},
			),
			want: `(?:\uD800[\uDC00-\uDC05]|\uD800[\uDC10-\uDC12])`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				if got := ToPattern(tc.set, nil, true); got != tc.want {
					t.Fatalf("run %d: ToPattern = %q, want %q", i, got, tc.want)
				}
			}
		})
	}
}

func TestDecompose(t *testing.T) {
	cases := []struct {
		name        string
		first, last rune
		want        []subRange
	}{
		{
			name: "same lead", first: 0x10000, last: 0x1003F,
			want: []subRange{{unitRange{0xD800, 0xD800}, unitRange{0xDC00, 0xDC3F}}},
		},
		{
			name: "adjacent leads", first: 0x103FF, last: 0x10400,
			want: []subRange{
				{unitRange{0xD800, 0xD800}, unitRange{0xDFFF, 0xDFFF}},
				{unitRange{0xD801, 0xD801}, unitRange{0xDC00, 0xDC00}},
			},
		},
		{
			name: "whole supplementary space", first: 0x10000, last: 0x10FFFF,
			want: []subRange{
				{unitRange{0xD800, 0xD800}, unitRange{0xDC00, 0xDFFF}},
				{unitRange{0xD801, 0xDBFE}, unitRange{0xDC00, 0xDFFF}},
				{unitRange{0xDBFF, 0xDBFF}, unitRange{0xDC00, 0xDFFF}},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decompose(tc.first, tc.last); !slices.Equal(got, tc.want) {
				t.Fatalf("decompose(%#x, %#x) = %v, want %v", tc.first, tc.last, got, tc.want)
			}
		})
	}
}

// Every scalar value of the input must come back out of the blocks exactly once.
func TestDecomposeCoversRange(t *testing.T) {
	ranges := [][2]rune{
		{0x10000, 0x10000},
		{0x10123, 0x10ABC},
		{0x1F000, 0x1F7FF},
		{0x10FC00, 0x10FFFF},
	}
	for _, r := range ranges {
		n := 0
		for _, sr := range decompose(r[0], r[1]) {
			n += sr.lead.len() * sr.trail.len()
		}
		if want := int(r[1]-r[0]) + 1; n != want {
			t.Errorf("decompose(%#x, %#x) covers %d values, want %d", r[0], r[1], n, want)
		}
	}
}

func TestDecomposePanics(t *testing.T) {
	cases := [][2]rune{
		{0xFFFF, 0x10000},
		{0x10005, 0x10004},
		{0x10000, 0x110000},
	}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("decompose(%#x, %#x) did not panic", c[0], c[1])
				}
			}()
			decompose(c[0], c[1])
		}()
	}
}

func TestSurrogatePair(t *testing.T) {
	cases := []struct {
		v           rune
		lead, trail uint16
	}{
		{0x10000, 0xD800, 0xDC00},
		{0x10437, 0xD801, 0xDC37},
		{0x24B62, 0xD852, 0xDF62},
		{0x10FFFF, 0xDBFF, 0xDFFF},
	}
	for _, tc := range cases {
		lead, trail := SurrogatePair(tc.v)
		if lead != tc.lead || trail != tc.trail {
			t.Errorf("SurrogatePair(%U) = %#x %#x, want %#x %#x", tc.v, lead, trail, tc.lead, tc.trail)
		}
		if LeadOf(tc.v) != 0xD800+uint16((tc.v-0x10000)>>10) || TrailOf(tc.v) != 0xDC00+uint16((tc.v-0x10000)&0x3FF) {
			t.Errorf("LeadOf/TrailOf(%U) disagree with the arithmetic definition", tc.v)
		}
	}
}

func TestCustomEscaper(t *testing.T) {
	hexAll := escape.PerRune(func(r rune) string { return "<" + string(r) + ">" })
	got := ToPattern(uset.New().AddRange('a', 'c').AddString("xy"), hexAll, false)
	if want := "(?:[<a>-<c>]|<x><y>)"; got != want {
		t.Fatalf("ToPattern = %q, want %q", got, want)
	}
}

type brokenSet struct{}

func (brokenSet) Ranges() []uset.Range { return []uset.Range{{Lo: 'z', Hi: 'a'}} }
func (brokenSet) Strings() []string    { return nil }
func (brokenSet) Size() int            { return 2 }

func TestInvalidRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for reversed range")
		}
	}()
	Pattern(brokenSet{})
}
