package dontcare

import (
	"slices"
	"testing"

	"uregex/internal/uset"
)

func TestMerge(t *testing.T) {
	cases := []struct {
		name     string
		target   string
		dontCare string
		want     string
	}{
		{"fills interior gap", "[a-c e-g]", "[d]", "[a-g]"},
		{"gap partly covered stays", "[a-c g-h]", "[d-e]", "[a-c g-h]"},
		{"several gaps", "[a c e x]", "[b d]", "[a-e x]"},
		{"leading gap never merged", "[b-z]", "[\\u0000-a]", "[b-z]"},
		{"trailing gap never merged", "[\\u0000-z]", "[\\u007B-\\U0010FFFF]", "[\\u0000-z]"},
		{"empty don't-care", "[a c]", "[]", "[a c]"},
		{"empty target", "[]", "[\\u0000-\\U0010FFFF]", "[]"},
		{
			// промежуток между блоками проходит через суррогаты
			name:     "unassigned between blocks",
			target:   "[\\u4E00-\\u9FFF \\U00020000-\\U0002A6DF]",
			dontCare: "[\\uA000-\\U0001FFFF]",
			want:     "[\\u4E00-\\U0002A6DF]",
		},
		{
			name:     "gap across the surrogate block",
			target:   "[a \\uE001]",
			dontCare: "[b-\\uE000]",
			want:     "[a-\\uD7FF \\uE000-\\uE001]",
		},
		{
			name:     "strings are kept",
			target:   "[a c {xy}]",
			dontCare: "[b]",
			want:     "[a-c {xy}]",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := uset.MustParse(tc.target)
			got := Merge(target, uset.MustParse(tc.dontCare))
			if got != target {
				t.Fatalf("Merge returned a different set")
			}
			if want := uset.MustParse(tc.want); !got.Equal(want) {
				t.Fatalf("Merge = %s, want %s", got, want)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	dontCare := uset.MustParse(`[\p{Cn}]`)
	targets := []string{
		`[\p{Greek}]`,
		`[\p{Han}]`,
		`[a-z \u0378-\u0379 \U0001F600]`,
		`[\p{Lu}]`,
	}
	for _, src := range targets {
		once := Merge(uset.MustParse(src), dontCare)
		twice := Merge(once.Clone(), dontCare)
		if !once.Equal(twice) {
			t.Errorf("%s: second merge changed the set", src)
		}
		if gaps := Spans(once, dontCare); len(gaps) != 0 {
			t.Errorf("%s: %d spans remain after merge", src, len(gaps))
		}
	}
}

// Merging never removes members and only adds don't-care values.
func TestMergeOnlyAddsDontCare(t *testing.T) {
	dontCare := uset.MustParse(`[\p{Cn}]`)
	before := uset.MustParse(`[\p{Armenian}\p{Hebrew}]`)
	after := Merge(before.Clone(), dontCare)
	for _, r := range before.Ranges() {
		if !after.ContainsRange(r.Lo, r.Hi) {
			t.Fatalf("member range %U-%U lost", r.Lo, r.Hi)
		}
	}
	for _, r := range after.Ranges() {
		for v := r.Lo; v <= r.Hi; v++ {
			if !before.Contains(v) && !dontCare.ContainsRange(v, v) {
				t.Fatalf("%U added but is not don't-care", v)
			}
		}
	}
}

func TestGaps(t *testing.T) {
	cases := []struct {
		target string
		want   []uset.Range
	}{
		{"[]", []uset.Range{{Lo: 0, Hi: uset.MaxRune}}},
		{"[a]", []uset.Range{{Lo: 0, Hi: 'a' - 1}, {Lo: 'b', Hi: uset.MaxRune}}},
		{
			`[\u0000-\uD7FE \uE001-\U0010FFFF]`,
			[]uset.Range{{Lo: 0xD7FF, Hi: 0xE000}},
		},
		{`[\u0000-\U0010FFFF]`, nil},
	}
	for _, tc := range cases {
		if got := Gaps(uset.MustParse(tc.target)); !slices.Equal(got, tc.want) {
			t.Errorf("Gaps(%s) = %v, want %v", tc.target, got, tc.want)
		}
	}
}

type rangeFunc func(lo, hi rune) bool

func (f rangeFunc) ContainsRange(lo, hi rune) bool { return f(lo, hi) }

func TestMergeAsksOncePerGap(t *testing.T) {
	target := uset.MustParse("[a c e g]")
	var asked []uset.Range
	Merge(target, rangeFunc(func(lo, hi rune) bool {
		asked = append(asked, uset.Range{Lo: lo, Hi: hi})
		return true
	}))
	want := []uset.Range{{Lo: 'b', Hi: 'b'}, {Lo: 'd', Hi: 'd'}, {Lo: 'f', Hi: 'f'}}
	if !slices.Equal(asked, want) {
		t.Fatalf("asked %v, want %v", asked, want)
	}
}
