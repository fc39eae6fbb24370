package scan

import (
	"math/rand/v2"
	"testing"
	"unicode/utf16"

	"uregex/internal/uset"
)

func TestForward(t *testing.T) {
	letters := uset.MustParse(`[a-z \U0001F600]`)
	cases := []struct {
		text string
		i    int
		want int
	}{
		{"abc1", 0, 3},
		{"abc1", 1, 3},
		{"1abc", 0, 0},
		{"abc", 3, 3},
		{"", 0, 0},
		{"a😀b-", 0, 6},
		{"abc", -5, 3},
		{"abc", 99, 3},
	}
	for _, tc := range cases {
		if got := Forward(letters, tc.text, tc.i); got != tc.want {
			t.Errorf("Forward(%q, %d) = %d, want %d", tc.text, tc.i, got, tc.want)
		}
	}
}

func TestForwardNot(t *testing.T) {
	digits := uset.MustParse(`[0-9]`)
	cases := []struct {
		text string
		i    int
		want int
	}{
		{"ab12", 0, 2},
		{"12", 0, 0},
		{"жёлтый", 0, len("жёлтый")},
		{"ж1", 0, 2},
		{"ab", 10, 2},
	}
	for _, tc := range cases {
		if got := ForwardNot(digits, tc.text, tc.i); got != tc.want {
			t.Errorf("ForwardNot(%q, %d) = %d, want %d", tc.text, tc.i, got, tc.want)
		}
	}
}

func TestBackward(t *testing.T) {
	letters := uset.MustParse(`[a-z \U0001F600]`)
	cases := []struct {
		text string
		i    int
		want int
	}{
		{"12ab", 4, 2},
		{"12ab", 3, 2},
		{"12ab", 2, 2},
		{"ab", 2, 0},
		{"ab", 0, 0},
		{"1😀a", 6, 1},
		{"ab", -1, 0},
		{"ab", 7, 0},
	}
	for _, tc := range cases {
		if got := Backward(letters, tc.text, tc.i); got != tc.want {
			t.Errorf("Backward(%q, %d) = %d, want %d", tc.text, tc.i, got, tc.want)
		}
	}
}

func TestInvalidUTF8(t *testing.T) {
	replacement := uset.Of('\uFFFD')
	text := "\xff\xfeab"
	if got := Forward(replacement, text, 0); got != 2 {
		t.Fatalf("Forward over invalid bytes = %d, want 2", got)
	}
	if got := Backward(replacement, text, 2); got != 0 {
		t.Fatalf("Backward over invalid bytes = %d, want 0", got)
	}
}

func TestUnits(t *testing.T) {
	set := uset.MustParse(`[a-z \U0001F600]`)
	text := utf16.Encode([]rune("1a😀b2"))
	if got := Forward16(set, text, 1); got != 5 {
		t.Errorf("Forward16 = %d, want 5", got)
	}
	if got := Backward16(set, text, 5); got != 1 {
		t.Errorf("Backward16 = %d, want 1", got)
	}
	if got := ForwardNot16(set, text, 0); got != 1 {
		t.Errorf("ForwardNot16 = %d, want 1", got)
	}
	if got := Forward16(set, text, 100); got != len(text) {
		t.Errorf("Forward16 past end = %d, want %d", got, len(text))
	}

	// Неспаренный суррогат проверяется как есть и в множество не входит.
	lone := []uint16{'a', 0xD83D, 'b'}
	if got := Forward16(set, lone, 0); got != 1 {
		t.Errorf("Forward16 over lone lead = %d, want 1", got)
	}
	if got := Backward16(set, []uint16{'a', 0xDE00, 'b'}, 3); got != 2 {
		t.Errorf("Backward16 over lone trail = %d, want 2", got)
	}
	if got := ForwardNot16(set, lone, 1); got != 2 {
		t.Errorf("ForwardNot16 over lone lead = %d, want 2", got)
	}
}

func TestUnitsMatchUTF8(t *testing.T) {
	set := uset.MustParse(`[\p{Han}\p{Latin}]`)
	text := "abc漢字𠀀𠀁 xyz"
	units := utf16.Encode([]rune(text))
	if got, want := Forward16(set, units, 0), len(utf16.Encode([]rune("abc漢字𠀀𠀁"))); got != want {
		t.Fatalf("Forward16 = %d, want %d", got, want)
	}
	if got, want := Forward(set, text, 0), len("abc漢字𠀀𠀁"); got != want {
		t.Fatalf("Forward = %d, want %d", got, want)
	}
}

// Forward over a set and ForwardNot over its complement stop at the same
// index for well-formed text.
func TestForwardMatchesComplement(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	sets := []*uset.Set{
		uset.MustParse(`[a-m]`),
		uset.MustParse(`[\p{L}]`),
		uset.MustParse(`[\U00010000-\U0010FFFF]`),
		uset.New(),
	}
	alphabet := []rune("amnz 09жД漢😀𝔸é\uFFFD")
	for _, set := range sets {
		not := set.Complement()
		for n := 0; n < 300; n++ {
			runes := make([]rune, rng.IntN(8))
			for k := range runes {
				runes[k] = alphabet[rng.IntN(len(alphabet))]
			}
			text := string(runes)
			units := utf16.Encode(runes)
			for i := -1; i <= len(text)+1; i++ {
				if a, b := Forward(set, text, i), ForwardNot(not, text, i); a != b {
					t.Fatalf("%s on %q at %d: Forward=%d ForwardNot(complement)=%d", set, text, i, a, b)
				}
			}
			for i := 0; i <= len(units); i++ {
				if a, b := Forward16(set, units, i), ForwardNot16(not, units, i); a != b {
					t.Fatalf("%s on %q at unit %d: Forward16=%d ForwardNot16(complement)=%d", set, text, i, a, b)
				}
			}
		}
	}
}
