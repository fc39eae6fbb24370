package regexgen

import (
	"fmt"
	"unicode/utf16"

	"fortio.org/safecast"
)

const (
	maxBMP           rune = 0xFFFF
	minSupplementary rune = 0x10000
	maxScalar        rune = 0x10FFFF

	trailMin uint16 = 0xDC00
	trailMax uint16 = 0xDFFF
)

// unitRange is an inclusive range of 16-bit code units.
type unitRange struct {
	lo, hi uint16
}

func (u unitRange) len() int {
	return int(u.hi-u.lo) + 1
}

// subRange is a block of supplementary scalar values expressed as the cross
// product of a lead-unit range and a trail-unit range.
type subRange struct {
	lead  unitRange
	trail unitRange
}

// SurrogatePair returns the lead and trail units encoding v. v must be a
// supplementary scalar value.
func SurrogatePair(v rune) (lead, trail uint16) {
	if v < minSupplementary || v > maxScalar {
		panic(fmt.Errorf("regexgen: %#x is not a supplementary scalar value", v))
	}
	l, t := utf16.EncodeRune(v)
	return toUnit(l), toUnit(t)
}

// LeadOf returns the lead surrogate unit of v.
func LeadOf(v rune) uint16 {
	lead, _ := SurrogatePair(v)
	return lead
}

// TrailOf returns the trail surrogate unit of v.
func TrailOf(v rune) uint16 {
	_, trail := SurrogatePair(v)
	return trail
}

func toUnit(r rune) uint16 {
	u, err := safecast.Conv[uint16](r)
	if err != nil {
		panic(fmt.Errorf("regexgen: code unit overflow: %w", err))
	}
	return u
}

// decompose splits the supplementary range [first, last] into at most three
// lead×trail blocks whose union is exactly the range:
//
//	Lx [Tx-Ty]                                  if Lx == Ly
//	Lx [Tx-DFFF] | Ly [DC00-Ty]                 if Lx == Ly-1
//	Lx [Tx-DFFF] | [Lx+1-Ly-1][DC00-DFFF] | Ly [DC00-Ty]
func decompose(first, last rune) []subRange {
	if first > last || first < minSupplementary || last > maxScalar {
		panic(fmt.Errorf("regexgen: invalid supplementary range %#x-%#x", first, last))
	}
	leadX, trailX := SurrogatePair(first)
	leadY, trailY := SurrogatePair(last)

	if leadX == leadY {
		return []subRange{{lead: unitRange{leadX, leadX}, trail: unitRange{trailX, trailY}}}
	}
	out := make([]subRange, 0, 3)
	out = append(out, subRange{lead: unitRange{leadX, leadX}, trail: unitRange{trailX, trailMax}})
	if leadY-leadX > 1 {
		out = append(out, subRange{lead: unitRange{leadX + 1, leadY - 1}, trail: unitRange{trailMin, trailMax}})
	}
	out = append(out, subRange{lead: unitRange{leadY, leadY}, trail: unitRange{trailMin, trailY}})
	return out
}
