package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"uregex/internal/uset"
)

var rangesCmd = &cobra.Command{
	Use:   "ranges [flags] SET",
	Short: "List the ranges and strings of a set",
	Args:  cobra.ExactArgs(1),
	RunE:  runRanges,
}

func init() {
	rangesCmd.Flags().String("format", "pretty", "output format (pretty|json|go)")
}

type rangeRow struct {
	Lo    string `json:"lo"`
	Hi    string `json:"hi"`
	Count int    `json:"count"`
	Chars string `json:"chars"`
}

type rangesPayload struct {
	Set     string     `json:"set"`
	Size    int        `json:"size"`
	Ranges  []rangeRow `json:"ranges"`
	Strings []string   `json:"strings,omitempty"`
}

func runRanges(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	set, err := parseSetArg("set", args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch format {
	case "go":
		return writeGoTable(out, set)
	case "json":
		payload := rangesPayload{Set: set.String(), Size: set.Size(), Strings: set.Strings()}
		for _, r := range set.Ranges() {
			payload.Ranges = append(payload.Ranges, newRangeRow(r))
		}
		return writeJSON(out, payload)
	case "pretty":
		writeRangeTable(out, set)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or go)", format)
	}
}

func newRangeRow(r uset.Range) rangeRow {
	return rangeRow{
		Lo:    fmt.Sprintf("U+%04X", r.Lo),
		Hi:    fmt.Sprintf("U+%04X", r.Hi),
		Count: r.Len(),
		Chars: sample(r),
	}
}

// sample shows the first and last characters of r, or a dot for those that
// have no visible form.
func sample(r uset.Range) string {
	show := func(c rune) string {
		if !unicode.IsGraphic(c) || unicode.Is(unicode.Mn, c) {
			return "·"
		}
		return string(c)
	}
	switch r.Len() {
	case 1:
		return show(r.Lo)
	case 2:
		return show(r.Lo) + " " + show(r.Hi)
	default:
		return show(r.Lo) + " … " + show(r.Hi)
	}
}

var tableHeader = color.New(color.Bold)

// writeRangeTable prints one aligned row per range. Characters are padded
// by display width so wide scripts line up.
func writeRangeTable(out io.Writer, set *uset.Set) {
	rows := make([]rangeRow, 0, set.RangeCount())
	charsWidth := runewidth.StringWidth("chars")
	for _, r := range set.Ranges() {
		row := newRangeRow(r)
		charsWidth = max(charsWidth, runewidth.StringWidth(row.Chars))
		rows = append(rows, row)
	}

	tableHeader.Fprintf(out, "%-10s %-10s %s %8s\n", "from", "to", runewidth.FillRight("chars", charsWidth), "count")
	for _, row := range rows {
		fmt.Fprintf(out, "%-10s %-10s %s %8d\n", row.Lo, row.Hi, runewidth.FillRight(row.Chars, charsWidth), row.Count)
	}
	for _, s := range set.Strings() {
		fmt.Fprintf(out, "%-21s %s\n", "string", s)
	}
	fmt.Fprintf(out, "%d ranges, %d strings, %d members\n", set.RangeCount(), len(set.Strings()), set.Size())
}

// writeGoTable prints the set as a unicode.RangeTable literal.
func writeGoTable(out io.Writer, set *uset.Set) error {
	if len(set.Strings()) > 0 {
		return fmt.Errorf("set has %d string members, which a RangeTable cannot hold", len(set.Strings()))
	}
	rt := set.Table()
	var b strings.Builder
	b.WriteString("&unicode.RangeTable{\n")
	if len(rt.R16) > 0 {
		b.WriteString("\tR16: []unicode.Range16{\n")
		for _, r := range rt.R16 {
			fmt.Fprintf(&b, "\t\t{Lo: 0x%04x, Hi: 0x%04x, Stride: %d},\n", r.Lo, r.Hi, r.Stride)
		}
		b.WriteString("\t},\n")
	}
	if len(rt.R32) > 0 {
		b.WriteString("\tR32: []unicode.Range32{\n")
		for _, r := range rt.R32 {
			fmt.Fprintf(&b, "\t\t{Lo: 0x%x, Hi: 0x%x, Stride: %d},\n", r.Lo, r.Hi, r.Stride)
		}
		b.WriteString("\t},\n")
	}
	if rt.LatinOffset > 0 {
		fmt.Fprintf(&b, "\tLatinOffset: %d,\n", rt.LatinOffset)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(out, b.String())
	return err
}
