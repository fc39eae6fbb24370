package main

import (
	"fmt"
	"unicode/utf16"

	"github.com/spf13/cobra"

	"uregex/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] SET TEXT",
	Short: "Find where a run of set members starts or stops",
	Long: `Scan walks TEXT from --from while each character is a member of SET
(or, with --not, while it is not) and prints the index where it stopped.
With --backward it walks towards the start, looking at the character before
the index. Indexes are byte offsets, or UTF-16 unit offsets with --units.`,
	Example: `  uregex scan '[a-z]' 'hello, world'            # 5
  uregex scan --backward --from 5 '[a-z]' 'say hello'
  uregex scan --units '[\U0001F600]' '😀😀!'      # 4`,
	Args: cobra.ExactArgs(2),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Int("from", -1, "start index (default: start of text, or end with --backward)")
	scanCmd.Flags().Bool("backward", false, "scan towards the start of the text")
	scanCmd.Flags().Bool("not", false, "scan while characters are not members")
	scanCmd.Flags().Bool("units", false, "index by UTF-16 code units instead of bytes")
}

func runScan(cmd *cobra.Command, args []string) error {
	from, err := cmd.Flags().GetInt("from")
	if err != nil {
		return fmt.Errorf("failed to get from flag: %w", err)
	}
	backward, err := cmd.Flags().GetBool("backward")
	if err != nil {
		return fmt.Errorf("failed to get backward flag: %w", err)
	}
	not, err := cmd.Flags().GetBool("not")
	if err != nil {
		return fmt.Errorf("failed to get not flag: %w", err)
	}
	units, err := cmd.Flags().GetBool("units")
	if err != nil {
		return fmt.Errorf("failed to get units flag: %w", err)
	}
	if backward && not {
		return fmt.Errorf("--backward and --not cannot be combined")
	}

	set, err := parseSetArg("set", args[0])
	if err != nil {
		return err
	}
	text := args[1]

	var idx int
	if units {
		u := utf16.Encode([]rune(text))
		idx = runScan16(set, u, startIndex(from, backward, len(u)), backward, not)
	} else {
		idx = runScan8(set, text, startIndex(from, backward, len(text)), backward, not)
	}
	fmt.Fprintln(cmd.OutOrStdout(), idx)
	return nil
}

func startIndex(from int, backward bool, n int) int {
	if from >= 0 {
		return from
	}
	if backward {
		return n
	}
	return 0
}

func runScan8(set scan.Container, text string, i int, backward, not bool) int {
	switch {
	case backward:
		return scan.Backward(set, text, i)
	case not:
		return scan.ForwardNot(set, text, i)
	default:
		return scan.Forward(set, text, i)
	}
}

func runScan16(set scan.Container, text []uint16, i int, backward, not bool) int {
	switch {
	case backward:
		return scan.Backward16(set, text, i)
	case not:
		return scan.ForwardNot16(set, text, i)
	default:
		return scan.Forward16(set, text, i)
	}
}
