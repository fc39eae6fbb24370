package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uregex/internal/dontcare"
	"uregex/internal/uset"
)

var mergeCmd = &cobra.Command{
	Use:   "merge --dont-care SET SET",
	Short: "Widen a set across gaps made only of don't-care characters",
	Long: `Merge fills every gap between the ranges of SET whose characters all belong
to the don't-care set, and prints the result in set syntax. Gaps that touch
U+0000 or U+10FFFF are never filled.`,
	Example: `  uregex merge --dont-care '[\p{Cn}]' '[\u2E80-\u2E99\u2E9B-\u2EF3\u2F00-\u2FD5]'`,
	Args:    cobra.ExactArgs(1),
	RunE:    runMerge,
}

func init() {
	mergeCmd.Flags().String("dont-care", "", "set of characters that never occur in the input (required)")
	mergeCmd.Flags().Bool("spans", false, "list the filled gaps instead of the merged set")
	_ = mergeCmd.MarkFlagRequired("dont-care")
}

func runMerge(cmd *cobra.Command, args []string) error {
	dcText, err := cmd.Flags().GetString("dont-care")
	if err != nil {
		return fmt.Errorf("failed to get dont-care flag: %w", err)
	}
	listSpans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}

	target, err := parseSetArg("set", args[0])
	if err != nil {
		return err
	}
	dc, err := parseSetArg("dont-care", dcText)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listSpans {
		for _, g := range dontcare.Spans(target, dc) {
			fmt.Fprintf(out, "%04X..%04X\t%d\n", g.Lo, g.Hi, g.Len())
		}
		return nil
	}
	before := target.RangeCount()
	_ = cmdTimer.Measure("merge", func() error {
		dontcare.Merge(target, dc)
		return nil
	})
	fmt.Fprintln(out, target.String())
	if !quiet(cmd) {
		statLabel.Fprintf(cmd.ErrOrStderr(), "%d ranges -> %d\n", before, target.RangeCount())
	}
	return nil
}

func parseSetArg(what, text string) (*uset.Set, error) {
	s, err := uset.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", what, text, err)
	}
	return s, nil
}
