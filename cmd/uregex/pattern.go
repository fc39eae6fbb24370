package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"uregex/internal/driver"
)

var patternCmd = &cobra.Command{
	Use:   "pattern [flags] SET",
	Short: "Render a set as a regular expression",
	Long: `Pattern renders SET, written in set syntax such as "[a-z{ch}\p{Greek}]",
as a regular expression fragment.`,
	Example: `  uregex pattern '[a-z]'
  uregex pattern --only-bmp '[\U00010000-\U0001003F]'
  uregex pattern --dont-care '[\p{Cn}]' --verify '[\p{Armenian}]'`,
	Args: cobra.ExactArgs(1),
	RunE: runPattern,
}

func init() {
	patternCmd.Flags().Bool("only-bmp", false, "rewrite supplementary characters as surrogate pairs")
	patternCmd.Flags().String("dialect", "icu", "escaping dialect (icu|re2)")
	patternCmd.Flags().String("dont-care", "", "set whose members may be matched freely")
	patternCmd.Flags().Bool("verify", false, "compile the pattern and check it against the set")
	patternCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type patternPayload struct {
	Set        string `json:"set"`
	Pattern    string `json:"pattern"`
	Dialect    string `json:"dialect"`
	OnlyBMP    bool   `json:"only_bmp"`
	Size       int    `json:"size"`
	Ranges     int    `json:"ranges"`
	Alternates int    `json:"alternates"`
	Branches   int    `json:"surrogate_branches"`
	Merged     int    `json:"merged_gaps"`
	Verified   bool   `json:"verified,omitempty"`
	Checked    int    `json:"checked,omitempty"`
}

func runPattern(cmd *cobra.Command, args []string) error {
	onlyBMP, err := cmd.Flags().GetBool("only-bmp")
	if err != nil {
		return fmt.Errorf("failed to get only-bmp flag: %w", err)
	}
	dialect, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return fmt.Errorf("failed to get dialect flag: %w", err)
	}
	dontCare, err := cmd.Flags().GetString("dont-care")
	if err != nil {
		return fmt.Errorf("failed to get dont-care flag: %w", err)
	}
	verifyFlag, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return fmt.Errorf("failed to get verify flag: %w", err)
	}
	format, err := readFormat(cmd)
	if err != nil {
		return err
	}

	job := driver.Job{
		Name:     "pattern",
		Members:  args[0],
		DontCare: dontCare,
		Dialect:  dialect,
		OnlyBMP:  onlyBMP,
		Verify:   verifyFlag,
	}
	var res driver.Result
	_ = cmdTimer.Measure("render", func() error {
		res = driver.RenderJob(cmd.Context(), job, driver.Options{})
		return res.Err
	})
	if res.Err != nil {
		return res.Err
	}

	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), patternPayload{
			Set:        args[0],
			Pattern:    res.Pattern,
			Dialect:    res.Job.Dialect,
			OnlyBMP:    onlyBMP,
			Size:       res.Size,
			Ranges:     res.Ranges,
			Alternates: res.Alternates,
			Branches:   res.Branches,
			Merged:     res.Merged,
			Verified:   res.Verified,
			Checked:    res.Checked,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Pattern)
	if !quiet(cmd) {
		printStats(cmd.ErrOrStderr(), res)
	}
	return nil
}

var statLabel = color.New(color.Faint)

// printStats writes a one-line summary of a result.
func printStats(out io.Writer, res driver.Result) {
	line := fmt.Sprintf("%d members in %d ranges, %d alternates", res.Size, res.Ranges, res.Alternates)
	if res.Branches > 0 {
		line += fmt.Sprintf(" (%d surrogate)", res.Branches)
	}
	if res.Merged > 0 {
		line += fmt.Sprintf(", %d gaps merged", res.Merged)
	}
	if res.Verified {
		line += fmt.Sprintf(", verified on %d probes", res.Checked)
	}
	statLabel.Fprintln(out, line)
}

func readFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
