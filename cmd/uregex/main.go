package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"uregex/internal/observ"
	"uregex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "uregex",
	Short: "Turn Unicode sets into regular expressions",
	Long: `uregex renders sets of Unicode scalar values and strings as patterns
for regex engines that know nothing about Unicode sets, optionally rewriting
supplementary characters as UTF-16 surrogate pairs.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
}

// cmdTimer is set by --timings and printed after the command.
var cmdTimer *observ.Timer

// traceCleanup records the command's error, if any, and closes the tracer
// opened for it.
var traceCleanup = func(error) {}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(rangesCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr, .ndjson for JSON)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")

	err := rootCmd.Execute()
	traceCleanup(err)
	if cmdTimer != nil {
		fmt.Fprint(os.Stderr, cmdTimer.Summary())
	}
	if err != nil {
		os.Exit(1)
	}
}

func setupCommand(cmd *cobra.Command, _ []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		cmdTimer = observ.NewTimer()
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}
