package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"uregex/internal/driver"
	"uregex/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags]",
	Short: "Render every set listed in a uregex.toml manifest",
	Long: `Batch loads uregex.toml (found by walking up from the current directory
unless --manifest is given) and renders its [[set]] entries concurrently.
Rendered patterns are cached on disk keyed by their inputs.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("manifest", "", "path to uregex.toml")
	batchCmd.Flags().Int("jobs", 0, "max parallel sets (0=auto)")
	batchCmd.Flags().Bool("no-cache", false, "disable the on-disk pattern cache")
	batchCmd.Flags().Bool("clear-cache", false, "drop the on-disk pattern cache before rendering")
	batchCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	batchCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type batchEntry struct {
	Name       string   `json:"name"`
	Pattern    string   `json:"pattern,omitempty"`
	Dialect    string   `json:"dialect"`
	OnlyBMP    bool     `json:"only_bmp"`
	Alternates int      `json:"alternates"`
	Merged     int      `json:"merged_gaps"`
	Cached     bool     `json:"cached"`
	Verified   bool     `json:"verified,omitempty"`
	Mismatches []string `json:"mismatches,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type batchPayload struct {
	Manifest string       `json:"manifest"`
	Sets     []batchEntry `json:"sets"`
	Failed   int          `json:"failed"`
}

func runBatch(cmd *cobra.Command, _ []string) error {
	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}
	jobsFlag, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobsFlag < 0 {
		return fmt.Errorf("--jobs must be >= 0, got %d", jobsFlag)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	format, err := readFormat(cmd)
	if err != nil {
		return err
	}

	var manifest *driver.Manifest
	err = cmdTimer.Measure("load", func() error {
		var loadErr error
		if manifestPath != "" {
			manifest, loadErr = driver.LoadManifestFile(manifestPath)
		} else {
			manifest, loadErr = driver.LoadManifest(".")
		}
		return loadErr
	})
	if err != nil {
		return err
	}
	jobs, err := manifest.Jobs()
	if err != nil {
		return err
	}

	opts := driver.Options{
		Jobs:   jobsFlag,
		Memory: driver.NewMemoryCache(len(jobs)),
	}
	if !noCache {
		disk, cacheErr := driver.OpenDiskCache("uregex")
		if cacheErr != nil {
			// без кэша тоже можно работать
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: pattern cache disabled: %v\n", cacheErr)
		} else {
			if clearCache {
				if dropErr := disk.DropAll(); dropErr != nil {
					return fmt.Errorf("failed to clear cache: %w", dropErr)
				}
			}
			opts.Disk = disk
		}
	}

	started := time.Now()
	var results []driver.Result
	err = cmdTimer.Measure("render", func() error {
		var renderErr error
		if shouldUseTUI(mode, quiet(cmd), format) {
			results, renderErr = runBatchWithUI(cmd.Context(), "uregex batch", jobs, opts)
		} else {
			results, renderErr = driver.RenderAll(cmd.Context(), jobs, opts)
		}
		return renderErr
	})
	if err != nil {
		return err
	}

	failed := countFailed(results)
	out := cmd.OutOrStdout()
	if format == "json" {
		if err := writeJSON(out, newBatchPayload(manifest.Path, results, failed)); err != nil {
			return err
		}
	} else {
		writeBatchPretty(out, results, quiet(cmd))
		if !quiet(cmd) {
			statLabel.Fprintf(cmd.ErrOrStderr(), "%d sets in %s\n", len(results), time.Since(started).Round(time.Millisecond))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sets failed", failed, len(results))
	}
	return nil
}

func countFailed(results []driver.Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func newBatchPayload(path string, results []driver.Result, failed int) batchPayload {
	payload := batchPayload{Manifest: path, Sets: make([]batchEntry, 0, len(results)), Failed: failed}
	for _, r := range results {
		e := batchEntry{
			Name:       r.Job.Name,
			Pattern:    r.Pattern,
			Dialect:    r.Job.Dialect,
			OnlyBMP:    r.Job.OnlyBMP,
			Alternates: r.Alternates,
			Merged:     r.Merged,
			Cached:     r.Cached,
			Verified:   r.Verified,
		}
		for _, m := range r.Mismatches {
			e.Mismatches = append(e.Mismatches, m.String())
		}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		payload.Sets = append(payload.Sets, e)
	}
	return payload
}

var (
	batchName   = color.New(color.FgCyan, color.Bold)
	batchFailed = color.New(color.FgRed, color.Bold)
	batchCached = color.New(color.FgGreen)
)

// writeBatchPretty prints each set's name and pattern. Failed sets print
// their error instead.
func writeBatchPretty(out io.Writer, results []driver.Result, quiet bool) {
	width := 0
	for _, r := range results {
		width = max(width, len(ui.Truncate(r.Job.Name, 32)))
	}
	for _, r := range results {
		name := ui.Truncate(r.Job.Name, 32)
		batchName.Fprintf(out, "%-*s", width, name)
		if r.Err != nil {
			batchFailed.Fprint(out, "  error: ")
			fmt.Fprintln(out, r.Err)
			continue
		}
		fmt.Fprintf(out, "  %s", r.Pattern)
		if !quiet && r.Cached {
			batchCached.Fprint(out, "  (cached)")
		}
		fmt.Fprintln(out)
	}
}
