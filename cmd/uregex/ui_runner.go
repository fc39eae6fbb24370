package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"uregex/internal/driver"
	"uregex/internal/ui"
)

type batchOutcome struct {
	results []driver.Result
	err     error
}

// runBatchWithUI renders jobs in the background while the progress view
// runs in the foreground.
func runBatchWithUI(ctx context.Context, title string, jobs []driver.Job, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.RenderAll(ctx, jobs, opts)
		outcomeCh <- batchOutcome{results: results, err: err}
		close(events)
	}()

	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name
	}
	program := tea.NewProgram(ui.NewProgressModel(title, names, events), tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы рендер не встал на полном канале
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
