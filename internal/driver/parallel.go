package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"uregex/internal/trace"
)

// RenderAll renders jobs concurrently, at most opts.Jobs at a time
// (GOMAXPROCS when zero). Results come back in job order. Per-set failures
// are reported in each Result; the returned error is only set when ctx is
// cancelled.
func RenderAll(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopePhase, "render")
	span.WithExtra("sets", strconv.Itoa(len(jobs)))

	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		span.End("")
		return results, nil
	}
	for _, j := range jobs {
		emit(opts.Progress, Event{Set: j.Name, Stage: StageParse, Status: StatusQueued})
	}

	limit := opts.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	// Результаты по индексу: каждая горутина пишет только в свой слот.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, len(jobs)))
	for i, job := range jobs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = RenderJob(gctx, job, opts)
			return nil
		})
	}
	err := g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.WithExtra("failed", strconv.Itoa(failed))
	if err != nil {
		span.End(err.Error())
		return results, err
	}
	span.End("")
	return results, nil
}
