package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"uregex/internal/dontcare"
	"uregex/internal/escape"
	"uregex/internal/regexgen"
	"uregex/internal/trace"
	"uregex/internal/uset"
	"uregex/internal/verify"
)

// Result is the outcome of one job. Err is set when the job failed; the
// other fields are then partial.
type Result struct {
	Job        Job
	Pattern    string
	Alternates int
	Branches   int
	Size       int // members after merging
	Ranges     int // ranges after merging
	Merged     int // don't-care gaps filled
	Cached     bool
	Verified   bool
	Checked    int
	Mismatches []verify.Mismatch
	Err        error
	Elapsed    time.Duration
}

// Options configures RenderJob and RenderAll. The zero value renders
// sequentially without caching.
type Options struct {
	Jobs     int
	Disk     *DiskCache
	Memory   *MemoryCache
	Progress ProgressSink
}

// RenderJob renders a single job. Failures are reported in Result.Err.
func RenderJob(ctx context.Context, job Job, opts Options) Result {
	started := time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeSet, "set:"+job.Name)
	res := renderJob(ctx, job, opts)
	res.Elapsed = time.Since(started)

	span.WithExtra("alternates", strconv.Itoa(res.Alternates)).
		WithExtra("cached", strconv.FormatBool(res.Cached))
	detail := ""
	status := StatusDone
	switch {
	case res.Err != nil:
		detail = res.Err.Error()
		status = StatusError
		trace.Error(trace.FromContext(ctx), "set:"+job.Name, res.Err, trace.ParentID(ctx))
	case res.Cached:
		status = StatusCached
	}
	span.End(detail)
	emit(opts.Progress, Event{Set: job.Name, Stage: StageRender, Status: status, Err: res.Err, Elapsed: res.Elapsed})
	return res
}

func renderJob(ctx context.Context, job Job, opts Options) Result {
	res := Result{Job: job}

	emit(opts.Progress, Event{Set: job.Name, Stage: StageParse, Status: StatusWorking})
	set, err := uset.Parse(job.Members)
	if err != nil {
		res.Err = fmt.Errorf("set %q: members: %w", job.Name, err)
		return res
	}
	dc := uset.New()
	if job.DontCare != "" {
		if dc, err = uset.Parse(job.DontCare); err != nil {
			res.Err = fmt.Errorf("set %q: dont_care: %w", job.Name, err)
			return res
		}
	}
	esc, err := escape.Lookup(job.Dialect)
	if err != nil {
		res.Err = fmt.Errorf("set %q: %w", job.Name, err)
		return res
	}

	key := jobDigest(job, set.String(), dc.String())
	if entry, ok := lookup(ctx, key, opts); ok {
		fromEntry(&res, entry)
		return res
	}

	emit(opts.Progress, Event{Set: job.Name, Stage: StageMerge, Status: StatusWorking})
	res.Merged = len(dontcare.Spans(set, dc))
	dontcare.Merge(set, dc)
	res.Size = set.Size()
	res.Ranges = set.RangeCount()

	emit(opts.Progress, Event{Set: job.Name, Stage: StageRender, Status: StatusWorking})
	out := regexgen.Render(set, regexgen.Options{Escaper: esc, OnlyBMP: job.OnlyBMP})
	res.Pattern = out.Pattern
	res.Alternates = out.Alternates
	res.Branches = out.Branches

	if job.Verify {
		emit(opts.Progress, Event{Set: job.Name, Stage: StageVerify, Status: StatusWorking})
		if err := verifyResult(&res, set); err != nil {
			res.Err = fmt.Errorf("set %q: %w", job.Name, err)
			return res
		}
	}

	entry := toEntry(&res)
	opts.Memory.Put(key, entry)
	if err := opts.Disk.Put(key, &entry); err != nil {
		// кэш не обязателен, но о сбое стоит знать
		trace.Error(trace.FromContext(ctx), "cache:put", err, trace.ParentID(ctx))
	}
	return res
}

func verifyResult(res *Result, set *uset.Set) error {
	m, err := verify.Compile(res.Pattern, res.Job.Dialect, res.Job.OnlyBMP)
	if err != nil {
		return err
	}
	rep, err := verify.Set(m, set)
	if err != nil {
		return err
	}
	res.Checked = rep.Checked
	res.Mismatches = rep.Mismatches
	if !rep.OK() {
		return fmt.Errorf("pattern fails %d of %d probes, first: %s", len(rep.Mismatches), rep.Checked, rep.Mismatches[0])
	}
	res.Verified = true
	return nil
}

func lookup(ctx context.Context, key Digest, opts Options) (CacheEntry, bool) {
	t := trace.FromContext(ctx)
	parent := trace.ParentID(ctx)
	if e, ok := opts.Memory.Get(key); ok {
		trace.Point(t, trace.ScopeCache, "cache:memory", key.String(), parent)
		return e, true
	}
	var e CacheEntry
	ok, err := opts.Disk.Get(key, &e)
	if err != nil {
		trace.Error(t, "cache:get", err, parent)
		return CacheEntry{}, false
	}
	if !ok {
		return CacheEntry{}, false
	}
	trace.Point(t, trace.ScopeCache, "cache:disk", key.String(), parent)
	opts.Memory.Put(key, e)
	return e, true
}

func toEntry(res *Result) CacheEntry {
	return CacheEntry{
		Name:       res.Job.Name,
		Pattern:    res.Pattern,
		Alternates: res.Alternates,
		Branches:   res.Branches,
		Size:       res.Size,
		Ranges:     res.Ranges,
		Merged:     res.Merged,
		Verified:   res.Verified,
		Checked:    res.Checked,
	}
}

func fromEntry(res *Result, e CacheEntry) {
	res.Pattern = e.Pattern
	res.Alternates = e.Alternates
	res.Branches = e.Branches
	res.Size = e.Size
	res.Ranges = e.Ranges
	res.Merged = e.Merged
	res.Verified = e.Verified
	res.Checked = e.Checked
	res.Cached = true
}
