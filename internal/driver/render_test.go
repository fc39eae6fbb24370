package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"uregex/internal/trace"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(e Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *recordingSink) final(set string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	var last Status
	for _, e := range s.events {
		if e.Set == set {
			last = e.Status
		}
	}
	return last
}

func TestRenderJob(t *testing.T) {
	cases := []struct {
		name string
		job  Job
		want string
	}{
		{"plain", Job{Name: "p", Members: "[a-z]", Dialect: "icu"}, "[a-z]"},
		{"merged", Job{Name: "m", Members: "[a-c e-g]", DontCare: "[d]", Dialect: "icu"}, "[a-g]"},
		{"re2", Job{Name: "r", Members: "[.-/]", Dialect: "re2", Verify: true}, `[\.-\/]`},
		{"bmp", Job{Name: "b", Members: `[\U00010000-\U0001003F]`, Dialect: "icu", OnlyBMP: true, Verify: true}, `\uD800[\uDC00-\uDC3F]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := RenderJob(context.Background(), tc.job, Options{})
			if res.Err != nil {
				t.Fatal(res.Err)
			}
			if res.Pattern != tc.want {
				t.Fatalf("Pattern = %q, want %q", res.Pattern, tc.want)
			}
			if tc.job.Verify && (!res.Verified || res.Checked == 0) {
				t.Fatalf("not verified: %+v", res)
			}
		})
	}
}

func TestRenderJobErrors(t *testing.T) {
	cases := []struct {
		job  Job
		want string
	}{
		{Job{Name: "x", Members: "[a-"}, "members"},
		{Job{Name: "x", Members: "[a]", DontCare: "[b"}, "dont_care"},
		{Job{Name: "x", Members: "[a]", Dialect: "perl"}, "dialect"},
		{Job{Name: "x", Members: `[\U00010000-\U00010001]`, Dialect: "re2", OnlyBMP: true, Verify: true}, "surrogate"},
	}
	for _, tc := range cases {
		res := RenderJob(context.Background(), tc.job, Options{})
		if res.Err == nil || !strings.Contains(res.Err.Error(), tc.want) {
			t.Errorf("%+v: err = %v, want it to mention %q", tc.job, res.Err, tc.want)
		}
	}
}

func TestRenderAllKeepsOrder(t *testing.T) {
	var jobs []Job
	for i := 0; i < 40; i++ {
		lo := rune('a' + i%20)
		jobs = append(jobs, Job{
			Name:    fmt.Sprintf("set-%02d", i),
			Members: fmt.Sprintf("[%c-z {x%d}]", lo, i),
			Dialect: "icu",
		})
	}
	for _, n := range []int{1, 3, 16} {
		results, err := RenderAll(context.Background(), jobs, Options{Jobs: n})
		if err != nil {
			t.Fatal(err)
		}
		for i, r := range results {
			if r.Job.Name != jobs[i].Name {
				t.Fatalf("jobs=%d: result %d is %q", n, i, r.Job.Name)
			}
			lo := rune('a' + i%20)
			if want := fmt.Sprintf("(?:[%c-z]|x%d)", lo, i); r.Pattern != want {
				t.Fatalf("jobs=%d: result %d = %q, want %q", n, i, r.Pattern, want)
			}
		}
	}
}

func TestRenderAllCaches(t *testing.T) {
	disk, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	jobs := []Job{
		{Name: "a", Members: "[a-z]", Dialect: "icu"},
		{Name: "b", Members: "[a-c e-g]", DontCare: "[d]", Dialect: "icu"},
	}

	first, err := RenderAll(context.Background(), jobs, Options{Disk: disk, Memory: NewMemoryCache(2)})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range first {
		if r.Cached || r.Err != nil {
			t.Fatalf("first run: %+v", r)
		}
	}

	sink := &recordingSink{}
	second, err := RenderAll(context.Background(), jobs, Options{Disk: disk, Memory: NewMemoryCache(2), Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range second {
		if !r.Cached {
			t.Fatalf("second run %q not cached", r.Job.Name)
		}
		if r.Pattern != first[i].Pattern || r.Merged != first[i].Merged || r.Size != first[i].Size {
			t.Fatalf("cached %+v differs from %+v", r, first[i])
		}
		if got := sink.final(r.Job.Name); got != StatusCached {
			t.Fatalf("final status of %q = %s", r.Job.Name, got)
		}
	}
}

func TestRenderAllDedupesInMemory(t *testing.T) {
	mem := NewMemoryCache(4)
	jobs := []Job{
		{Name: "one", Members: "[a-z]", Dialect: "icu"},
		{Name: "two", Members: "[a-z]", Dialect: "icu"},
	}
	results, err := RenderAll(context.Background(), jobs, Options{Jobs: 1, Memory: mem})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Cached || !results[1].Cached || mem.Len() != 1 {
		t.Fatalf("cached = %v %v, entries = %d", results[0].Cached, results[1].Cached, mem.Len())
	}
}

func TestRenderAllReportsFailuresPerSet(t *testing.T) {
	sink := &recordingSink{}
	jobs := []Job{
		{Name: "good", Members: "[a]", Dialect: "icu"},
		{Name: "bad", Members: "[", Dialect: "icu"},
	}
	results, err := RenderAll(context.Background(), jobs, Options{Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err != nil || results[1].Err == nil {
		t.Fatalf("errors = %v, %v", results[0].Err, results[1].Err)
	}
	if sink.final("good") != StatusDone || sink.final("bad") != StatusError {
		t.Fatalf("final statuses = %s, %s", sink.final("good"), sink.final("bad"))
	}
}

func TestRenderAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RenderAll(ctx, []Job{{Name: "a", Members: "[a]"}}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestRenderAllTraces(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	if _, err := RenderAll(ctx, []Job{{Name: "lower", Members: "[a-z]"}}, Options{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"→ render", "→ set:lower", "← set:lower", "{alternates=0, cached=false}", "← render"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace missing %q:\n%s", want, out)
		}
	}
}
