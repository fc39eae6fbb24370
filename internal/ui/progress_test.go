package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"uregex/internal/driver"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"latin-lower", 0, "latin-lower"},
		{"latin-lower", 20, "latin-lower"},
		{"latin-lower", 8, "latin..."},
		{"latin-lower", 2, "la"},
		{"漢字漢字漢字", 7, "漢字..."},
	}
	for _, tc := range cases {
		got := Truncate(tc.in, tc.width)
		if got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
		if tc.width > 0 && runewidth.StringWidth(got) > tc.width {
			t.Errorf("Truncate(%q, %d) is %d cells wide", tc.in, tc.width, runewidth.StringWidth(got))
		}
	}
}

func TestApplyEvent(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("batch", []string{"a", "b"}, events).(*progressModel)

	m.applyEvent(driver.Event{Set: "a", Stage: driver.StageRender, Status: driver.StatusWorking})
	if m.items[0].status != "rendering" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	if f := m.fraction(); f != 0.3 {
		t.Fatalf("fraction = %v", f)
	}
	m.applyEvent(driver.Event{Set: "a", Stage: driver.StageRender, Status: driver.StatusCached})
	m.applyEvent(driver.Event{Set: "b", Stage: driver.StageParse, Status: driver.StatusError, Err: errors.New("bad set")})
	m.applyEvent(driver.Event{Set: "unknown", Status: driver.StatusDone})
	if f := m.fraction(); f != 1 {
		t.Fatalf("fraction = %v", f)
	}

	view := m.View()
	for _, want := range []string{"batch (2 sets)", "cached", "b: bad set"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
