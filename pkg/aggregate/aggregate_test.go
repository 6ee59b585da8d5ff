package aggregate

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/story"
)

func TestEventsLaunchExample(t *testing.T) {
	root := &story.Story{
		ID:       7,
		Title:    "Launch",
		DueDate:  "2025-07-20",
		Priority: "High",
		Features: []story.Feature{{ID: 3, Name: "API", DueDate: "2025-07-18", Priority: "Medium"}},
	}

	got := Events(root, nil)
	want := []event.Event{
		{ID: "story-7", Title: "Launch", Type: event.Deadline, Date: "2025-07-20", Priority: event.High},
		{ID: "feature-3", Title: "API", Type: event.Task, Date: "2025-07-18", Priority: event.Medium, Feature: "API"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestEventsCountsFeaturesPlusSamples(t *testing.T) {
	samples := Samples(time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC))
	for n := 0; n < 5; n++ {
		root := &story.Story{ID: 1, Title: "Root", DueDate: "2025-07-01"}
		for i := 0; i < n; i++ {
			root.Features = append(root.Features, story.Feature{ID: i + 1, Name: fmt.Sprintf("f%d", i)})
		}

		got := Events(root, samples)
		if len(got) != n+1+len(samples) {
			t.Fatalf("n=%d: expected %d events, got %d", n, n+1+len(samples), len(got))
		}

		var deadlines, tasks int
		for _, e := range got {
			switch {
			case strings.HasPrefix(e.ID, "story-"):
				if e.Type != event.Deadline {
					t.Fatalf("story event has type %v", e.Type)
				}
				deadlines++
			case strings.HasPrefix(e.ID, "feature-"):
				if e.Type != event.Task {
					t.Fatalf("feature event has type %v", e.Type)
				}
				tasks++
			}
		}
		if deadlines != 1 || tasks != n {
			t.Fatalf("n=%d: got %d deadlines and %d tasks", n, deadlines, tasks)
		}
	}
}

func TestEventsNilRootYieldsSamplesOnly(t *testing.T) {
	samples := Samples(time.Now())
	got := Events(nil, samples)
	if len(got) != len(samples) {
		t.Fatalf("expected only samples, got %d events", len(got))
	}
	if len(Events(nil, nil)) != 0 {
		t.Fatalf("expected empty list")
	}
}

func TestEventsDeduplicatesIDs(t *testing.T) {
	samples := []event.Event{
		{ID: "story-1", Title: "shadow"},
		{ID: "x", Title: "first"},
		{ID: "x", Title: "second"},
	}
	got := Events(&story.Story{ID: 1, Title: "real"}, samples)
	if len(got) != 2 {
		t.Fatalf("expected 2 unique events, got %d: %+v", len(got), got)
	}
	if got[0].Title != "real" || got[1].Title != "first" {
		t.Fatalf("first occurrence should win: %+v", got)
	}
}

func TestEventsCarriesFeatureMetadata(t *testing.T) {
	root := &story.Story{ID: 2, Title: "Billing", Features: []story.Feature{{
		ID: 9, Name: "Invoices", Description: "PDF export", DueDate: "not-a-date",
		Priority: "bogus", Assignee: "sam", Progress: 60,
	}}}
	got := Events(root, nil)[1]
	if got.Assignee != "sam" || got.Progress != 60 || got.Description != "PDF export" {
		t.Fatalf("metadata not carried: %+v", got)
	}
	if got.Date != "not-a-date" {
		t.Fatalf("dates are carried through unchanged, got %q", got.Date)
	}
	if got.Priority != event.Medium {
		t.Fatalf("unknown priority should fall back to Medium, got %v", got.Priority)
	}
}

func TestSamplesAreAnchored(t *testing.T) {
	anchor := time.Date(2025, 12, 30, 8, 0, 0, 0, time.UTC)
	s := Samples(anchor)
	if s[0].Date != "2025-12-30" || s[2].Date != "2026-01-02" {
		t.Fatalf("unexpected sample dates: %s %s", s[0].Date, s[2].Date)
	}
	for _, e := range s {
		if _, ok := e.Day(); !ok {
			t.Fatalf("sample %s has invalid date", e.ID)
		}
	}
}
