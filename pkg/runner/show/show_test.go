package show

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/plancal/pkg/store"
	"tableflip.dev/plancal/pkg/story"
	"tableflip.dev/plancal/pkg/view"
)

func fixedNow() time.Time {
	return time.Date(2025, time.July, 16, 10, 0, 0, 0, time.Local)
}

func newPersistence(t *testing.T) store.Persistence {
	t.Helper()
	p, err := store.Load(store.StaticConfig{Path: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	err = p.Store(&story.Story{
		ID:       7,
		Title:    "Launch",
		DueDate:  "2025-07-20",
		Priority: "High",
		Features: []story.Feature{{ID: 3, Name: "API", DueDate: "2025-07-18", Priority: "Medium"}},
	})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return p
}

func TestShowWeek(t *testing.T) {
	out := &bytes.Buffer{}
	s := Show{
		Persistence: newPersistence(t),
		StoryID:     7,
		Granularity: view.Week,
		Color:       store.ColorNever,
		Out:         out,
		Now:         fixedNow,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}
	got := out.String()
	for _, want := range []string{"7  Launch", "Jul 13 - Jul 19, 2025", "API"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	// the deadline is on the Sunday after this week
	if strings.Contains(got, "Sun Jul 20") {
		t.Fatalf("deadline should be outside the week:\n%s", got)
	}
}

func TestShowJSON(t *testing.T) {
	out := &bytes.Buffer{}
	s := Show{
		Persistence: newPersistence(t),
		StoryID:     7,
		Granularity: view.Month,
		On:          time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local),
		JSON:        true,
		Out:         out,
		Now:         fixedNow,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}

	var got struct {
		Granularity string `json:"granularity"`
		Title       string `json:"title"`
		Start       string `json:"start"`
		End         string `json:"end"`
		Lead        int    `json:"lead"`
		Cells       []struct {
			Date   string `json:"date"`
			Events []struct {
				ID string `json:"id"`
			} `json:"events"`
		} `json:"cells"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if got.Granularity != "month" || got.Title != "July 2025" {
		t.Fatalf("unexpected header %+v", got)
	}
	if got.Start != "2025-07-01" || got.End != "2025-07-31" {
		t.Fatalf("unexpected bounds %s..%s", got.Start, got.End)
	}
	if got.Lead != 2 || len(got.Cells) != 2+31 {
		t.Fatalf("expected 2 lead cells and 31 days, got lead %d cells %d", got.Lead, len(got.Cells))
	}
	day20 := got.Cells[got.Lead+19]
	if day20.Date != "2025-07-20" || len(day20.Events) != 1 || day20.Events[0].ID != "story-7" {
		t.Fatalf("expected the deadline on the 20th, got %+v", day20)
	}
}

func TestShowMissingStory(t *testing.T) {
	out := &bytes.Buffer{}
	s := Show{Persistence: newPersistence(t), StoryID: 99, Granularity: view.Month, Samples: true, Color: store.ColorNever, Out: out, Now: fixedNow}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("a missing story should render, got %v", err)
	}
	got := out.String()
	for _, want := range []string{"story 99 not found", "July 2025"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestShowMissingStoryJSON(t *testing.T) {
	out := &bytes.Buffer{}
	s := Show{Persistence: newPersistence(t), StoryID: 99, Granularity: view.Week, JSON: true, Out: out, Now: fixedNow}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}
	var got struct {
		Found bool   `json:"found"`
		Note  string `json:"note"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Found || got.Note != "story 99 not found" || got.Title != "Jul 13 - Jul 19, 2025" {
		t.Fatalf("unexpected window %+v", got)
	}
}

func TestShowOverlaysCalendarFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "extra.ics")
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
		"BEGIN:VEVENT",
		"UID:offsite-1",
		"DTSTAMP:20250701T000000Z",
		"SUMMARY:Offsite",
		"DTSTART;VALUE=DATE:20250716",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	if err := os.WriteFile(name, []byte(ics), 0o644); err != nil {
		t.Fatalf("write ics: %v", err)
	}

	out := &bytes.Buffer{}
	s := Show{Granularity: view.Day, ICS: []string{name}, Color: store.ColorNever, Out: out, Now: fixedNow}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "Offsite") {
		t.Fatalf("overlay event missing:\n%s", out.String())
	}
}
