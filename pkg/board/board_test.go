package board

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/session"
	"tableflip.dev/plancal/pkg/story"
	"tableflip.dev/plancal/pkg/view"
)

func fixedNow() time.Time {
	return time.Date(2025, time.July, 16, 10, 0, 0, 0, time.Local)
}

func launch() *story.Story {
	return &story.Story{
		ID:       7,
		Title:    "Launch",
		DueDate:  "2025-07-20",
		Priority: "High",
		Features: []story.Feature{{ID: 3, Name: "API", DueDate: "2025-07-18", Priority: "Medium"}},
	}
}

func TestNewBoardStartsToday(t *testing.T) {
	b := New(Options{Now: fixedNow, Granularity: view.Month})
	if !b.Reference().Equal(fixedNow()) {
		t.Fatalf("expected reference at now, got %v", b.Reference())
	}
	if b.Found() {
		t.Fatalf("no story loaded yet")
	}
	if len(b.Events()) != 0 {
		t.Fatalf("expected no events without story or samples")
	}
}

func TestSetStoryRecomputes(t *testing.T) {
	b := New(Options{Now: fixedNow, Samples: true})
	b.SetStory(launch())
	if got := len(b.Events()); got != 2+3 {
		t.Fatalf("expected 2 story events + 3 samples, got %d", got)
	}

	s := launch()
	s.Features = append(s.Features, story.Feature{ID: 4, Name: "UI", DueDate: "2025-07-19"})
	b.SetStory(s)
	if got := len(b.Events()); got != 3+3 {
		t.Fatalf("expected full regeneration with 6 events, got %d", got)
	}

	b.SetStory(nil)
	if b.Found() || len(b.Events()) != 3 {
		t.Fatalf("missing story should leave only samples, got %d", len(b.Events()))
	}
}

func TestSetStoryCopiesInput(t *testing.T) {
	b := New(Options{Now: fixedNow})
	s := launch()
	b.SetStory(s)
	s.Features[0].Name = "mutated"
	if e, _ := b.Event("feature-3"); e.Title != "API" {
		t.Fatalf("board should not alias caller's story")
	}
}

func TestSaveNewEvent(t *testing.T) {
	b := New(Options{Now: fixedNow})
	b.SetStory(launch())
	before := len(b.Events())

	b.OpenNew()
	if err := b.Form().Update(func(d *session.Draft) { d.Title = "" }); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := b.Save(); !errors.Is(err, session.ErrRequiredFields) {
		t.Fatalf("expected required-field error, got %v", err)
	}
	if len(b.Events()) != before {
		t.Fatalf("rejected save changed the event list")
	}
	if !b.Form().IsOpen() {
		t.Fatalf("form should stay open after a rejected save")
	}

	_ = b.Form().Update(func(d *session.Draft) {
		d.Title = "Release party"
		d.StartTime = "18:00"
	})
	e, err := b.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(b.Events()) != before+1 {
		t.Fatalf("expected exactly one more event, got %d", len(b.Events())-before)
	}
	if e.Date != "2025-07-16" {
		t.Fatalf("new event should default to the reference date, got %s", e.Date)
	}

	w := b.Window()
	if w.Granularity != view.Day {
		t.Fatalf("zero granularity should be day")
	}
	if len(w.Slots[18].Events) != 1 || w.Slots[18].Events[0].ID != e.ID {
		t.Fatalf("saved event not shown in its slot")
	}
}

func TestEditDerivedEventShadowsOriginal(t *testing.T) {
	b := New(Options{Now: fixedNow})
	b.SetStory(launch())

	if err := b.OpenEdit("nope"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if err := b.OpenEdit("feature-3"); err != nil {
		t.Fatalf("open edit: %v", err)
	}
	_ = b.Form().Update(func(d *session.Draft) {
		d.Title = "API v2"
		d.StartTime = "09:00"
	})
	if _, err := b.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	events := b.Events()
	if len(events) != 2 {
		t.Fatalf("edit must not add events, got %d", len(events))
	}
	if events[1].ID != "feature-3" || events[1].Title != "API v2" {
		t.Fatalf("edit not applied in place: %+v", events[1])
	}

	// Edits survive regeneration from the source record.
	b.SetStory(launch())
	if e, _ := b.Event("feature-3"); e.Title != "API v2" {
		t.Fatalf("edit lost after recompute: %+v", e)
	}
}

func TestCancelLeavesEventsAlone(t *testing.T) {
	b := New(Options{Now: fixedNow})
	b.OpenNew()
	_ = b.Form().Update(func(d *session.Draft) { d.Title = "x"; d.StartTime = "10:00" })
	b.Cancel()
	if b.Form().IsOpen() || len(b.Events()) != 0 {
		t.Fatalf("cancel should close without saving")
	}
}

func TestNavigation(t *testing.T) {
	b := New(Options{Now: fixedNow, Granularity: view.Month})
	b.Prev()
	b.Next()
	if b.Reference().Month() != time.July || b.Reference().Year() != 2025 {
		t.Fatalf("month round trip landed on %v", b.Reference())
	}

	b.SetGranularity(view.Week)
	b.Next()
	if got := b.Reference().Format("2006-01-02"); got != "2025-07-23" {
		t.Fatalf("week step: %s", got)
	}
	b.SetGranularity(view.Day)
	b.Prev()
	if got := b.Reference().Format("2006-01-02"); got != "2025-07-22" {
		t.Fatalf("day step: %s", got)
	}
	b.Today()
	if !b.Reference().Equal(fixedNow()) {
		t.Fatalf("today should reset the reference")
	}
}

func TestAddValidates(t *testing.T) {
	b := New(Options{Now: fixedNow})
	if _, err := b.Add(session.Draft{Title: "x"}); err == nil {
		t.Fatalf("expected validation error")
	}
	e, err := b.Add(session.Draft{Title: "Demo", Date: "2025-07-17", StartTime: "15:00", Type: event.Meeting})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got, ok := b.Event(e.ID); !ok || got.Title != "Demo" {
		t.Fatalf("added event missing")
	}
}

func TestOverlayAddsAndShadows(t *testing.T) {
	b := New(Options{Now: fixedNow})
	b.SetStory(launch())

	b.Overlay(
		event.Event{ID: "ics-1", Title: "Offsite", Date: "2025-07-21", Type: event.Meeting},
		event.Event{ID: "story-7", Title: "Launch (moved)", Date: "2025-07-22", Type: event.Deadline},
	)

	if got := len(b.Events()); got != 3 {
		t.Fatalf("expected deadline, feature and one overlay, got %d", got)
	}
	if e, ok := b.Event("story-7"); !ok || e.Date != "2025-07-22" {
		t.Fatalf("overlay should shadow the derived deadline, got %+v", e)
	}
	if _, ok := b.Event("ics-1"); !ok {
		t.Fatalf("overlay event missing")
	}
}
