package session

import (
	"errors"
	"strings"
	"testing"

	"tableflip.dev/plancal/pkg/event"
)

func TestLifecycle(t *testing.T) {
	s := New()
	if s.State() != Closed {
		t.Fatalf("new session should be closed")
	}
	if _, err := s.Save(); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}

	s.OpenNew(event.Date{Year: 2025, Month: 7, Day: 20})
	if !s.IsOpen() || s.Draft().Date != "2025-07-20" {
		t.Fatalf("expected open session on 2025-07-20, got %v %+v", s.State(), s.Draft())
	}

	s.Cancel()
	if s.IsOpen() || s.Draft().Date != "" {
		t.Fatalf("cancel should close and clear the draft")
	}
	if err := s.Update(func(d *Draft) { d.Title = "x" }); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen on update, got %v", err)
	}
}

func TestSaveRequiresFields(t *testing.T) {
	s := New()
	s.Open(Draft{})

	_, err := s.Save()
	if !errors.Is(err, ErrRequiredFields) {
		t.Fatalf("expected ErrRequiredFields, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if strings.Join(verr.Missing, ",") != "title,date,start time" {
		t.Fatalf("unexpected missing fields %v", verr.Missing)
	}
	if !s.IsOpen() {
		t.Fatalf("failed save must keep the session open")
	}
	if !strings.Contains(s.Message(), "required fields missing") {
		t.Fatalf("expected user-facing message, got %q", s.Message())
	}
}

func TestSaveRejectsMalformedValues(t *testing.T) {
	tests := map[string]Draft{
		"bad date":  {Title: "x", Date: "20/07/2025", StartTime: "09:00"},
		"bad start": {Title: "x", Date: "2025-07-20", StartTime: "9am"},
		"bad end":   {Title: "x", Date: "2025-07-20", StartTime: "09:00", EndTime: "25:00"},
		"end first": {Title: "x", Date: "2025-07-20", StartTime: "10:00", EndTime: "09:00"},
	}
	for name, d := range tests {
		s := New()
		s.Open(d)
		_, err := s.Save()
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if errors.Is(err, ErrRequiredFields) {
			t.Fatalf("%s: no field is missing, got %v", name, err)
		}
		if !s.IsOpen() {
			t.Fatalf("%s: session should stay open", name)
		}
	}
}

func TestSaveBuildsEvent(t *testing.T) {
	s := New()
	s.newID = func() string { return "event-fixed" }
	s.OpenNew(event.Date{Year: 2025, Month: 7, Day: 20})
	if err := s.Update(func(d *Draft) {
		d.Title = "  Retro  "
		d.StartTime = "16:00"
		d.EndTime = "17:00"
		d.Type = event.Review
		d.Priority = event.Low
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	e, err := s.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.IsOpen() {
		t.Fatalf("successful save should close the session")
	}
	if e.ID != "event-fixed" || e.Title != "Retro" || e.Date != "2025-07-20" {
		t.Fatalf("unexpected event %+v", e)
	}
	if e.TimeRange() != "16:00-17:00" || e.Type != event.Review || e.Priority != event.Low {
		t.Fatalf("unexpected event details %+v", e)
	}
}

func TestEditKeepsIDAndMetadata(t *testing.T) {
	orig := event.Event{
		ID: "feature-3", Title: "API", Type: event.Task, Date: "2025-07-18",
		StartTime: event.MustClock("08:00"), Priority: event.Medium,
		Assignee: "kim", Progress: 40, Feature: "API",
	}
	s := New()
	s.Open(DraftFrom(orig))
	_ = s.Update(func(d *Draft) { d.Date = "2025-07-19" })

	e, err := s.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.ID != "feature-3" || e.Assignee != "kim" || e.Progress != 40 || e.Date != "2025-07-19" {
		t.Fatalf("edit lost data: %+v", e)
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	s := New()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s.Open(Draft{Title: "x", Date: "2025-01-01", StartTime: "10:00"})
		e, err := s.Save()
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if !strings.HasPrefix(e.ID, "event-") || seen[e.ID] {
			t.Fatalf("bad or duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}
}
