// Package session holds the in-progress values of an event form.
//
// A session is Closed until Open is called. Save validates the draft; on
// success it returns the event and closes, on failure it keeps the session
// open so the form can show the problem. Cancel discards the draft.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/plancal/pkg/event"
)

// State is the lifecycle state of a Session.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrRequiredFields is wrapped by validation errors that name missing fields.
	ErrRequiredFields = errors.New("session: required fields missing")
	// ErrNotOpen is returned when saving or editing a closed session.
	ErrNotOpen = errors.New("session: not open")
)

// ValidationError lists what is wrong with a draft.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (v *ValidationError) Error() string {
	var parts []string
	if len(v.Missing) > 0 {
		parts = append(parts, "required fields missing: "+strings.Join(v.Missing, ", "))
	}
	if len(v.Invalid) > 0 {
		parts = append(parts, strings.Join(v.Invalid, "; "))
	}
	return strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrRequiredFields when fields are missing.
func (v *ValidationError) Unwrap() error {
	if len(v.Missing) > 0 {
		return ErrRequiredFields
	}
	return nil
}

// Draft is the raw text of the form fields.
type Draft struct {
	ID          string
	Title       string
	Description string
	Type        event.Type
	Date        string
	StartTime   string
	EndTime     string
	Priority    event.Priority

	// carried from the event being edited
	feature   string
	assignee  string
	progress  int
	attendees []string
}

// DraftFrom fills a draft with the values of an existing event.
func DraftFrom(e event.Event) Draft {
	d := Draft{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Type:        e.Type,
		Date:        e.Date,
		Priority:    e.Priority,
		feature:     e.Feature,
		assignee:    e.Assignee,
		progress:    e.Progress,
		attendees:   append([]string(nil), e.Attendees...),
	}
	if e.StartTime != nil {
		d.StartTime = e.StartTime.String()
	}
	if e.EndTime != nil {
		d.EndTime = e.EndTime.String()
	}
	return d
}

// Session is the editing state machine.
type Session struct {
	state   State
	draft   Draft
	message string
	newID   func() string
}

// New returns a closed session.
func New() *Session {
	return &Session{newID: func() string { return "event-" + uuid.NewString() }}
}

// State reports whether the session is open.
func (s *Session) State() State { return s.state }

// IsOpen is shorthand for State() == Open.
func (s *Session) IsOpen() bool { return s.state == Open }

// Open starts editing the draft. Opening an open session replaces its draft.
func (s *Session) Open(d Draft) {
	s.state = Open
	s.draft = d
	s.message = ""
}

// OpenNew starts a blank meeting draft on date.
func (s *Session) OpenNew(date event.Date) {
	s.Open(Draft{Type: event.Meeting, Priority: event.Medium, Date: date.String()})
}

// Draft returns the current values.
func (s *Session) Draft() Draft { return s.draft }

// Message is the last validation message shown to the user.
func (s *Session) Message() string { return s.message }

// Update applies fn to the draft of an open session.
func (s *Session) Update(fn func(*Draft)) error {
	if s.state != Open {
		return ErrNotOpen
	}
	fn(&s.draft)
	return nil
}

// Save validates the draft. On success the session closes and the event is
// returned; otherwise the session stays open with a message set.
func (s *Session) Save() (event.Event, error) {
	if s.state != Open {
		return event.Event{}, ErrNotOpen
	}
	e, err := s.build()
	if err != nil {
		s.message = err.Error()
		return event.Event{}, err
	}
	s.state = Closed
	s.draft = Draft{}
	s.message = ""
	return e, nil
}

// Cancel closes the session and drops the draft.
func (s *Session) Cancel() {
	s.state = Closed
	s.draft = Draft{}
	s.message = ""
}

func (s *Session) build() (event.Event, error) {
	d := s.draft
	verr := &ValidationError{}

	title := strings.TrimSpace(d.Title)
	if title == "" {
		verr.Missing = append(verr.Missing, "title")
	}
	dateText := strings.TrimSpace(d.Date)
	if dateText == "" {
		verr.Missing = append(verr.Missing, "date")
	}
	startText := strings.TrimSpace(d.StartTime)
	if startText == "" {
		verr.Missing = append(verr.Missing, "start time")
	}

	var day event.Date
	if dateText != "" {
		var err error
		if day, err = event.ParseDate(dateText); err != nil {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("date %q is not YYYY-MM-DD", dateText))
		}
	}
	var start, end *event.Clock
	if startText != "" {
		c, err := event.ParseClock(startText)
		if err != nil {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("start time %q is not HH:MM", startText))
		} else {
			start = &c
		}
	}
	if endText := strings.TrimSpace(d.EndTime); endText != "" {
		c, err := event.ParseClock(endText)
		if err != nil {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("end time %q is not HH:MM", endText))
		} else {
			end = &c
		}
	}
	if start != nil && end != nil && end.Minutes() < start.Minutes() {
		verr.Invalid = append(verr.Invalid, "end time is before start time")
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return event.Event{}, verr
	}

	id := d.ID
	if id == "" {
		id = s.newID()
	}
	return event.Event{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(d.Description),
		Type:        d.Type,
		Date:        day.String(),
		StartTime:   start,
		EndTime:     end,
		Priority:    d.Priority,
		Feature:     d.feature,
		Assignee:    d.assignee,
		Progress:    d.progress,
		Attendees:   d.attendees,
	}, nil
}
