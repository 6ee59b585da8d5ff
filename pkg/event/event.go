// Package event defines the calendar event shown in every plancal view.
package event

import (
	"fmt"
	"strings"
)

// Type discriminates how an event is rendered. It has no behavioural effect.
type Type int

const (
	Meeting Type = iota
	Task
	Review
	Deadline
)

// AllTypes returns every known event type in display order.
func AllTypes() []Type {
	return []Type{Meeting, Task, Review, Deadline}
}

func (t Type) String() string {
	switch t {
	case Meeting:
		return "meeting"
	case Task:
		return "task"
	case Review:
		return "review"
	case Deadline:
		return "deadline"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseType converts a type name to a Type.
func ParseType(raw string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range AllTypes() {
		if t.String() == name {
			return t, nil
		}
	}
	return Meeting, fmt.Errorf("event: unknown type %q", raw)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Priority ranks an event.
type Priority int

const (
	High Priority = iota
	Medium
	Low
)

// AllPriorities returns every priority from highest to lowest.
func AllPriorities() []Priority {
	return []Priority{High, Medium, Low}
}

func (p Priority) String() string {
	switch p {
	case High:
		return "High"
	case Medium:
		return "Medium"
	case Low:
		return "Low"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// ParsePriority converts a priority name (any case) to a Priority.
func ParsePriority(raw string) (Priority, error) {
	name := strings.TrimSpace(raw)
	for _, p := range AllPriorities() {
		if strings.EqualFold(p.String(), name) {
			return p, nil
		}
	}
	return Medium, fmt.Errorf("event: unknown priority %q", raw)
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Event is a single entry on the calendar.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        Type     `json:"type"`
	Date        string   `json:"date"`
	StartTime   *Clock   `json:"startTime,omitempty"`
	EndTime     *Clock   `json:"endTime,omitempty"`
	Priority    Priority `json:"priority"`

	Feature   string   `json:"feature,omitempty"`
	Assignee  string   `json:"assignee,omitempty"`
	Progress  int      `json:"progress,omitempty"`
	Attendees []string `json:"attendees,omitempty"`
}

// Day returns the parsed calendar date of the event. Events whose date does
// not parse report false and are left out of every view.
func (e Event) Day() (Date, bool) {
	d, err := ParseDate(e.Date)
	if err != nil {
		return Date{}, false
	}
	return d, true
}

// Hour returns the start hour when a start time is set.
func (e Event) Hour() (int, bool) {
	if e.StartTime == nil {
		return 0, false
	}
	return e.StartTime.Hour, true
}

// TimeRange renders "HH:MM-HH:MM", "HH:MM" or "" depending on what is set.
func (e Event) TimeRange() string {
	switch {
	case e.StartTime != nil && e.EndTime != nil:
		return e.StartTime.String() + "-" + e.EndTime.String()
	case e.StartTime != nil:
		return e.StartTime.String()
	default:
		return ""
	}
}

func (e Event) String() string {
	if tr := e.TimeRange(); tr != "" {
		return fmt.Sprintf("%s %s [%s]", tr, e.Title, e.Type)
	}
	return fmt.Sprintf("%s [%s]", e.Title, e.Type)
}

// Clone returns a deep copy of e.
func (e Event) Clone() Event {
	out := e
	if e.StartTime != nil {
		st := *e.StartTime
		out.StartTime = &st
	}
	if e.EndTime != nil {
		et := *e.EndTime
		out.EndTime = &et
	}
	if e.Attendees != nil {
		out.Attendees = append([]string(nil), e.Attendees...)
	}
	return out
}
