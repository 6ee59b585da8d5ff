// Package board holds the state of one calendar rendering session: the
// reference date, the view granularity, the events derived from the current
// story, events added or edited during the session, and the event form.
//
// A Board is owned by a single UI loop and is not safe for concurrent use.
package board

import (
	"errors"
	"time"

	"tableflip.dev/plancal/pkg/aggregate"
	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/session"
	"tableflip.dev/plancal/pkg/story"
	"tableflip.dev/plancal/pkg/view"
)

// ErrEventNotFound is returned when editing an id that is not on the board.
var ErrEventNotFound = errors.New("board: event not found")

// Options configure a Board.
type Options struct {
	// Now returns the wall clock; used for "today" and the initial reference.
	Now func() time.Time
	// Samples includes the static sample events.
	Samples bool
	// Granularity is the initial view mode.
	Granularity view.Granularity
}

// Board is the calendar state for one session.
type Board struct {
	now     func() time.Time
	samples bool

	story   *story.Story
	derived []event.Event

	// session-local events in insertion order; edits to derived events are
	// kept here too and shadow the derived copy.
	local    []event.Event
	localIdx map[string]int

	reference   time.Time
	granularity view.Granularity

	form *session.Session
}

// New creates a board showing today.
func New(opts Options) *Board {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	b := &Board{
		now:         now,
		samples:     opts.Samples,
		localIdx:    make(map[string]int),
		reference:   now(),
		granularity: opts.Granularity,
		form:        session.New(),
	}
	b.recompute()
	return b
}

// SetStory replaces the root record and regenerates derived events. A nil
// story leaves the board with no story events.
func (b *Board) SetStory(s *story.Story) {
	b.story = s.Clone()
	b.recompute()
}

// Story returns the current root record, or nil.
func (b *Board) Story() *story.Story { return b.story }

// Found reports whether a root record is loaded.
func (b *Board) Found() bool { return b.story != nil }

func (b *Board) recompute() {
	var samples []event.Event
	if b.samples {
		samples = aggregate.Samples(b.now())
	}
	b.derived = aggregate.Events(b.story, samples)
}

// Events returns derived events, with session edits applied, followed by
// events added in this session.
func (b *Board) Events() []event.Event {
	out := make([]event.Event, 0, len(b.derived)+len(b.local))
	shadowed := make(map[string]bool, len(b.local))
	for _, e := range b.derived {
		if i, ok := b.localIdx[e.ID]; ok {
			out = append(out, b.local[i].Clone())
			shadowed[e.ID] = true
			continue
		}
		out = append(out, e.Clone())
	}
	for _, e := range b.local {
		if shadowed[e.ID] {
			continue
		}
		out = append(out, e.Clone())
	}
	return out
}

// Event looks up an event by id.
func (b *Board) Event(id string) (event.Event, bool) {
	for _, e := range b.Events() {
		if e.ID == id {
			return e, true
		}
	}
	return event.Event{}, false
}

// Reference is the date the view is centred on.
func (b *Board) Reference() time.Time { return b.reference }

// SetReference jumps to t.
func (b *Board) SetReference(t time.Time) { b.reference = t }

// Granularity is the current view mode.
func (b *Board) Granularity() view.Granularity { return b.granularity }

// SetGranularity switches the view mode and keeps the reference date.
func (b *Board) SetGranularity(g view.Granularity) { b.granularity = g }

// Next moves forward one unit of the current granularity.
func (b *Board) Next() { b.reference = view.Step(b.granularity, b.reference, 1) }

// Prev moves back one unit of the current granularity.
func (b *Board) Prev() { b.reference = view.Step(b.granularity, b.reference, -1) }

// Today jumps back to the current date.
func (b *Board) Today() { b.reference = b.now() }

// Window computes the current view.
func (b *Board) Window() view.Window {
	return view.Compute(b.granularity, b.reference, b.Events(), b.now())
}

// Form exposes the editing session.
func (b *Board) Form() *session.Session { return b.form }

// OpenNew opens a blank form on the reference date.
func (b *Board) OpenNew() {
	b.form.OpenNew(event.DateOf(b.reference))
}

// OpenEdit opens the form on an existing event.
func (b *Board) OpenEdit(id string) error {
	e, ok := b.Event(id)
	if !ok {
		return ErrEventNotFound
	}
	b.form.Open(session.DraftFrom(e))
	return nil
}

// Cancel closes the form without changes.
func (b *Board) Cancel() { b.form.Cancel() }

// Save validates the form and, on success, appends a new event or replaces
// the edited one. On failure the form stays open and the event list is
// unchanged.
func (b *Board) Save() (event.Event, error) {
	e, err := b.form.Save()
	if err != nil {
		return event.Event{}, err
	}
	b.put(e)
	return e, nil
}

// Add validates and stores e directly, without going through the form.
func (b *Board) Add(d session.Draft) (event.Event, error) {
	s := session.New()
	s.Open(d)
	e, err := s.Save()
	if err != nil {
		return event.Event{}, err
	}
	b.put(e)
	return e, nil
}

// Overlay adds already-built events, such as ones read from a calendar file,
// as session events. Events with an id already on the board replace it.
func (b *Board) Overlay(events ...event.Event) {
	for _, e := range events {
		b.put(e.Clone())
	}
}

func (b *Board) put(e event.Event) {
	if i, ok := b.localIdx[e.ID]; ok {
		b.local[i] = e
		return
	}
	b.localIdx[e.ID] = len(b.local)
	b.local = append(b.local, e)
}
