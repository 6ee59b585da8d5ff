// Package ical converts calendar events to and from iCalendar documents.
package ical

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/google/uuid"

	"tableflip.dev/plancal/pkg/event"
)

const (
	productID = "-//tableflip.dev//plancal//EN"

	propFeature  = "X-PLANCAL-FEATURE"
	propAssignee = "X-PLANCAL-ASSIGNEE"
	propProgress = "X-PLANCAL-PROGRESS"
)

// Encode writes events as one VCALENDAR. Events with start and end times
// become timed VEVENTs in loc; the rest are all-day. Events whose date does
// not parse are skipped; the number written is returned.
func Encode(w io.Writer, events []event.Event, loc *time.Location) (int, error) {
	if loc == nil {
		loc = time.Local
	}
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, productID)

	stamp := time.Now().UTC()
	written := 0
	for _, e := range events {
		day, ok := e.Day()
		if !ok {
			continue
		}
		cal.Children = append(cal.Children, toComponent(e, day, loc, stamp))
		written++
	}

	if err := goical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("ical: encode: %w", err)
	}
	return written, nil
}

func toComponent(e event.Event, day event.Date, loc *time.Location, stamp time.Time) *goical.Component {
	ev := goical.NewEvent()
	ev.Props.SetText(goical.PropUID, e.ID)
	ev.Props.SetDateTime(goical.PropDateTimeStamp, stamp)
	ev.Props.SetText(goical.PropSummary, e.Title)
	if e.Description != "" {
		ev.Props.SetText(goical.PropDescription, e.Description)
	}
	ev.Props.SetText(goical.PropCategories, e.Type.String())
	ev.Props.SetText(goical.PropPriority, strconv.Itoa(priorityNumber(e.Priority)))

	if e.StartTime != nil {
		ev.Props.SetDateTime(goical.PropDateTimeStart, e.StartTime.On(day, loc).UTC())
		end := e.StartTime.On(day, loc).Add(time.Hour)
		if e.EndTime != nil {
			end = e.EndTime.On(day, loc)
		}
		ev.Props.SetDateTime(goical.PropDateTimeEnd, end.UTC())
	} else {
		ev.Props.SetDate(goical.PropDateTimeStart, day.Time(loc))
		ev.Props.SetDate(goical.PropDateTimeEnd, day.AddDays(1).Time(loc))
	}

	if e.Feature != "" {
		ev.Props.SetText(propFeature, e.Feature)
	}
	if e.Assignee != "" {
		ev.Props.SetText(propAssignee, e.Assignee)
	}
	if e.Progress != 0 {
		ev.Props.SetText(propProgress, strconv.Itoa(e.Progress))
	}
	for _, a := range e.Attendees {
		p := goical.NewProp(goical.PropAttendee)
		p.Params.Set(goical.ParamCommonName, a)
		p.Value = "mailto:" + a
		ev.Props.Add(p)
	}
	return ev.Component
}

// Decode reads every VEVENT from r. Times are converted to loc. Events
// without a start date are an error.
func Decode(r io.Reader, loc *time.Location) ([]event.Event, error) {
	if loc == nil {
		loc = time.Local
	}
	dec := goical.NewDecoder(r)
	var events []event.Event
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ical: decode: %w", err)
		}
		for _, comp := range cal.Children {
			if comp.Name != goical.CompEvent {
				continue
			}
			e, err := fromComponent(comp, loc)
			if err != nil {
				return nil, err
			}
			events = append(events, e)
		}
	}
	return events, nil
}

// DecodeFile reads the events of an .ics file.
func DecodeFile(name string, loc *time.Location) ([]event.Event, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("ical: %w", err)
	}
	defer f.Close()
	return Decode(f, loc)
}

func fromComponent(comp *goical.Component, loc *time.Location) (event.Event, error) {
	e := event.Event{
		Type:     event.Meeting,
		Priority: event.Medium,
	}
	e.ID = text(comp, goical.PropUID)
	if e.ID == "" {
		e.ID = "ics-" + uuid.NewString()
	}
	e.Title = text(comp, goical.PropSummary)
	e.Description = text(comp, goical.PropDescription)

	if cat := text(comp, goical.PropCategories); cat != "" {
		// only the first category carries the type
		if t, err := event.ParseType(strings.Split(cat, ",")[0]); err == nil {
			e.Type = t
		}
	}
	if p := text(comp, goical.PropPriority); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			e.Priority = priorityFromNumber(n)
		}
	}

	start := comp.Props.Get(goical.PropDateTimeStart)
	if start == nil {
		return event.Event{}, fmt.Errorf("ical: event %q has no DTSTART", e.ID)
	}
	st, err := start.DateTime(loc)
	if err != nil {
		return event.Event{}, fmt.Errorf("ical: event %q: %w", e.ID, err)
	}
	st = st.In(loc)
	e.Date = event.DateOf(st).String()
	if start.ValueType() != goical.ValueDate {
		e.StartTime = &event.Clock{Hour: st.Hour(), Minute: st.Minute()}
		if end := comp.Props.Get(goical.PropDateTimeEnd); end != nil {
			if et, err := end.DateTime(loc); err == nil {
				et = et.In(loc)
				e.EndTime = &event.Clock{Hour: et.Hour(), Minute: et.Minute()}
			}
		}
	}

	e.Feature = text(comp, propFeature)
	e.Assignee = text(comp, propAssignee)
	if p := text(comp, propProgress); p != "" {
		e.Progress, _ = strconv.Atoi(p)
	}
	for _, a := range comp.Props.Values(goical.PropAttendee) {
		name := a.Params.Get(goical.ParamCommonName)
		if name == "" {
			name = strings.TrimPrefix(a.Value, "mailto:")
		}
		e.Attendees = append(e.Attendees, name)
	}
	return e, nil
}

func text(comp *goical.Component, name string) string {
	prop := comp.Props.Get(name)
	if prop == nil {
		return ""
	}
	v, err := prop.Text()
	if err != nil {
		return prop.Value
	}
	return v
}

// priorityNumber maps to the RFC 5545 scale: 1 highest, 9 lowest.
func priorityNumber(p event.Priority) int {
	switch p {
	case event.High:
		return 1
	case event.Medium:
		return 5
	case event.Low:
		return 9
	}
	panic(fmt.Sprintf("ical: unhandled priority %d", int(p)))
}

func priorityFromNumber(n int) event.Priority {
	switch {
	case n >= 1 && n <= 4:
		return event.High
	case n >= 6:
		return event.Low
	default:
		return event.Medium
	}
}
