// Package view computes day, week and month windows over calendar events.
package view

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/plancal/pkg/event"
)

// Granularity selects the view mode and the navigation step.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
)

// AllGranularities lists the supported view modes.
func AllGranularities() []Granularity {
	return []Granularity{Day, Week, Month}
}

func (g Granularity) String() string {
	switch g {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	}
	return fmt.Sprintf("granularity(%d)", int(g))
}

// ParseGranularity converts "day", "week" or "month".
func ParseGranularity(raw string) (Granularity, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, g := range AllGranularities() {
		if g.String() == name {
			return g, nil
		}
	}
	return Month, fmt.Errorf("view: unknown granularity %q", raw)
}

// MarshalText implements encoding.TextMarshaler.
func (g Granularity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// HoursPerDay is the number of slots in a day view.
const HoursPerDay = 24

// Slot is one hour of a day view.
type Slot struct {
	Hour   int           `json:"hour"`
	Events []event.Event `json:"events,omitempty"`
}

// Cell is one day of a week or month view. Empty cells pad the first week of
// a month and carry no date.
type Cell struct {
	Date     event.Date    `json:"date"`
	Empty    bool          `json:"empty,omitempty"`
	Today    bool          `json:"today,omitempty"`
	Selected bool          `json:"selected,omitempty"`
	Events   []event.Event `json:"events,omitempty"`
}

// Window is the computed result for one granularity and reference date.
type Window struct {
	Granularity Granularity `json:"granularity"`
	Reference   event.Date  `json:"reference"`
	Start       event.Date  `json:"start"`
	End         event.Date  `json:"end"`

	// Slots is set for day views.
	Slots []Slot `json:"slots,omitempty"`
	// Unscheduled holds day-view events without a start time.
	Unscheduled []event.Event `json:"unscheduled,omitempty"`
	// Cells is set for week and month views.
	Cells []Cell `json:"cells,omitempty"`
	// Lead is the number of leading empty cells in a month view.
	Lead int `json:"lead,omitempty"`
}

// Compute builds the window for g around ref. now decides which cell is today.
func Compute(g Granularity, ref time.Time, events []event.Event, now time.Time) Window {
	switch g {
	case Day:
		return DayWindow(ref, events, now)
	case Week:
		return WeekWindow(ref, events, now)
	case Month:
		return MonthWindow(ref, events, now)
	}
	panic(fmt.Sprintf("view: unhandled granularity %d", int(g)))
}

// DayWindow lists the 24 hour slots of ref with its events placed by start hour.
func DayWindow(ref time.Time, events []event.Event, now time.Time) Window {
	day := event.DateOf(ref)
	w := Window{
		Granularity: Day,
		Reference:   day,
		Start:       day,
		End:         day,
		Slots:       make([]Slot, HoursPerDay),
	}
	for h := range w.Slots {
		w.Slots[h].Hour = h
	}
	for _, e := range On(events, day) {
		if h, ok := e.Hour(); ok && h >= 0 && h < HoursPerDay {
			w.Slots[h].Events = append(w.Slots[h].Events, e)
			continue
		}
		w.Unscheduled = append(w.Unscheduled, e)
	}
	return w
}

// WeekWindow covers the seven days starting on the Sunday on or before ref.
func WeekWindow(ref time.Time, events []event.Event, now time.Time) Window {
	day := event.DateOf(ref)
	start := WeekStart(day)
	buckets := Bucket(events)
	today := event.DateOf(now)

	w := Window{
		Granularity: Week,
		Reference:   day,
		Start:       start,
		End:         start.AddDays(6),
		Cells:       make([]Cell, 0, 7),
	}
	for i := 0; i < 7; i++ {
		d := start.AddDays(i)
		w.Cells = append(w.Cells, Cell{
			Date:     d,
			Today:    d.Equal(today),
			Selected: d.Equal(day),
			Events:   buckets[d.String()],
		})
	}
	return w
}

// MonthWindow covers every day of ref's month, left-padded so day 1 sits in
// its weekday column (Sunday is column 0).
func MonthWindow(ref time.Time, events []event.Event, now time.Time) Window {
	day := event.DateOf(ref)
	first := event.Date{Year: day.Year, Month: day.Month, Day: 1}
	days := DaysIn(ref)
	lead := int(first.Weekday())
	buckets := Bucket(events)
	today := event.DateOf(now)

	w := Window{
		Granularity: Month,
		Reference:   day,
		Start:       first,
		End:         first.AddDays(days - 1),
		Lead:        lead,
		Cells:       make([]Cell, 0, lead+days),
	}
	for i := 0; i < lead; i++ {
		w.Cells = append(w.Cells, Cell{Empty: true})
	}
	for i := 0; i < days; i++ {
		d := first.AddDays(i)
		w.Cells = append(w.Cells, Cell{
			Date:     d,
			Today:    d.Equal(today),
			Selected: d.Equal(day),
			Events:   buckets[d.String()],
		})
	}
	return w
}

// Rows splits cells into weeks of seven; the last row may be short.
func (w Window) Rows() [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(w.Cells); i += 7 {
		end := i + 7
		if end > len(w.Cells) {
			end = len(w.Cells)
		}
		rows = append(rows, w.Cells[i:end])
	}
	return rows
}

// Events returns every event inside the window in display order.
func (w Window) Events() []event.Event {
	var out []event.Event
	for _, s := range w.Slots {
		out = append(out, s.Events...)
	}
	out = append(out, w.Unscheduled...)
	for _, c := range w.Cells {
		out = append(out, c.Events...)
	}
	return out
}

// Title is a human label such as "July 2025" or "Jul 13 - Jul 19, 2025".
func (w Window) Title() string {
	switch w.Granularity {
	case Day:
		return w.Reference.Time(time.UTC).Format("Monday, January 2, 2006")
	case Week:
		return fmt.Sprintf("%s - %s",
			w.Start.Time(time.UTC).Format("Jan 2"),
			w.End.Time(time.UTC).Format("Jan 2, 2006"))
	case Month:
		return w.Reference.Time(time.UTC).Format("January 2006")
	}
	return ""
}
