package view

import (
	"time"

	"tableflip.dev/plancal/pkg/event"
)

// Step moves ref by delta units of g: days, weeks of seven days, or calendar
// months. A month step keeps the day of month when it exists in the target
// month and clamps to its last day otherwise, so stepping back and forward
// always lands in the starting month.
func Step(g Granularity, ref time.Time, delta int) time.Time {
	switch g {
	case Day:
		return ref.AddDate(0, 0, delta)
	case Week:
		return ref.AddDate(0, 0, 7*delta)
	case Month:
		return addMonths(ref, delta)
	}
	return ref
}

func addMonths(ref time.Time, delta int) time.Time {
	y, m, d := ref.Date()
	first := time.Date(y, m+time.Month(delta), 1, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
	if last := DaysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DaysIn returns the number of days in then's month.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay returns the weekday of the first day of then's month.
func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// WeekStart returns the Sunday on or before d.
func WeekStart(d event.Date) event.Date {
	return d.AddDays(-int(d.Weekday()))
}

// Bucket groups events by ISO date. Events with unparsable dates are dropped.
func Bucket(events []event.Event) map[string][]event.Event {
	out := make(map[string][]event.Event)
	for _, e := range events {
		d, ok := e.Day()
		if !ok {
			continue
		}
		key := d.String()
		out[key] = append(out[key], e)
	}
	return out
}

// On returns the events dated on d, in input order.
func On(events []event.Event, d event.Date) []event.Event {
	var out []event.Event
	for _, e := range events {
		if ed, ok := e.Day(); ok && ed.Equal(d) {
			out = append(out, e)
		}
	}
	return out
}
