package printers

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/plancal/pkg/view"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Window prints w in the layout for its granularity.
func (pp *PrettyPrint) Window(w view.Window) {
	switch w.Granularity {
	case view.Day:
		pp.Day(w)
	case view.Week:
		pp.Week(w)
	case view.Month:
		pp.Month(w)
	default:
		panic(fmt.Sprintf("printers: unhandled granularity %d", int(w.Granularity)))
	}
}

// Day prints the hours that have events, followed by unscheduled events.
// When nothing is scheduled the working hours are shown empty.
func (pp *PrettyPrint) Day(w view.Window) {
	pp.TitleWithCount(w.Title(), len(w.Events()))

	busy := false
	for _, s := range w.Slots {
		if len(s.Events) > 0 {
			busy = true
			break
		}
	}

	hour := pp.Theme.busy()
	idle := pp.Theme.faint()
	for _, s := range w.Slots {
		label := fmt.Sprintf("%02d:00 ", s.Hour)
		if len(s.Events) == 0 {
			if !busy && s.Hour >= 8 && s.Hour <= 18 {
				if pp.ShowID {
					_, _ = fmt.Fprint(pp.Out, spacing)
				}
				_, _ = idle.Fprintln(pp.Out, label)
			}
			continue
		}
		for i, e := range s.Events {
			prefix := strings.Repeat(" ", len(label))
			if i == 0 {
				prefix = hour.Sprint(label)
			}
			pp.Event(prefix, e)
		}
	}

	if len(w.Unscheduled) > 0 {
		pp.NewLine()
		_, _ = pp.Theme.italic().Fprintln(pp.Out, "Unscheduled")
		for _, e := range w.Unscheduled {
			pp.Event("", e)
		}
	}
	pp.NewLine()
}

// Week prints each of the seven days with its events.
func (pp *PrettyPrint) Week(w view.Window) {
	pp.TitleWithCount(w.Title(), len(w.Events()))
	for _, c := range w.Cells {
		label := c.Date.Time(time.UTC).Format("Mon Jan 2")
		pr := pp.Theme.plain()
		if len(c.Events) > 0 {
			pr = pp.Theme.busy()
		}
		if c.Today {
			pr = pp.Theme.today()
		}
		if pp.ShowID {
			_, _ = fmt.Fprint(pp.Out, spacing)
		}
		_, _ = pr.Fprintln(pp.Out, label)
		for _, e := range c.Events {
			pp.Event("  ", e)
		}
	}
	pp.NewLine()
}

// Month prints a grid of the month, then an agenda of the days that have
// events.
func (pp *PrettyPrint) Month(w view.Window) {
	tf := pp.Theme.italic()
	m := w.Title()
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.Out, "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = pp.Theme.faint().Fprintln(pp.Out, "Su Mo Tu We Th Fr Sa")

	l1 := pp.Theme.faint()
	l2 := pp.Theme.busy()
	td := pp.Theme.today()
	for _, row := range w.Rows() {
		for _, c := range row {
			switch {
			case c.Empty:
				_, _ = fmt.Fprint(pp.Out, "   ")
			case c.Today:
				_, _ = td.Fprintf(pp.Out, "%2d", c.Date.Day)
				_, _ = fmt.Fprint(pp.Out, " ")
			case len(c.Events) > 0:
				_, _ = l2.Fprintf(pp.Out, "%2d ", c.Date.Day)
			default:
				_, _ = l1.Fprintf(pp.Out, "%2d ", c.Date.Day)
			}
		}
		_, _ = fmt.Fprint(pp.Out, "\n")
	}
	pp.NewLine()

	for _, c := range w.Cells {
		if c.Empty || len(c.Events) == 0 {
			continue
		}
		label := c.Date.Time(time.UTC).Format("02 Mon")
		pr := pp.Theme.plain()
		if c.Today {
			pr = pp.Theme.today()
		}
		if pp.ShowID {
			_, _ = fmt.Fprint(pp.Out, spacing)
		}
		_, _ = pr.Fprintln(pp.Out, label)
		for _, e := range c.Events {
			pp.Event("  ", e)
		}
	}
	pp.NewLine()
}
