// Package calendar renders computed view windows as terminal grids.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/glyph"
	"tableflip.dev/plancal/pkg/tui/theme"
	"tableflip.dev/plancal/pkg/view"
)

// Options controls the size and highlighting of a render.
type Options struct {
	Width  int
	Height int
	// SelectedID highlights one event.
	SelectedID string
	Theme      theme.CalendarTheme
}

func (o Options) normalized() Options {
	if o.Width < 28 {
		o.Width = 28
	}
	if o.Height < 8 {
		o.Height = 8
	}
	return o
}

// Render draws w using the layout for its granularity.
func Render(w view.Window, opts Options) string {
	opts = opts.normalized()
	switch w.Granularity {
	case view.Day:
		return renderDay(w, opts)
	case view.Week:
		return renderWeek(w, opts)
	case view.Month:
		return renderMonth(w, opts)
	}
	panic(fmt.Sprintf("calendar: unhandled granularity %d", int(w.Granularity)))
}

// Label is the one-line text for an event: priority, type symbol, title.
func Label(e event.Event) string {
	return fmt.Sprintf("%s%s %s", glyph.ForPriority(e.Priority).Symbol, glyph.ForType(e.Type).Symbol, e.Title)
}

func renderEvent(e event.Event, width int, opts Options) string {
	text := truncate.StringWithTail(Label(e), uint(max(width, 1)), "…")
	style := opts.Theme.ForType(e.Type)
	if e.ID != "" && e.ID == opts.SelectedID {
		style = opts.Theme.Selected
	}
	return style.Render(text)
}

func renderMonth(w view.Window, opts Options) string {
	cw := opts.Width / 7
	rows := w.Rows()
	rowHeight := (opts.Height - 1) / max(len(rows), 1)
	if rowHeight < 2 {
		rowHeight = 2
	}

	var header []string
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		header = append(header, opts.Theme.Header.Width(cw).Render(d))
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for _, row := range rows {
		cells := make([]string, 0, 7)
		for _, c := range row {
			cells = append(cells, renderCell(c, fmt.Sprintf("%2d", c.Date.Day), cw, rowHeight, opts))
		}
		for len(cells) < 7 {
			cells = append(cells, renderCell(view.Cell{Empty: true}, "", cw, rowHeight, opts))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

func renderWeek(w view.Window, opts Options) string {
	cw := opts.Width / 7
	cells := make([]string, 0, 7)
	for _, c := range w.Cells {
		label := c.Date.Time(time.UTC).Format("Mon 2")
		cells = append(cells, renderCell(c, label, cw, opts.Height, opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderCell(c view.Cell, label string, width, height int, opts Options) string {
	box := lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height)
	if c.Empty {
		return box.Render("")
	}

	head := opts.Theme.Cell
	if len(c.Events) == 0 {
		head = opts.Theme.Empty
	}
	if c.Today {
		head = head.Inherit(opts.Theme.Today)
	}
	if c.Selected {
		head = opts.Theme.Selected
	}
	lines := []string{head.Render(label)}

	room := height - 1
	for i, e := range c.Events {
		if i == room-1 && len(c.Events) > room {
			lines = append(lines, opts.Theme.Faint.Render(fmt.Sprintf("+%d more", len(c.Events)-i)))
			break
		}
		if i >= room {
			break
		}
		lines = append(lines, renderEvent(e, width-1, opts))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func renderDay(w view.Window, opts Options) string {
	var lines []string
	first := -1
	for _, s := range w.Slots {
		hour := opts.Theme.Hour.Render(fmt.Sprintf("%02d:00 │", s.Hour))
		if len(s.Events) == 0 {
			lines = append(lines, hour)
			continue
		}
		if first < 0 {
			first = len(lines)
		}
		for i, e := range s.Events {
			prefix := hour
			if i > 0 {
				prefix = opts.Theme.Hour.Render("      │")
			}
			text := renderEvent(e, opts.Width-10, opts)
			if tr := e.TimeRange(); tr != "" {
				text += opts.Theme.Faint.Render("  " + tr)
			}
			lines = append(lines, prefix+" "+text)
		}
	}

	// Show the working day unless something earlier is booked.
	start := 8
	if first >= 0 && first < start {
		start = first
	}

	var tail []string
	if len(w.Unscheduled) > 0 {
		tail = append(tail, "", opts.Theme.Header.Render("Unscheduled"))
		for _, e := range w.Unscheduled {
			tail = append(tail, "  "+renderEvent(e, opts.Width-4, opts))
		}
	}

	room := opts.Height - len(tail)
	if room < 4 {
		room = 4
	}
	if start+room > len(lines) {
		start = max(len(lines)-room, 0)
	}
	end := min(start+room, len(lines))
	out := append([]string{}, lines[start:end]...)
	out = append(out, tail...)
	return strings.Join(out, "\n")
}
