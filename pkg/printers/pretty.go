// Package printers renders calendar windows, events and stories for the
// terminal.
package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/glyph"
	"tableflip.dev/plancal/pkg/story"
)

// PrettyPrint writes human-oriented output to Out.
type PrettyPrint struct {
	Out    io.Writer
	Theme  Theme
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("event-00000000-0000-0000-0000-000000000000  "))
)

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := pp.Theme.title()
	if pp.ShowID {
		_, _ = fmt.Fprint(pp.Out, spacing)
	}
	_, _ = t.Fprintln(pp.Out, title)
}

// Note prints a dimmed status line.
func (pp *PrettyPrint) Note(text string) {
	if pp.ShowID {
		_, _ = fmt.Fprint(pp.Out, spacing)
	}
	_, _ = pp.Theme.faint().Fprintln(pp.Out, text)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := pp.Theme.title()
	c := pp.Theme.faint()

	if pp.ShowID {
		_, _ = fmt.Fprint(pp.Out, spacing)
	}
	_, _ = t.Fprint(pp.Out, title)
	_, _ = c.Fprintf(pp.Out, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.Out, " event")
	default:
		_, _ = c.Fprintln(pp.Out, " events")
	}
}

// Events prints one line per event, or "none".
func (pp *PrettyPrint) Events(events ...event.Event) {
	if len(events) == 0 {
		f := pp.Theme.faint()
		if pp.ShowID {
			_, _ = fmt.Fprint(pp.Out, spacing)
		}
		_, _ = f.Fprint(pp.Out, " none\n\n")
		return
	}
	for _, e := range events {
		pp.Event("", e)
	}
	pp.NewLine()
}

// Event prints a single event line behind prefix.
func (pp *PrettyPrint) Event(prefix string, e event.Event) {
	if pp.ShowID {
		y := pp.Theme.id()
		_, _ = y.Fprint(pp.Out, e.ID)
		if pad := len(spacing) - len(e.ID); pad > 0 {
			_, _ = fmt.Fprint(pp.Out, strings.Repeat(" ", pad))
		} else {
			_, _ = fmt.Fprint(pp.Out, " ")
		}
	}
	_, _ = fmt.Fprint(pp.Out, prefix)
	_, _ = pp.Theme.ForType(e.Type).Fprintf(pp.Out, "%s %s %s",
		glyph.ForPriority(e.Priority).Symbol,
		glyph.ForType(e.Type).Symbol,
		e.Title)
	if tr := e.TimeRange(); tr != "" {
		_, _ = pp.Theme.faint().Fprintf(pp.Out, "  %s", tr)
	}
	if e.Assignee != "" {
		_, _ = pp.Theme.italic().Fprintf(pp.Out, "  @%s", e.Assignee)
	}
	_, _ = fmt.Fprintln(pp.Out, "")
}

// Stories prints a table of root records.
func (pp *PrettyPrint) Stories(stories ...*story.Story) {
	if len(stories) == 0 {
		_, _ = pp.Theme.faint().Fprint(pp.Out, " no stories\n\n")
		return
	}
	bold := pp.Theme.busy()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Due"), bold.Sprint("Priority"), bold.Sprint("Features"))
	for _, s := range stories {
		tbl.AddRow(strconv.Itoa(s.ID), s.Title, s.DueDate, s.Priority, strconv.Itoa(len(s.Features)))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// Story prints one root record with its features.
func (pp *PrettyPrint) Story(s *story.Story) {
	pp.Title(fmt.Sprintf("%d  %s", s.ID, s.Title))
	if s.Description != "" {
		_, _ = fmt.Fprintln(pp.Out, wordwrap.String(s.Description, 72))
	}
	_, _ = pp.Theme.faint().Fprintf(pp.Out, "due %s, priority %s\n\n", orDash(s.DueDate), orDash(s.Priority))
	if len(s.Features) == 0 {
		_, _ = pp.Theme.faint().Fprint(pp.Out, " no features\n\n")
		return
	}

	bold := pp.Theme.busy()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Feature"), bold.Sprint("Due"), bold.Sprint("Priority"), bold.Sprint("Assignee"), bold.Sprint("Progress"))
	for _, f := range s.Features {
		tbl.AddRow(strconv.Itoa(f.ID), f.Name, orDash(f.DueDate), orDash(f.Priority), orDash(f.Assignee), fmt.Sprintf("%d%%", f.Progress))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// Legend prints glyph tables for event types and priorities.
func (pp *PrettyPrint) Legend() {
	bold := pp.Theme.busy()
	for _, section := range []struct {
		name   string
		glyphs []glyph.Glyph
	}{
		{"Types", glyph.Types()},
		{"Priorities", glyph.Priorities()},
	} {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint(section.name), bold.Sprint("Key"), bold.Sprint("Meaning"))
		for _, g := range section.glyphs {
			tbl.AddRow(g.Symbol, g.Key, g.Meaning)
		}
		tbl.RightAlign(0)
		_, _ = fmt.Fprintln(pp.Out, tbl)
		pp.NewLine()
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
