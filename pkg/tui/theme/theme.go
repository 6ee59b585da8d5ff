// Package theme centralizes Lip Gloss styles for the calendar UI.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/plancal/pkg/event"
)

// Theme holds every style the UI renders with.
type Theme struct {
	Footer   FooterTheme
	Calendar CalendarTheme
	Form     FormTheme
}

// FooterTheme groups styles used by the bottom status and help line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// CalendarTheme styles the day, week and month grids.
type CalendarTheme struct {
	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Empty    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Hour     lipgloss.Style
	Faint    lipgloss.Style

	Meeting  lipgloss.Style
	Task     lipgloss.Style
	Review   lipgloss.Style
	Deadline lipgloss.Style
}

// FormTheme styles the add/edit event overlay.
type FormTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Error   lipgloss.Style
}

// ForType returns the style events of type t are drawn with.
func (c CalendarTheme) ForType(t event.Type) lipgloss.Style {
	switch t {
	case event.Meeting:
		return c.Meeting
	case event.Task:
		return c.Task
	case event.Review:
		return c.Review
	case event.Deadline:
		return c.Deadline
	}
	panic(fmt.Sprintf("theme: unhandled event type %d", int(t)))
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	focus := lipgloss.Color("212")
	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Calendar: CalendarTheme{
			Title:    lipgloss.NewStyle().Bold(true),
			Tab:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1),
			TabOn:    lipgloss.NewStyle().Foreground(focus).Bold(true).Padding(0, 1),
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Cell:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Today:    lipgloss.NewStyle().Underline(true).Bold(true),
			Selected: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
			Hour:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Faint:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Meeting:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			Task:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Review:   lipgloss.NewStyle().Foreground(lipgloss.Color("177")),
			Deadline: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Form: FormTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(focus).
				Padding(1, 2),
			Title:   lipgloss.NewStyle().Bold(true),
			Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Focused: lipgloss.NewStyle().Foreground(focus).Bold(true),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
	}
}
