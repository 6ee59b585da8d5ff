// Package help renders the key binding overlay of the calendar UI.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Binding is one documented key.
type Binding struct {
	Keys        string
	Description string
}

// Section groups bindings under a heading.
type Section struct {
	Title    string
	Bindings []Binding
}

// Sections lists the calendar key bindings.
func Sections() []Section {
	return []Section{
		{
			Title: "Views",
			Bindings: []Binding{
				{"d", "day view, one row per hour"},
				{"w", "week view, Sunday to Saturday"},
				{"m", "month view"},
			},
		},
		{
			Title: "Moving",
			Bindings: []Binding{
				{"l  right  n", "next day, week or month"},
				{"h  left  p", "previous day, week or month"},
				{"t", "back to today"},
				{"j  k", "select the next or previous event on the date"},
			},
		},
		{
			Title: "Events",
			Bindings: []Binding{
				{"a", "add an event on the selected date"},
				{"e  enter", "edit the selected event"},
				{"tab  shift+tab", "move between form fields"},
				{"ctrl+t  ctrl+p", "cycle event type or priority"},
				{"enter", "save the form"},
				{"esc", "close the form without saving"},
			},
		},
		{
			Title: "Program",
			Bindings: []Binding{
				{"?", "toggle this help"},
				{"q  ctrl+c", "quit"},
			},
		},
	}
}

// Model renders the bindings inside a bordered, scrollable viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int

	frame   lipgloss.Style
	heading lipgloss.Style
	key     lipgloss.Style
}

// New constructs a help overlay sized to the provided bounds.
func New(width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	m := &Model{
		viewport: vp,
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	}
	m.SetSize(width, height)
	return m
}

// Update forwards scrolling keys to the viewport.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the help inside a rounded frame.
func (m *Model) View() string {
	return m.frame.Width(m.width).Height(m.height).Render(m.viewport.View())
}

// SetSize configures the overlay dimensions and re-renders the content.
func (m *Model) SetSize(width, height int) {
	minWidth, minHeight := 32, 8
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	if m.width == width && m.height == height {
		return
	}

	m.width = width
	m.height = height

	innerWidth := max(width-m.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-m.frame.GetVerticalFrameSize(), 1)

	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)
	m.viewport.SetContent(m.render())
	m.viewport.SetYOffset(0)
}

func (m *Model) render() string {
	keyWidth := 0
	for _, s := range Sections() {
		for _, b := range s.Bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Keys))
		}
	}

	var sb strings.Builder
	for i, s := range Sections() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.heading.Render(s.Title))
		sb.WriteString("\n")
		for _, b := range s.Bindings {
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(b.Keys))
			sb.WriteString("  " + m.key.Render(b.Keys) + pad + "  " + b.Description + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
