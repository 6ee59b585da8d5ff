// Package form renders the add/edit event overlay on top of a session.
package form

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/session"
	"tableflip.dev/plancal/pkg/tui/theme"
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldDate
	fieldStart
	fieldEnd
	fieldType
	fieldPriority
	fieldCount
)

var labels = [...]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldDate:        "Date",
	fieldStart:       "Start",
	fieldEnd:         "End",
	fieldType:        "Type",
	fieldPriority:    "Priority",
}

// SavedMsg is emitted after the session accepted the draft.
type SavedMsg struct {
	Event event.Event
}

// CancelledMsg is emitted when the form is dismissed.
type CancelledMsg struct{}

// Saver stores the session draft and reports the resulting event.
type Saver func() (event.Event, error)

// Model edits the draft of one session.
type Model struct {
	session *session.Session
	save    Saver
	theme   theme.FormTheme

	inputs [fieldType]textinput.Model
	focus  field
	width  int
	err    string
}

// New builds a form bound to s. save is called on enter.
func New(s *session.Session, save Saver, th theme.FormTheme) *Model {
	m := &Model{session: s, save: save, theme: th}
	placeholders := [...]string{
		fieldTitle:       "What is happening?",
		fieldDescription: "optional",
		fieldDate:        "YYYY-MM-DD",
		fieldStart:       "HH:MM",
		fieldEnd:         "HH:MM (optional)",
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		m.inputs[i] = in
	}
	m.SetWidth(60)
	return m
}

// Load copies the session draft into the inputs and focuses the title.
func (m *Model) Load() tea.Cmd {
	d := m.session.Draft()
	m.inputs[fieldTitle].SetValue(d.Title)
	m.inputs[fieldDescription].SetValue(d.Description)
	m.inputs[fieldDate].SetValue(d.Date)
	m.inputs[fieldStart].SetValue(d.StartTime)
	m.inputs[fieldEnd].SetValue(d.EndTime)
	m.err = ""
	m.focus = fieldTitle
	return m.updateInputFocus()
}

// SetWidth sizes the text inputs.
func (m *Model) SetWidth(width int) {
	if width < 30 {
		width = 30
	}
	m.width = width
	for i := range m.inputs {
		m.inputs[i].SetWidth(width - 18)
	}
}

// SetValue replaces the text of the named field. Used by scripted input.
func (m *Model) SetValue(name, value string) bool {
	for i := field(0); i < fieldType; i++ {
		if strings.EqualFold(labels[i], name) {
			m.inputs[i].SetValue(value)
			return true
		}
	}
	return false
}

// Err is the last validation message.
func (m *Model) Err() string { return m.err }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.Load()
}

// Update handles keys while the form is open.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % fieldCount
		return m, m.updateInputFocus()
	case "shift+tab", "up":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, m.updateInputFocus()
	case "ctrl+t":
		m.cycleType(1)
		return m, nil
	case "ctrl+p":
		m.cyclePriority(1)
		return m, nil
	case "left", "right":
		if m.focus == fieldType || m.focus == fieldPriority {
			delta := 1
			if key.String() == "left" {
				delta = -1
			}
			if m.focus == fieldType {
				m.cycleType(delta)
			} else {
				m.cyclePriority(delta)
			}
			return m, nil
		}
	case "enter":
		return m, m.submit()
	case "esc":
		m.session.Cancel()
		m.err = ""
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	if m.focus < fieldType {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) submit() tea.Cmd {
	if err := m.session.Update(func(d *session.Draft) {
		d.Title = m.inputs[fieldTitle].Value()
		d.Description = m.inputs[fieldDescription].Value()
		d.Date = m.inputs[fieldDate].Value()
		d.StartTime = m.inputs[fieldStart].Value()
		d.EndTime = m.inputs[fieldEnd].Value()
	}); err != nil {
		m.err = err.Error()
		return nil
	}
	e, err := m.save()
	if err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			m.err = verr.Error()
		} else {
			m.err = err.Error()
		}
		return nil
	}
	m.err = ""
	return func() tea.Msg { return SavedMsg{Event: e} }
}

func (m *Model) cycleType(delta int) {
	all := event.AllTypes()
	_ = m.session.Update(func(d *session.Draft) {
		d.Type = all[(indexOf(all, d.Type)+len(all)+delta)%len(all)]
	})
}

func (m *Model) cyclePriority(delta int) {
	all := event.AllPriorities()
	_ = m.session.Update(func(d *session.Draft) {
		d.Priority = all[(indexOf(all, d.Priority)+len(all)+delta)%len(all)]
	})
}

func indexOf[T comparable](all []T, v T) int {
	for i, x := range all {
		if x == v {
			return i
		}
	}
	return 0
}

func (m *Model) updateInputFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if field(i) == m.focus {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

// View renders the overlay.
func (m *Model) View() string {
	title := "New event"
	if d := m.session.Draft(); d.ID != "" {
		title = "Edit event"
	}
	lines := []string{m.theme.Title.Render(title), ""}

	d := m.session.Draft()
	for i := field(0); i < fieldCount; i++ {
		label := m.theme.Label
		if i == m.focus {
			label = m.theme.Focused
		}
		var value string
		switch i {
		case fieldType:
			value = "‹ " + d.Type.String() + " ›"
		case fieldPriority:
			value = "‹ " + d.Priority.String() + " ›"
		default:
			value = m.inputs[i].View()
		}
		lines = append(lines, label.Width(14).Render(labels[i])+value)
	}

	lines = append(lines, "")
	if m.err != "" {
		lines = append(lines, m.theme.Error.Render(m.err))
	} else {
		lines = append(lines, m.theme.Label.Render("enter save · esc cancel · tab next · ctrl+t type · ctrl+p priority"))
	}
	body := lipgloss.NewStyle().Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return m.theme.Frame.Render(body)
}
