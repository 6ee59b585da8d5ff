// Package teaui hosts the Bubble Tea program for the plancal calendar.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/plancal/pkg/board"
	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/store"
	"tableflip.dev/plancal/pkg/story"
	"tableflip.dev/plancal/pkg/tui/components/calendar"
	"tableflip.dev/plancal/pkg/tui/components/form"
	"tableflip.dev/plancal/pkg/tui/components/help"
	"tableflip.dev/plancal/pkg/tui/theme"
	"tableflip.dev/plancal/pkg/view"
)

const helpLine = "d/w/m view · h/l move · t today · j/k select · a add · e edit · ? help · q quit"

// Options wires the model to its collaborators.
type Options struct {
	Board *board.Board
	// Persistence is optional; without it the board keeps whatever story
	// it was given.
	Persistence store.Persistence
	StoryID     int
	Logger      *zap.Logger
	// Theme defaults to theme.Default().
	Theme *theme.Theme
}

// Model is the root calendar program.
type Model struct {
	ctx     context.Context
	board   *board.Board
	store   store.Persistence
	storyID int
	log     *zap.Logger
	theme   theme.Theme

	form *form.Model
	// help is non-nil while the overlay is shown.
	help *help.Model

	width    int
	height   int
	selected int
	status   string
	isErr    bool

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds the root model.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	b := opts.Board
	if b == nil {
		b = board.New(board.Options{Samples: true, Granularity: view.Month})
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	m := &Model{
		ctx:     ctx,
		board:   b,
		store:   opts.Persistence,
		storyID: opts.StoryID,
		log:     log.Named("ui"),
		theme:   th,
		width:   100,
		height:  30,
	}
	m.form = form.New(b.Form(), b.Save, m.theme.Form)
	return m
}

// Run launches the interactive program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type storyLoadedMsg struct {
	story *story.Story
	err   error
}

func (m *Model) loadStory() tea.Cmd {
	if m.store == nil || m.storyID == 0 {
		return nil
	}
	p, id, ctx := m.store, m.storyID, m.ctx
	return func() tea.Msg {
		s, err := p.Get(ctx, id)
		return storyLoadedMsg{story: s, err: err}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadStory(), startWatchCmd(m.ctx, m.store))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetWidth(min(msg.Width-8, 72))
		if m.help != nil {
			m.help.SetSize(m.helpSize())
		}
	case storyLoadedMsg:
		m.applyStory(msg)
	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn("watch failed", zap.Error(msg.err))
			m.setError("watch: " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = appendCmd(cmds, m.waitForWatch())
	case watchEventMsg:
		if msg.event.Type == store.EventInvalidated || msg.event.StoryID == m.storyID {
			cmds = appendCmd(cmds, m.loadStory())
		}
		cmds = appendCmd(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case form.SavedMsg:
		m.setStatus(fmt.Sprintf("Saved %q on %s", msg.Event.Title, msg.Event.Date))
		if d, ok := msg.Event.Day(); ok {
			m.board.SetReference(d.Time(m.board.Reference().Location()))
		}
		m.selectID(msg.Event.ID)
	case form.CancelledMsg:
		m.setStatus("Cancelled")
	case tea.KeyPressMsg:
		if m.help != nil {
			switch msg.String() {
			case "?", "esc", "q":
				m.help = nil
			default:
				_, cmd := m.help.Update(msg)
				cmds = appendCmd(cmds, cmd)
			}
			break
		}
		if m.board.Form().IsOpen() {
			_, cmd := m.form.Update(msg)
			cmds = appendCmd(cmds, cmd)
			break
		}
		cmds = appendCmd(cmds, m.handleKey(msg))
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) applyStory(msg storyLoadedMsg) {
	if msg.err != nil {
		m.board.SetStory(nil)
		if errors.Is(msg.err, store.ErrNotFound) {
			m.setError(fmt.Sprintf("story %d not found", m.storyID))
			return
		}
		m.log.Warn("load story", zap.Int("id", m.storyID), zap.Error(msg.err))
		m.setError(msg.err.Error())
		return
	}
	m.board.SetStory(msg.story)
	m.setStatus(fmt.Sprintf("Loaded %q", msg.story.Title))
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopWatch()
		return tea.Quit
	case "d":
		m.board.SetGranularity(view.Day)
	case "w":
		m.board.SetGranularity(view.Week)
	case "m":
		m.board.SetGranularity(view.Month)
	case "l", "right", "n":
		m.board.Next()
		m.selected = 0
	case "h", "left", "p":
		m.board.Prev()
		m.selected = 0
	case "t":
		m.board.Today()
		m.selected = 0
	case "?":
		m.help = help.New(m.helpSize())
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "a":
		m.board.OpenNew()
		return m.form.Load()
	case "e", "enter":
		e, ok := m.selectedEvent()
		if !ok {
			m.setError("nothing to edit on " + event.DateOf(m.board.Reference()).String())
			return nil
		}
		if err := m.board.OpenEdit(e.ID); err != nil {
			m.setError(err.Error())
			return nil
		}
		return m.form.Load()
	}
	return nil
}

// onReference lists the events on the reference date in window order.
func (m *Model) onReference() []event.Event {
	return view.On(m.board.Events(), event.DateOf(m.board.Reference()))
}

func (m *Model) selectedEvent() (event.Event, bool) {
	list := m.onReference()
	if len(list) == 0 {
		return event.Event{}, false
	}
	if m.selected >= len(list) || m.selected < 0 {
		m.selected = 0
	}
	return list[m.selected], true
}

func (m *Model) moveSelection(delta int) {
	list := m.onReference()
	if len(list) == 0 {
		m.selected = 0
		return
	}
	m.selected = (m.selected + delta + len(list)) % len(list)
}

func (m *Model) selectID(id string) {
	for i, e := range m.onReference() {
		if e.ID == id {
			m.selected = i
			return
		}
	}
}

func (m *Model) helpSize() (int, int) {
	return min(m.width-4, 64), m.height - 6
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.isErr = true
}

// View implements tea.Model.
func (m *Model) View() string {
	w := m.board.Window()

	var tabs []string
	for _, g := range view.AllGranularities() {
		style := m.theme.Calendar.Tab
		if g == m.board.Granularity() {
			style = m.theme.Calendar.TabOn
		}
		tabs = append(tabs, style.Render(strings.ToUpper(g.String()[:1])+g.String()[1:]))
	}
	title := m.theme.Calendar.Title.Render(w.Title())
	if s := m.board.Story(); s != nil {
		title += m.theme.Calendar.Faint.Render("  " + s.Title)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "   ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	selectedID := ""
	if e, ok := m.selectedEvent(); ok {
		selectedID = e.ID
	}
	body := calendar.Render(w, calendar.Options{
		Width:      m.width,
		Height:     m.height - 4,
		SelectedID: selectedID,
		Theme:      m.theme.Calendar,
	})
	switch {
	case m.help != nil:
		body = lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, m.help.View())
	case m.board.Form().IsOpen():
		body = lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, m.form.View())
	}

	status := m.theme.Footer.Status.Render(m.status)
	if m.isErr {
		status = m.theme.Footer.Error.Render(m.status)
	}
	footer := lipgloss.JoinVertical(lipgloss.Left, status, m.theme.Footer.Help.Render(helpLine))

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}

func appendCmd(cmds []tea.Cmd, cmd tea.Cmd) []tea.Cmd {
	if cmd == nil {
		return cmds
	}
	return append(cmds, cmd)
}
