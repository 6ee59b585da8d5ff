package teaui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/plancal/pkg/board"
	"tableflip.dev/plancal/pkg/store"
	"tableflip.dev/plancal/pkg/story"
	"tableflip.dev/plancal/pkg/tui/components/form"
	"tableflip.dev/plancal/pkg/view"
)

var fixedNow = time.Date(2025, time.July, 16, 10, 0, 0, 0, time.Local)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func press(s string) tea.KeyPressMsg {
	r := []rune(s)
	return tea.KeyPressMsg{Code: r[0], Text: s}
}

// drive runs cmd and feeds the resulting message back into the model,
// following batches one level deep.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drive(t, m, c)
		}
		return
	}
	switch msg.(type) {
	case form.SavedMsg, form.CancelledMsg, storyLoadedMsg:
		_, next := m.Update(msg)
		drive(t, m, next)
	}
}

func newModel(t *testing.T, p store.Persistence) *Model {
	t.Helper()
	b := board.New(board.Options{Now: func() time.Time { return fixedNow }, Samples: true, Granularity: view.Month})
	m := New(context.Background(), Options{Board: b, Persistence: p, StoryID: 7})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m
}

func TestViewSwitchingAndNavigation(t *testing.T) {
	m := newModel(t, nil)

	m.Update(press("w"))
	if m.board.Granularity() != view.Week {
		t.Fatalf("expected week view, got %v", m.board.Granularity())
	}
	m.Update(press("l"))
	if got := m.board.Reference(); got.Day() != 23 {
		t.Fatalf("expected Jul 23 after next week, got %v", got)
	}
	m.Update(press("m"))
	m.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if got := m.board.Reference(); got.Month() != time.June {
		t.Fatalf("expected June after previous month, got %v", got)
	}
	m.Update(press("t"))
	if got := m.board.Reference(); !got.Equal(fixedNow) {
		t.Fatalf("expected today, got %v", got)
	}
	m.Update(press("d"))
	if !strings.Contains(stripANSIString(m.View()), "Wednesday, July 16, 2025") {
		t.Fatalf("day title missing:\n%s", stripANSIString(m.View()))
	}
}

func TestAddEventThroughForm(t *testing.T) {
	m := newModel(t, nil)
	before := len(m.board.Events())

	m.Update(press("a"))
	if !m.board.Form().IsOpen() {
		t.Fatalf("expected form to open")
	}

	// Empty title: rejected, form stays open, nothing added.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	drive(t, m, cmd)
	if !m.board.Form().IsOpen() {
		t.Fatalf("form should stay open after a rejected save")
	}
	if len(m.board.Events()) != before {
		t.Fatalf("rejected save changed the event list")
	}
	if !strings.Contains(m.form.Err(), "title") {
		t.Fatalf("expected title error, got %q", m.form.Err())
	}

	m.form.SetValue("title", "Demo")
	m.form.SetValue("start", "16:00")
	_, cmd = m.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	drive(t, m, cmd)
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	drive(t, m, cmd)

	if m.board.Form().IsOpen() {
		t.Fatalf("form should close after save: %s", m.form.Err())
	}
	events := m.board.Events()
	if len(events) != before+1 {
		t.Fatalf("expected one more event, got %d -> %d", before, len(events))
	}
	added := events[len(events)-1]
	if added.Title != "Demo" || added.Date != "2025-07-16" || added.Priority.String() != "Low" {
		t.Fatalf("unexpected event %+v", added)
	}
	if !strings.Contains(m.status, "Saved") {
		t.Fatalf("expected saved status, got %q", m.status)
	}
}

func TestEditAndCancel(t *testing.T) {
	m := newModel(t, nil)

	m.Update(press("e"))
	if !m.board.Form().IsOpen() {
		t.Fatalf("expected edit form for the standup sample")
	}
	if id := m.board.Form().Draft().ID; id != "sample-1" {
		t.Fatalf("expected to edit sample-1, got %q", id)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	drive(t, m, cmd)
	if m.board.Form().IsOpen() {
		t.Fatalf("escape should close the form")
	}
	if m.status != "Cancelled" {
		t.Fatalf("expected cancelled status, got %q", m.status)
	}
}

type memoryStore struct {
	stories map[int]*story.Story
}

func (s *memoryStore) List(context.Context) []*story.Story { return nil }

func (s *memoryStore) Get(_ context.Context, id int) (*story.Story, error) {
	if st, ok := s.stories[id]; ok {
		return st, nil
	}
	return nil, store.ErrNotFound
}

func (s *memoryStore) Store(st *story.Story) error {
	s.stories[st.ID] = st
	return nil
}

func (s *memoryStore) Delete(id int) error {
	delete(s.stories, id)
	return nil
}

func (s *memoryStore) Watch(context.Context) (<-chan store.Event, error) {
	return make(chan store.Event), nil
}

func TestLoadStoryAndReloadOnWatch(t *testing.T) {
	p := &memoryStore{stories: map[int]*story.Story{}}
	m := newModel(t, p)

	m.Update(m.loadStory()())
	if m.board.Found() || !m.isErr {
		t.Fatalf("expected not-found error state")
	}

	_ = p.Store(&story.Story{ID: 7, Title: "Launch", DueDate: "2025-07-20", Priority: "High"})
	_, cmd := m.Update(watchEventMsg{event: store.Event{Type: store.EventStoryChanged, StoryID: 7}})
	if cmd == nil {
		t.Fatalf("expected reload command for the watched story")
	}
	m.Update(m.loadStory()())
	if !m.board.Found() {
		t.Fatalf("expected story to load")
	}
	if _, ok := m.board.Event("story-7"); !ok {
		t.Fatalf("expected derived deadline event")
	}
	if !strings.Contains(stripANSIString(m.View()), "Launch") {
		t.Fatalf("story title missing from view")
	}

	_, cmd = m.Update(watchEventMsg{event: store.Event{Type: store.EventStoryChanged, StoryID: 99}})
	if cmd != nil {
		t.Fatalf("unrelated story change should not reload")
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, nil)
	_, cmd := m.Update(press("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newModel(t, nil)

	m.Update(press("?"))
	if m.help == nil {
		t.Fatalf("expected help overlay")
	}
	out := stripANSIString(m.View())
	if !strings.Contains(out, "toggle this help") {
		t.Fatalf("help content missing:\n%s", out)
	}

	// keys do not reach the calendar while help is shown
	m.Update(press("w"))
	if m.board.Granularity() != view.Month {
		t.Fatalf("help should swallow view keys")
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.help != nil {
		t.Fatalf("esc should close help")
	}
}
