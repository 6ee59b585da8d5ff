// Package mcp provides the Model Context Protocol server integration for plancal.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/plancal/pkg/board"
	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/glyph"
	"tableflip.dev/plancal/pkg/session"
	"tableflip.dev/plancal/pkg/store"
	"tableflip.dev/plancal/pkg/timeutil"
	"tableflip.dev/plancal/pkg/view"
)

// Service coordinates the calendar board shared by every MCP request. Events
// added through it live only as long as the server process.
type Service struct {
	Persistence store.Persistence
	Now         func() time.Time

	mu      sync.Mutex
	board   *board.Board
	storyID int
	missing int
}

// StorySummary describes a story record.
type StorySummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Features    int    `json:"features"`
}

// EventDTO is a transport-friendly projection of an event.
type EventDTO struct {
	event.Event
	TypeSymbol     string `json:"typeSymbol"`
	PrioritySymbol string `json:"prioritySymbol"`
}

// DayDTO is one day cell of a week or month window.
type DayDTO struct {
	Date     string     `json:"date"`
	Today    bool       `json:"today,omitempty"`
	Selected bool       `json:"selected,omitempty"`
	Events   []EventDTO `json:"events"`
}

// SlotDTO is one hour of a day window.
type SlotDTO struct {
	Hour   int        `json:"hour"`
	Events []EventDTO `json:"events"`
}

// WindowDTO is a computed calendar view.
type WindowDTO struct {
	Granularity string     `json:"granularity"`
	Title       string     `json:"title"`
	Reference   string     `json:"reference"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	StoryID     int        `json:"storyId,omitempty"`
	Found       bool       `json:"found"`
	Note        string     `json:"note,omitempty"`
	Lead        int        `json:"lead,omitempty"`
	Days        []DayDTO   `json:"days,omitempty"`
	Slots       []SlotDTO  `json:"slots,omitempty"`
	Unscheduled []EventDTO `json:"unscheduled,omitempty"`
}

// ViewOptions select what CalendarView shows. Zero values keep the current
// board state.
type ViewOptions struct {
	StoryID     int
	Granularity string
	On          string
}

// AddEventOptions captures the form fields of a new event.
type AddEventOptions struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Priority    string `json:"priority"`
}

// NewService builds a service around b, reading stories from p.
func NewService(p store.Persistence, b *board.Board) *Service {
	if b == nil {
		b = board.New(board.Options{Samples: true, Granularity: view.Month})
	}
	return &Service{Persistence: p, Now: time.Now, board: b}
}

// ListStories returns summaries for every stored story.
func (s *Service) ListStories(ctx context.Context) ([]StorySummary, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	stories := s.Persistence.List(ctx)
	out := make([]StorySummary, 0, len(stories))
	for _, st := range stories {
		out = append(out, StorySummary{
			ID:          st.ID,
			Title:       st.Title,
			Description: st.Description,
			DueDate:     st.DueDate,
			Priority:    st.Priority,
			Features:    len(st.Features),
		})
	}
	return out, nil
}

// CalendarView optionally switches story, granularity and date, then returns
// the current window. A story that does not exist clears the board and is
// reported through Found and Note instead of an error.
func (s *Service) CalendarView(ctx context.Context, opts ViewOptions) (*WindowDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.StoryID != 0 {
		if err := s.selectStory(ctx, opts.StoryID); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(opts.Granularity) != "" {
		g, err := view.ParseGranularity(opts.Granularity)
		if err != nil {
			return nil, err
		}
		s.board.SetGranularity(g)
	}
	if strings.TrimSpace(opts.On) != "" {
		on, err := timeutil.ParseOn(opts.On, s.Now())
		if err != nil {
			return nil, err
		}
		s.board.SetReference(on)
	}
	return s.window(), nil
}

// Navigate moves the board: next, prev or today.
func (s *Service) Navigate(_ context.Context, direction string) (*WindowDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "next", "forward":
		s.board.Next()
	case "prev", "previous", "back":
		s.board.Prev()
	case "today":
		s.board.Today()
	default:
		return nil, fmt.Errorf("unknown direction %q (expected next, prev or today)", direction)
	}
	return s.window(), nil
}

// AddEvent validates and adds a session-local event.
func (s *Service) AddEvent(_ context.Context, opts AddEventOptions) (*EventDTO, error) {
	d := session.Draft{
		Title:       opts.Title,
		Description: opts.Description,
		Date:        opts.Date,
		StartTime:   opts.StartTime,
		EndTime:     opts.EndTime,
		Type:        event.Meeting,
		Priority:    event.Medium,
	}
	if strings.TrimSpace(opts.Type) != "" {
		t, err := event.ParseType(opts.Type)
		if err != nil {
			return nil, err
		}
		d.Type = t
	}
	if strings.TrimSpace(opts.Priority) != "" {
		p, err := event.ParsePriority(opts.Priority)
		if err != nil {
			return nil, err
		}
		d.Priority = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(d.Date) == "" {
		d.Date = event.DateOf(s.board.Reference()).String()
	}
	e, err := s.board.Add(d)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// ListEvents returns every event on the board, or those on date when set.
func (s *Service) ListEvents(_ context.Context, date string) ([]EventDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.board.Events()
	if strings.TrimSpace(date) != "" {
		on, err := timeutil.ParseOn(date, s.Now())
		if err != nil {
			return nil, err
		}
		events = view.On(events, event.DateOf(on))
	}
	return toDTOs(events), nil
}

// EventByID returns a single event.
func (s *Service) EventByID(_ context.Context, id string) (*EventDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.board.Event(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", board.ErrEventNotFound, id)
	}
	dto := toDTO(e)
	return &dto, nil
}

func (s *Service) selectStory(ctx context.Context, id int) error {
	if s.Persistence == nil {
		return errors.New("persistence is not configured")
	}
	st, err := s.Persistence.Get(ctx, id)
	if err != nil {
		s.board.SetStory(nil)
		s.storyID = 0
		if errors.Is(err, store.ErrNotFound) {
			s.missing = id
			return nil
		}
		s.missing = 0
		return err
	}
	s.board.SetStory(st)
	s.storyID = id
	s.missing = 0
	return nil
}

func (s *Service) window() *WindowDTO {
	w := s.board.Window()
	dto := &WindowDTO{
		Granularity: w.Granularity.String(),
		Title:       w.Title(),
		Reference:   w.Reference.String(),
		Start:       w.Start.String(),
		End:         w.End.String(),
		StoryID:     s.storyID,
		Found:       s.missing == 0,
		Lead:        w.Lead,
		Unscheduled: toDTOs(w.Unscheduled),
	}
	if s.missing != 0 {
		dto.Note = fmt.Sprintf("story %d not found", s.missing)
	}
	for _, slot := range w.Slots {
		if len(slot.Events) == 0 {
			continue
		}
		dto.Slots = append(dto.Slots, SlotDTO{Hour: slot.Hour, Events: toDTOs(slot.Events)})
	}
	for _, c := range w.Cells {
		if c.Empty {
			continue
		}
		dto.Days = append(dto.Days, DayDTO{
			Date:     c.Date.String(),
			Today:    c.Today,
			Selected: c.Selected,
			Events:   toDTOs(c.Events),
		})
	}
	return dto
}

func toDTO(e event.Event) EventDTO {
	return EventDTO{
		Event:          e,
		TypeSymbol:     glyph.ForType(e.Type).Symbol,
		PrioritySymbol: glyph.ForPriority(e.Priority).Symbol,
	}
}

func toDTOs(events []event.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toDTO(e))
	}
	return out
}
