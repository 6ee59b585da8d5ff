// Package show prints a calendar window for a story.
package show

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/plancal/pkg/board"
	"tableflip.dev/plancal/pkg/ical"
	"tableflip.dev/plancal/pkg/printers"
	"tableflip.dev/plancal/pkg/store"
	"tableflip.dev/plancal/pkg/view"
)

// Show renders one day, week or month.
type Show struct {
	Persistence store.Persistence
	Logger      *zap.Logger

	// StoryID selects the root record; zero shows samples and overlays only.
	StoryID     int
	Granularity view.Granularity
	// On is the reference date; the zero time means today.
	On      time.Time
	Samples bool
	// ICS files are read and overlaid as session events.
	ICS []string

	JSON   bool
	ShowID bool
	Color  string
	Out    io.Writer
	Now    func() time.Time
}

// Do computes and prints the window.
func (s *Show) Do(ctx context.Context) error {
	out := s.Out
	if out == nil {
		out = color.Output
	}
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	b := board.New(board.Options{Now: s.Now, Samples: s.Samples, Granularity: s.Granularity})
	missing := 0
	if s.StoryID != 0 {
		if s.Persistence == nil {
			return errors.New("can not show story, no persistence")
		}
		st, err := s.Persistence.Get(ctx, s.StoryID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Warn("story not found", zap.Int("story", s.StoryID))
			b.SetStory(nil)
			missing = s.StoryID
		case err != nil:
			return err
		default:
			b.SetStory(st)
		}
	}
	for _, name := range s.ICS {
		events, err := ical.DecodeFile(name, time.Local)
		if err != nil {
			return err
		}
		b.Overlay(events...)
		log.Debug("overlaid calendar file", zap.String("file", name), zap.Int("events", len(events)))
	}
	if !s.On.IsZero() {
		b.SetReference(s.On)
	}

	w := b.Window()
	if s.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(newWindowJSON(w, missing))
	}

	pp := printers.PrettyPrint{Out: out, Theme: printers.ThemeFor(s.Color, out), ShowID: s.ShowID}
	if st := b.Story(); st != nil {
		pp.NewLine()
		pp.Title(fmt.Sprintf("%d  %s", st.ID, st.Title))
	}
	if missing != 0 {
		pp.NewLine()
		pp.Note(notFound(missing))
	}
	pp.NewLine()
	pp.Window(w)
	return nil
}

type windowJSON struct {
	view.Window
	Title string `json:"title"`
	Found bool   `json:"found"`
	Note  string `json:"note,omitempty"`
}

func newWindowJSON(w view.Window, missing int) windowJSON {
	out := windowJSON{Window: w, Title: w.Title(), Found: missing == 0}
	if missing != 0 {
		out.Note = notFound(missing)
	}
	return out
}

func notFound(id int) string {
	return fmt.Sprintf("story %d not found", id)
}
