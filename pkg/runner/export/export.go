// Package export writes a story's calendar as an iCalendar file.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/plancal/pkg/board"
	"tableflip.dev/plancal/pkg/ical"
	"tableflip.dev/plancal/pkg/store"
)

// Export encodes the events of a story.
type Export struct {
	Persistence store.Persistence
	Logger      *zap.Logger

	StoryID int
	Samples bool
	// File is the output path; empty writes to Out.
	File     string
	Out      io.Writer
	Location *time.Location
	Now      func() time.Time
}

// Do writes the calendar.
func (e *Export) Do(ctx context.Context) error {
	if e.Persistence == nil {
		return errors.New("can not export, no persistence")
	}
	log := e.Logger
	if log == nil {
		log = zap.NewNop()
	}

	b := board.New(board.Options{Now: e.Now, Samples: e.Samples})
	if e.StoryID != 0 {
		st, err := e.Persistence.Get(ctx, e.StoryID)
		if err != nil {
			return err
		}
		b.SetStory(st)
	}

	var w io.Writer = e.Out
	if w == nil {
		w = color.Output
	}
	if e.File != "" {
		f, err := os.Create(e.File)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	events := b.Events()
	n, err := ical.Encode(w, events, e.Location)
	if err != nil {
		return err
	}
	if skipped := len(events) - n; skipped > 0 {
		log.Warn("skipped events with malformed dates", zap.Int("skipped", skipped))
	}
	if e.File != "" {
		out := e.Out
		if out == nil {
			out = color.Output
		}
		_, _ = fmt.Fprintf(out, "wrote %d events to %s\n", n, e.File)
	}
	return nil
}
