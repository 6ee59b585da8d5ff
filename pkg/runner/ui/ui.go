// Package ui launches the interactive calendar.
package ui

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/plancal/pkg/board"
	"tableflip.dev/plancal/pkg/ical"
	"tableflip.dev/plancal/pkg/store"
	teaui "tableflip.dev/plancal/pkg/tui/app"
	"tableflip.dev/plancal/pkg/view"
)

// UI runs the Bubble Tea calendar over a story.
type UI struct {
	Persistence store.Persistence
	Logger      *zap.Logger

	StoryID     int
	Granularity view.Granularity
	On          time.Time
	Samples     bool
	ICS         []string
}

// Do blocks until the program exits.
func (u *UI) Do(ctx context.Context) error {
	b := board.New(board.Options{Samples: u.Samples, Granularity: u.Granularity})
	if !u.On.IsZero() {
		b.SetReference(u.On)
	}
	for _, name := range u.ICS {
		events, err := ical.DecodeFile(name, time.Local)
		if err != nil {
			return err
		}
		b.Overlay(events...)
	}
	return teaui.Run(ctx, teaui.Options{
		Board:       b,
		Persistence: u.Persistence,
		StoryID:     u.StoryID,
		Logger:      u.Logger,
	})
}
