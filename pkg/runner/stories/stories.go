// Package stories manages the stored story records.
package stories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/plancal/pkg/printers"
	"tableflip.dev/plancal/pkg/store"
	"tableflip.dev/plancal/pkg/story"
)

// Output is shared by every story runner.
type Output struct {
	JSON   bool
	ShowID bool
	Color  string
	Out    io.Writer
}

func (o Output) writer() io.Writer {
	if o.Out == nil {
		return color.Output
	}
	return o.Out
}

func (o Output) printer() *printers.PrettyPrint {
	out := o.writer()
	return &printers.PrettyPrint{Out: out, Theme: printers.ThemeFor(o.Color, out), ShowID: o.ShowID}
}

func (o Output) json(v any) error {
	enc := json.NewEncoder(o.writer())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List prints every stored story.
type List struct {
	Output
	Persistence store.Persistence
}

func (l *List) Do(ctx context.Context) error {
	if l.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	all := l.Persistence.List(ctx)
	if l.JSON {
		return l.json(all)
	}
	pp := l.printer()
	pp.NewLine()
	pp.Title("Stories")
	pp.Stories(all...)
	return nil
}

// Get prints one story with its features.
type Get struct {
	Output
	Persistence store.Persistence
	ID          int
}

func (g *Get) Do(ctx context.Context) error {
	if g.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	s, err := g.Persistence.Get(ctx, g.ID)
	if err != nil {
		return err
	}
	if g.JSON {
		return g.json(s)
	}
	pp := g.printer()
	pp.NewLine()
	pp.Story(s)
	return nil
}

// Add stores a single story built from flags.
type Add struct {
	Output
	Persistence store.Persistence
	Story       story.Story
}

func (a *Add) Do(ctx context.Context) error {
	if a.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	s := a.Story.Clone()
	if err := a.Persistence.Store(s); err != nil {
		return err
	}
	if a.JSON {
		return a.json(s)
	}
	_, _ = fmt.Fprintf(a.writer(), "stored story %d %q\n", s.ID, s.Title)
	return nil
}

// Import reads stories from JSON or YAML files and stores them. Existing
// stories with the same id are replaced.
type Import struct {
	Output
	Persistence store.Persistence
	Logger      *zap.Logger
	Files       []string
}

func (i *Import) Do(ctx context.Context) error {
	if i.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	log := i.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ids := make([]int, 0)
	for _, name := range i.Files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		stories, err := story.Decode(data, story.FormatFor(name))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		for _, s := range stories {
			if err := i.Persistence.Store(s); err != nil {
				return fmt.Errorf("%s: story %d: %w", name, s.ID, err)
			}
			ids = append(ids, s.ID)
		}
		log.Debug("imported file", zap.String("file", name), zap.Int("stories", len(stories)))
	}

	if i.JSON {
		return i.json(map[string]any{"imported": ids})
	}
	_, _ = fmt.Fprintf(i.writer(), "imported %d stories\n", len(ids))
	return nil
}

// Remove deletes a story.
type Remove struct {
	Output
	Persistence store.Persistence
	ID          int
}

func (r *Remove) Do(_ context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not remove, no persistence")
	}
	if err := r.Persistence.Delete(r.ID); err != nil {
		return err
	}
	if r.JSON {
		return r.json(map[string]int{"removed": r.ID})
	}
	_, _ = fmt.Fprintf(r.writer(), "removed story %d\n", r.ID)
	return nil
}
