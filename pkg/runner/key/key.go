// Package key prints the legend of event type and priority symbols.
package key

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/plancal/pkg/printers"
)

// Key prints the glyph legend.
type Key struct {
	Color string
	Out   io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{Out: out, Theme: printers.ThemeFor(k.Color, out)}
	pp.NewLine()
	pp.Legend()
	return nil
}
