package printers

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/store"
)

// Theme decides whether output is coloured and which colour each event type
// gets. It is plain configuration; nothing is looked up from the terminal
// after ThemeFor returns.
type Theme struct {
	Color bool
}

// ThemeFor resolves a colour mode (auto, always, never) for out. auto enables
// colour only when out is a terminal.
func ThemeFor(mode string, out io.Writer) Theme {
	switch mode {
	case store.ColorAlways:
		return Theme{Color: true}
	case store.ColorNever:
		return Theme{Color: false}
	}
	f, ok := out.(*os.File)
	if !ok {
		return Theme{Color: false}
	}
	return Theme{Color: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}

func (t Theme) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// ForType returns the colour used for events of type et.
func (t Theme) ForType(et event.Type) *color.Color {
	switch et {
	case event.Meeting:
		return t.style(color.FgHiBlue)
	case event.Task:
		return t.style(color.FgHiGreen)
	case event.Review:
		return t.style(color.FgHiMagenta)
	case event.Deadline:
		return t.style(color.FgHiRed, color.Bold)
	}
	panic("printers: unhandled event type " + et.String())
}

func (t Theme) title() *color.Color  { return t.style(color.Bold, color.Underline) }
func (t Theme) faint() *color.Color  { return t.style(color.Faint) }
func (t Theme) id() *color.Color     { return t.style(color.FgHiYellow, color.Italic, color.Faint) }
func (t Theme) today() *color.Color  { return t.style(color.Bold, color.Underline, color.FgHiWhite) }
func (t Theme) busy() *color.Color   { return t.style(color.Bold, color.FgHiWhite) }
func (t Theme) plain() *color.Color  { return t.style() }
func (t Theme) italic() *color.Color { return t.style(color.Italic) }
