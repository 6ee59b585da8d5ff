// Package glyph maps event types and priorities to the symbols shown in views.
package glyph

import (
	"fmt"

	"tableflip.dev/plancal/pkg/event"
)

// Glyph is a legend entry.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
	strikeCode    = 9
)

// Strike wraps in with the terminal strike-through escape.
func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

// Bold wraps in with the terminal bold escape.
func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

// Underline wraps in with the terminal underline escape.
func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// ForType returns the symbol for an event type.
func ForType(t event.Type) Glyph {
	switch t {
	case event.Meeting:
		return Glyph{Key: "o", Symbol: "○", Meaning: "meeting"}
	case event.Task:
		return Glyph{Key: "+", Symbol: "●", Meaning: "task"}
	case event.Review:
		return Glyph{Key: "?", Symbol: "◇", Meaning: "review"}
	case event.Deadline:
		return Glyph{Key: "!", Symbol: "⚑", Meaning: "deadline"}
	}
	panic(fmt.Sprintf("glyph: unhandled event type %d", int(t)))
}

// ForPriority returns the signifier for a priority. Low has no mark.
func ForPriority(p event.Priority) Glyph {
	switch p {
	case event.High:
		return Glyph{Key: "*", Symbol: "✷", Meaning: "high priority"}
	case event.Medium:
		return Glyph{Key: "-", Symbol: "·", Meaning: "medium priority"}
	case event.Low:
		return Glyph{Key: " ", Symbol: " ", Meaning: "low priority"}
	}
	panic(fmt.Sprintf("glyph: unhandled priority %d", int(p)))
}

// Types returns the legend for every event type.
func Types() []Glyph {
	out := make([]Glyph, 0, len(event.AllTypes()))
	for _, t := range event.AllTypes() {
		out = append(out, ForType(t))
	}
	return out
}

// Priorities returns the legend for every priority.
func Priorities() []Glyph {
	out := make([]Glyph, 0, len(event.AllPriorities()))
	for _, p := range event.AllPriorities() {
		out = append(out, ForPriority(p))
	}
	return out
}

func (g Glyph) String() string {
	return g.Symbol
}
