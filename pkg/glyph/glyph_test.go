package glyph

import (
	"strings"
	"testing"

	"tableflip.dev/plancal/pkg/event"
)

func TestEveryTypeHasDistinctSymbol(t *testing.T) {
	seen := map[string]event.Type{}
	for _, typ := range event.AllTypes() {
		g := ForType(typ)
		if g.Meaning != typ.String() {
			t.Fatalf("%v: meaning %q", typ, g.Meaning)
		}
		if prev, dup := seen[g.Symbol]; dup {
			t.Fatalf("%v and %v share symbol %q", prev, typ, g.Symbol)
		}
		seen[g.Symbol] = typ
	}
	if len(Types()) != len(event.AllTypes()) || len(Priorities()) != len(event.AllPriorities()) {
		t.Fatalf("legend incomplete")
	}
}

func TestUnknownTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown type")
		}
	}()
	ForType(event.Type(42))
}

func TestEscapes(t *testing.T) {
	if got := Bold("x"); !strings.HasPrefix(got, "\x1b[1m") || !strings.HasSuffix(got, "\x1b[0m") {
		t.Fatalf("unexpected bold escape %q", got)
	}
}
