package commands

import (
	"bytes"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommandTree(t *testing.T) {
	root := New()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	want := []string{"completion", "export", "key", "mcp", "show", "story", "ui", "version"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected commands (-want +got):\n%s", diff)
	}

	story, _, err := root.Find([]string{"story", "import"})
	if err != nil || story.Name() != "import" {
		t.Fatalf("story import not found: %v", err)
	}
	for _, flag := range []string{"log-level", "color"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("missing persistent flag --%s", flag)
		}
	}
}

func TestShowRejectsUnknownView(t *testing.T) {
	root := New()
	root.SetArgs([]string{"show", "--view", "year"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}

func TestStoryGetRejectsBadID(t *testing.T) {
	root := New()
	root.SetArgs([]string{"story", "get", "seven"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for non-numeric id")
	}
}
