package options

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/plancal/pkg/story"
	"tableflip.dev/plancal/pkg/view"
)

func TestGetOn(t *testing.T) {
	now := time.Date(2025, time.July, 16, 10, 0, 0, 0, time.UTC)

	o := &OnOptions{}
	got, err := o.GetOn(now)
	if err != nil || !got.IsZero() {
		t.Fatalf("empty --on should be the zero time, got %v (%v)", got, err)
	}

	o.OnString = "+1w"
	got, err = o.GetOn(now)
	if err != nil {
		t.Fatalf("GetOn: %v", err)
	}
	if want := time.Date(2025, time.July, 23, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	o.OnString = "someday"
	if _, err := o.GetOn(now); err == nil {
		t.Fatalf("expected error for %q", o.OnString)
	}
}

func TestGranularity(t *testing.T) {
	o := &ViewOptions{View: "Week"}
	g, err := o.Granularity()
	if err != nil || g != view.Week {
		t.Fatalf("expected week, got %v (%v)", g, err)
	}
	o.View = "year"
	if _, err := o.Granularity(); err == nil {
		t.Fatalf("expected error for year")
	}
}

func TestStoryFields(t *testing.T) {
	o := &StoryFieldOptions{ID: 7, Title: "Launch", DueDate: "2025-07-20", Priority: "High"}
	want := story.Story{ID: 7, Title: "Launch", DueDate: "2025-07-20", Priority: "High"}
	if diff := cmp.Diff(want, o.Story()); diff != "" {
		t.Fatalf("unexpected story (-want +got):\n%s", diff)
	}
}

func TestWrap(t *testing.T) {
	tests := map[string]struct {
		text  string
		width int
		want  string
	}{
		"breaks at width":      {text: "one two three four", width: 9, want: "one two\nthree\nfour"},
		"collapses spaces":     {text: "  one   two\n three ", width: 80, want: "one two three"},
		"long word kept":       {text: "calendar x", width: 4, want: "calendar\nx"},
		"blank text unchanged": {text: "   ", width: 10, want: "   "},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Wrap(tc.text, tc.width); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
