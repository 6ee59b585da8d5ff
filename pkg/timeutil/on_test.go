package timeutil

import (
	"testing"
	"time"
)

func TestParseOn(t *testing.T) {
	now := time.Date(2025, time.December, 5, 15, 4, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want string
	}{
		{"", "2025-12-05"},
		{"today", "2025-12-05"},
		{"Tomorrow", "2025-12-06"},
		{"yesterday", "2025-12-04"},
		{"2025-07-20", "2025-07-20"},
		{"2025-7-2", "2025-07-02"},
		{"12/25", "2025-12-25"},
		{"1/3", "2026-01-03"},
		{"+1w2d", "2025-12-14"},
		{"-3d", "2025-12-02"},
	}
	for _, tt := range tests {
		got, err := ParseOn(tt.in, now)
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if got.Format("2006-01-02") != tt.want {
			t.Fatalf("%q: expected %s, got %s", tt.in, tt.want, got.Format("2006-01-02"))
		}
		if got.Hour() != 0 || got.Location() != time.UTC {
			t.Fatalf("%q: expected midnight in now's location, got %v", tt.in, got)
		}
	}
}

func TestParseOnInvalid(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"someday", "+", "+3y", "2025-13-01"} {
		if _, err := ParseOn(in, now); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseOffset(t *testing.T) {
	days, err := ParseOffset("2w 3days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 17 {
		t.Fatalf("expected 17 days, got %d", days)
	}
	if _, err := ParseOffset("3h"); err == nil {
		t.Fatalf("hours are not a day offset")
	}
}

func TestFormatOffset(t *testing.T) {
	tests := map[int]string{0: "0d", 9: "+1w2d", -7: "-1w", 3: "+3d"}
	for in, want := range tests {
		if got := FormatOffset(in); got != want {
			t.Fatalf("%d: expected %s, got %s", in, want, got)
		}
	}
}
