// Package timeutil parses the human-friendly dates accepted on the command line.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

var (
	offsetPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitDays      = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseOn resolves a date expression relative to now. Accepted forms:
//
//	""  "today"  "tomorrow"  "yesterday"
//	"2025-7-20"  "2025-07-20"
//	"7/20"        next occurrence of that day, this year or next
//	"+1w2d" "-3d" offset in days and weeks from today
//
// The result is midnight in now's location.
func ParseOn(input string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	v := strings.ToLower(strings.TrimSpace(input))
	switch v {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if v[0] == '+' || v[0] == '-' {
		days, err := ParseOffset(v[1:])
		if err != nil {
			return time.Time{}, err
		}
		if v[0] == '-' {
			days = -days
		}
		return today.AddDate(0, 0, days), nil
	}

	if t, err := time.ParseInLocation(layoutISO, v, now.Location()); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(layoutISOShort, v, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD, M/D or +N[d|w]", input)
	}
	t = t.AddDate(now.Year(), 0, 0)
	// 1/3 asked for on 12/5 means next year, not eleven months ago.
	if t.Before(today) {
		t = t.AddDate(1, 0, 0)
	}
	return t, nil
}

// ParseOffset parses a compact day offset such as "1w2d" into a day count.
func ParseOffset(input string) (int, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty offset")
	}
	total := 0
	for len(remaining) > 0 {
		matches := offsetPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid offset segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid offset value %q: %w", matches[1], err)
		}
		unit, ok := unitDays[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported offset unit %q", matches[2])
		}
		total += value * unit
		remaining = remaining[len(matches[0]):]
	}
	return total, nil
}

// FormatOffset renders a day count using week and day tokens.
func FormatOffset(days int) string {
	if days == 0 {
		return "0d"
	}
	sign := "+"
	if days < 0 {
		sign = "-"
		days = -days
	}
	var b strings.Builder
	b.WriteString(sign)
	if w := days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}
