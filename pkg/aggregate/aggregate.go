// Package aggregate derives calendar events from story records.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/plancal/pkg/event"
	"tableflip.dev/plancal/pkg/story"
)

// StoryID returns the synthetic event id for a story.
func StoryID(id int) string {
	return fmt.Sprintf("story-%d", id)
}

// FeatureID returns the synthetic event id for a feature.
func FeatureID(id int) string {
	return fmt.Sprintf("feature-%d", id)
}

// Events regenerates the full event list for root followed by samples.
// A nil root contributes nothing. The result never holds two events with the
// same id; the first occurrence wins.
func Events(root *story.Story, samples []event.Event) []event.Event {
	out := make([]event.Event, 0, 1+featureCount(root)+len(samples))
	seen := make(map[string]struct{}, cap(out))

	add := func(e event.Event) {
		if _, dup := seen[e.ID]; dup {
			return
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}

	if root != nil {
		add(event.Event{
			ID:          StoryID(root.ID),
			Title:       root.Title,
			Description: root.Description,
			Type:        event.Deadline,
			Date:        root.DueDate,
			Priority:    priority(root.Priority),
		})
		for _, f := range root.Features {
			add(event.Event{
				ID:          FeatureID(f.ID),
				Title:       f.Name,
				Description: f.Description,
				Type:        event.Task,
				Date:        f.DueDate,
				Priority:    priority(f.Priority),
				Feature:     f.Name,
				Assignee:    f.Assignee,
				Progress:    f.Progress,
			})
		}
	}
	for _, s := range samples {
		add(s.Clone())
	}
	return out
}

func featureCount(root *story.Story) int {
	if root == nil {
		return 0
	}
	return len(root.Features)
}

// Unknown or empty priorities render as Medium.
func priority(raw string) event.Priority {
	if strings.TrimSpace(raw) == "" {
		return event.Medium
	}
	p, err := event.ParsePriority(raw)
	if err != nil {
		return event.Medium
	}
	return p
}

// Samples returns the fixed sample events shown next to story events, dated
// relative to anchor so they stay near the current week.
func Samples(anchor time.Time) []event.Event {
	today := event.DateOf(anchor)
	return []event.Event{
		{
			ID:          "sample-1",
			Title:       "Team standup",
			Description: "Daily sync on blockers and progress.",
			Type:        event.Meeting,
			Date:        today.String(),
			StartTime:   event.MustClock("09:00"),
			EndTime:     event.MustClock("09:15"),
			Priority:    event.Medium,
			Attendees:   []string{"team"},
		},
		{
			ID:          "sample-2",
			Title:       "Design review",
			Description: "Walk through the dashboard mockups.",
			Type:        event.Review,
			Date:        today.AddDays(1).String(),
			StartTime:   event.MustClock("14:00"),
			EndTime:     event.MustClock("15:00"),
			Priority:    event.High,
		},
		{
			ID:          "sample-3",
			Title:       "Sprint planning",
			Description: "Pick up stories for the next sprint.",
			Type:        event.Meeting,
			Date:        today.AddDays(3).String(),
			StartTime:   event.MustClock("10:00"),
			EndTime:     event.MustClock("11:30"),
			Priority:    event.Low,
		},
	}
}
