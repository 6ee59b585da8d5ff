package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/plancal/pkg/story"
)

// StoryOptions selects a stored story.
type StoryOptions struct {
	ID int
}

func AddStoryArgs(cmd *cobra.Command, o *StoryOptions) {
	cmd.Flags().IntVarP(&o.ID, "story", "s", 0,
		"Story id whose deadline and features are shown.")
}

// StoryFieldOptions are the flags of `story add`.
type StoryFieldOptions struct {
	ID          int
	Title       string
	Description string
	DueDate     string
	Priority    string
}

func AddStoryFieldArgs(cmd *cobra.Command, o *StoryFieldOptions) {
	cmd.Flags().IntVar(&o.ID, "id", 0, "Story id, a positive number.")
	cmd.Flags().StringVar(&o.Title, "title", "", "Story title.")
	cmd.Flags().StringVar(&o.Description, "description", "", "Longer description.")
	cmd.Flags().StringVar(&o.DueDate, "due", "", `Due date, example: --due="2025-07-20".`)
	cmd.Flags().StringVar(&o.Priority, "priority", "", "High, Medium or Low.")
}

func (o *StoryFieldOptions) Story() story.Story {
	return story.Story{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		DueDate:     o.DueDate,
		Priority:    o.Priority,
	}
}
