package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/plancal/pkg/commands/options"
	"tableflip.dev/plancal/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	so := &options.StoryOptions{}
	oo := &options.OutputOptions{}
	file := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the calendar of a story as iCalendar",
		Example: `
plancal export --story 7 > launch.ics
plancal export --story 7 --file launch.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			x := export.Export{
				Persistence: e.p,
				Logger:      e.log,
				StoryID:     so.ID,
				Samples:     e.cfg.Samples(),
				File:        file,
				Location:    time.Local,
			}
			return oo.HandleError(x.Do(cmd.Context()))
		},
	}

	options.AddStoryArgs(cmd, so)
	registerStoryCompletion(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
