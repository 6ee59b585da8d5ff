package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/plancal/pkg/commands/options"
	"tableflip.dev/plancal/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	on := &options.OnOptions{}
	so := &options.StoryOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a day, week or month of the calendar",
		Example: `
plancal show
plancal show --story 7 --view week
plancal show --view day --on tomorrow
plancal show --story 7 --on 2025-7-1 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := vo.Granularity()
			if err != nil {
				return oo.HandleError(err)
			}
			when, err := on.GetOn(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Persistence: e.p,
				Logger:      e.log,
				StoryID:     so.ID,
				Granularity: g,
				On:          when,
				Samples:     e.cfg.Samples(),
				ICS:         vo.ICS,
				JSON:        oo.JSON,
				ShowID:      io.ShowID,
				Color:       e.color,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddICSArgs(cmd, vo)
	options.AddOnArgs(cmd, on)
	options.AddStoryArgs(cmd, so)
	registerStoryCompletion(cmd)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
