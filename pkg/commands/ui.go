package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/plancal/pkg/commands/options"
	"tableflip.dev/plancal/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	on := &options.OnOptions{}
	so := &options.StoryOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive calendar",
		Example: `
plancal ui --story 7
plancal ui --view week --on +1w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := vo.Granularity()
			if err != nil {
				return err
			}
			when, err := on.GetOn(time.Now())
			if err != nil {
				return err
			}
			e, err := loadEnv()
			if err != nil {
				return err
			}
			i := ui.UI{
				Persistence: e.p,
				Logger:      e.log,
				StoryID:     so.ID,
				Granularity: g,
				On:          when,
				Samples:     e.cfg.Samples(),
				ICS:         vo.ICS,
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddICSArgs(cmd, vo)
	options.AddOnArgs(cmd, on)
	options.AddStoryArgs(cmd, so)
	registerStoryCompletion(cmd)

	topLevel.AddCommand(cmd)
}
