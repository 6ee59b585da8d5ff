package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/plancal/pkg/view"
)

// ViewOptions
type ViewOptions struct {
	View string
	ICS  []string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	names := make([]string, 0, 3)
	for _, g := range view.AllGranularities() {
		names = append(names, g.String())
	}
	cmd.Flags().StringVarP(&o.View, "view", "v", view.Month.String(),
		Wrap80("Calendar granularity, one of "+strings.Join(names, ", ")+"."))
	_ = cmd.RegisterFlagCompletionFunc("view", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

func AddICSArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringSliceVar(&o.ICS, "ics", nil,
		Wrap80("iCalendar files whose events are shown next to the story. May be repeated."))
}

func (o *ViewOptions) Granularity() (view.Granularity, error) {
	return view.ParseGranularity(o.View)
}
