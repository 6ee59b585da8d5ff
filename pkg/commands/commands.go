// Package commands builds the plancal cobra command tree.
package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/plancal/pkg/commands/options"
)

var (
	global = &options.GlobalOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "plancal",
		Short: options.Wrap80("Project stories on a day, week or month calendar."),
		Long: options.Wrap80("plancal turns stored stories and their features into " +
			"calendar events and shows them as a day, week or month view, " +
			"in the terminal, in an interactive UI or over MCP."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddGlobalArgs(cmd, global)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addStory(topLevel)
	addExport(topLevel)
	addKey(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
