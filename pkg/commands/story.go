package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/plancal/pkg/commands/options"
	"tableflip.dev/plancal/pkg/runner/stories"
)

func addStory(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "story",
		Aliases: []string{"stories"},
		Short:   "Manage the stored stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addStoryList(cmd)
	addStoryGet(cmd)
	addStoryAdd(cmd)
	addStoryImport(cmd)
	addStoryRemove(cmd)

	topLevel.AddCommand(cmd)
}

func storyOutput(oo *options.OutputOptions, e *env) stories.Output {
	return stories.Output{JSON: oo.JSON, Color: e.color}
}

func storyIDArg(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("story id must be a positive number, got %q", args[0])
	}
	return id, nil
}

func addStoryList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stories",
		Example: `
plancal story list
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			l := stories.List{Output: storyOutput(oo, e), Persistence: e.p}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addStoryGet(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a story and its features",
		Example: `
plancal story get 7
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: storyArgCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := storyIDArg(args)
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			g := stories.Get{Output: storyOutput(oo, e), Persistence: e.p, ID: id}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addStoryAdd(topLevel *cobra.Command) {
	fo := &options.StoryFieldOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a story without features",
		Example: `
plancal story add --id 7 --title Launch --due 2025-07-20 --priority High
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			a := stories.Add{Output: storyOutput(oo, e), Persistence: e.p, Story: fo.Story()}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}
	options.AddStoryFieldArgs(cmd, fo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addStoryImport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Store stories from JSON or YAML files",
		Long: options.Wrap80("Each file holds one story or a list of stories, " +
			"with nested features. Files ending in .yaml or .yml are read as YAML, " +
			"everything else as JSON. Stories replace stored ones with the same id."),
		Example: `
plancal story import launch.yaml
plancal story import backlog.json --json
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			i := stories.Import{Output: storyOutput(oo, e), Persistence: e.p, Logger: e.log, Files: args}
			return oo.HandleError(i.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addStoryRemove(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a story",
		Example: `
plancal story rm 7
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: storyArgCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := storyIDArg(args)
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			r := stories.Remove{Output: storyOutput(oo, e), Persistence: e.p, ID: id}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
