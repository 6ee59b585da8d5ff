package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/plancal/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the event type and priority symbols",
		Example: `
plancal key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			k := key.Key{Color: e.color}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
