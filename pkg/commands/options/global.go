package options

import (
	"github.com/spf13/cobra"
)

// GlobalOptions are persistent flags of the root command. Empty values fall
// back to the config file.
type GlobalOptions struct {
	LogLevel string
	Color    string
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level for diagnostics on stderr: debug, info, warn or error.")
	cmd.PersistentFlags().StringVar(&o.Color, "color", "",
		"Colour output: auto, always or never.")
}
