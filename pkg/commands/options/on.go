package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/plancal/pkg/timeutil"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Reference date, example: --on="2025-7-20", --on="7/20", --on=tomorrow or --on=+1w.`)
}

// GetOn resolves --on against now. An empty flag returns the zero time.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	if o.OnString == "" {
		return time.Time{}, nil
	}
	return timeutil.ParseOn(o.OnString, now)
}
