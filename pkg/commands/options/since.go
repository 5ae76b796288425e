package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/devlog/pkg/timeutil"
)

// SinceOptions
type SinceOptions struct {
	SinceString string
}

func AddSinceArgs(cmd *cobra.Command, o *SinceOptions) {
	cmd.Flags().StringVar(&o.SinceString, "since", "",
		`Only show entries from the last window, example: --since=2w or --since=1w3d.`)
}

func (o *SinceOptions) GetSince() (time.Duration, error) {
	return timeutil.ParseWindow(o.SinceString)
}
