package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/devlog/pkg/commands/options"
	"tableflip.dev/devlog/pkg/runner/info"
	"tableflip.dev/devlog/pkg/store"
)

func addInfo(topLevel *cobra.Command, s *session) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where data is stored.",
		Example: `
devlog info
DEVLOG_STORAGE=sqlite devlog info --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			err := s.withSlots(cmd.Context(), func(slots store.Slots) error {
				n := info.Info{
					Config: s.cfg,
					Slots:  slots,
					JSON:   oo.JSON,
					Out:    oo.Writer(),
				}
				return n.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
