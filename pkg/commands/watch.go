package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"tableflip.dev/devlog/pkg/commands/options"
	"tableflip.dev/devlog/pkg/runner/watch"
	"tableflip.dev/devlog/pkg/store"
)

func addWatch(topLevel *cobra.Command, s *session) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch [journal|projects]",
		Short: "Show panels and redraw them when another devlog changes them.",
		Long: `Show the journal, the projects or both, and redraw a panel each time
its data is rewritten, for example by "devlog journal add" in another
terminal. Only the disk storage backend can be watched. Stop with Ctrl-C.`,
		Example: `
devlog watch
devlog watch journal --show-id
`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{watch.PanelJournal, watch.PanelProjects},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return s.withSlots(cmd.Context(), func(slots store.Slots) error {
				w := watch.Watch{
					Panels: args,
					ShowID: io.ShowID,
					OnClose: func(panel string) {
						slog.Debug("panel closed", "panel", panel)
					},
					Slots: slots,
					Out:   cmd.OutOrStdout(),
				}
				return w.Do(cmd.Context())
			})
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
