package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/devlog/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(devlog completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(devlog completion)
`,
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

// completeIDs lists the ids stored in slot, for shell completion.
func (s *session) completeIDs(ctx context.Context, slot string) []string {
	var ids []string
	err := s.withSlots(ctx, func(slots store.Slots) error {
		records, err := store.Load[struct {
			ID string `json:"id"`
		}](ctx, slots, slot)
		if err != nil {
			return err
		}
		for _, r := range records {
			ids = append(ids, r.ID)
		}
		return nil
	})
	if err != nil {
		slog.Debug("id completion failed", "slot", slot, "err", err)
		return nil
	}
	return ids
}
