package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"tableflip.dev/devlog/pkg/commands/options"
	"tableflip.dev/devlog/pkg/journal"
	"tableflip.dev/devlog/pkg/runner/entries"
	"tableflip.dev/devlog/pkg/store"
)

// withSlots opens storage for the length of fn.
func (s *session) withSlots(ctx context.Context, fn func(store.Slots) error) error {
	slots, err := s.slots(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := slots.Close(); err != nil {
			slog.Warn("closing storage", "err", err)
		}
	}()
	return fn(slots)
}

func addJournal(topLevel *cobra.Command, s *session) {
	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"j"},
		Short:   "Daily journal: what you completed, learned and noted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addJournalAdd(cmd, s)
	addJournalList(cmd, s)
	addJournalDelete(cmd, s)

	topLevel.AddCommand(cmd)
}

func addJournalAdd(parent *cobra.Command, s *session) {
	jo := &options.JournalOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a journal entry for today.",
		Example: `
devlog journal add --completed "Shipped the login page" --learned "CSS grid"
devlog journal add -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			err := s.withSlots(cmd.Context(), func(slots store.Slots) error {
				a := entries.Add{
					Draft:       jo.Draft(),
					Interactive: i.Interactive,
					ShowID:      io.ShowID,
					JSON:        oo.JSON,
					Slots:       slots,
					Out:         oo.Writer(),
				}
				return a.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddJournalArgs(cmd, jo)
	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addJournalList(parent *cobra.Command, s *session) {
	io := &options.IDOptions{}
	so := &options.SinceOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journal entries, newest first.",
		Example: `
devlog journal list
devlog journal list --show-id
devlog journal list --since 2w --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			since, err := so.GetSince()
			if err != nil {
				return oo.HandleError(err)
			}
			err = s.withSlots(cmd.Context(), func(slots store.Slots) error {
				l := entries.List{
					ShowID: io.ShowID,
					JSON:   oo.JSON,
					Since:  since,
					Slots:  slots,
					Out:    oo.Writer(),
				}
				return l.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddSinceArgs(cmd, so)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addJournalDelete(parent *cobra.Command, s *session) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete journal entries by id. Unknown ids are ignored.",
		Example: `
devlog journal list --show-id
devlog journal delete 0b7c5d4e-8f61-4c0e-9a43-3f1d2f6f7c11
`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return s.completeIDs(cmd.Context(), journal.Slot), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			err := s.withSlots(cmd.Context(), func(slots store.Slots) error {
				d := entries.Delete{
					IDs:   args,
					JSON:  oo.JSON,
					Slots: slots,
					Out:   oo.Writer(),
				}
				return d.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}
