package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/devlog/pkg/journal"
)

// JournalOptions
type JournalOptions struct {
	Completed string
	Learned   string
	Notes     string
}

func AddJournalArgs(cmd *cobra.Command, o *JournalOptions) {
	cmd.Flags().StringVarP(&o.Completed, "completed", "c", "",
		"What you completed today.")
	cmd.Flags().StringVarP(&o.Learned, "learned", "l", "",
		"What you learned.")
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"Anything else worth remembering.")
}

func (o *JournalOptions) Draft() journal.Draft {
	return journal.Draft{Completed: o.Completed, Learned: o.Learned, Notes: o.Notes}
}
