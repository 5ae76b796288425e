package commands

import (
	"context"
	"fmt"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/devlog/pkg/commands/options"
	"tableflip.dev/devlog/pkg/config"
	"tableflip.dev/devlog/pkg/logging"
	"tableflip.dev/devlog/pkg/store"
)

// session is the state shared by every subcommand of one invocation.
type session struct {
	v   *viper.Viper
	cfg *config.Config

	// open is replaced in tests.
	open func(ctx context.Context, cfg store.Config) (store.Slots, error)
}

func (s *session) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(s.v)
	if err != nil {
		return err
	}
	if _, err := logging.Setup(logging.Writer(cfg.Path, cfg.Log.File), cfg.Log.Level); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// slots opens the configured backend. Callers close it.
func (s *session) slots(ctx context.Context) (store.Slots, error) {
	if s.cfg == nil {
		return nil, fmt.Errorf("configuration was not loaded")
	}
	return s.open(ctx, s.cfg)
}

func New() *cobra.Command {
	return newWith(&session{v: config.New(), open: store.Open})
}

func newWith(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devlog",
		Short: base.Wrap80("A developer journal and project portfolio on the command line."),
		Long: base.Wrap80("devlog keeps a daily journal of what you completed, learned and noted, " +
			"next to a portfolio of the projects you built. Data lives in ~/.devlog unless " +
			"configured otherwise with --path, DEVLOG_PATH or a .devlog.yaml file."),
		PersistentPreRunE: s.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	if err := options.AddStorageArgs(cmd, s.v); err != nil {
		panic(err)
	}

	addCommands(cmd, s)
	return cmd
}

func addCommands(topLevel *cobra.Command, s *session) {
	addJournal(topLevel, s)
	addProjects(topLevel, s)
	addWatch(topLevel, s)
	addInfo(topLevel, s)
	addVersion(topLevel)
	addCompletions(topLevel)
}
