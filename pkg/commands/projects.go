package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/devlog/pkg/commands/options"
	"tableflip.dev/devlog/pkg/projects"
	"tableflip.dev/devlog/pkg/runner/portfolio"
	"tableflip.dev/devlog/pkg/store"
)

func addProjects(topLevel *cobra.Command, s *session) {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p", "cv"},
		Short:   "Portfolio of the projects you built.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addProjectsAdd(cmd, s)
	addProjectsList(cmd, s)
	addProjectsDelete(cmd, s)

	topLevel.AddCommand(cmd)
}

func addProjectsAdd(parent *cobra.Command, s *session) {
	po := &options.ProjectOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project. Title and description are required.",
		Example: `
devlog projects add --title "devlog" --description "Journal CLI" --tech Go --tech SQLite
devlog projects add -t "site" -d "Portfolio" --github-url https://github.com/me/site
devlog projects add -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			err := s.withSlots(cmd.Context(), func(slots store.Slots) error {
				a := portfolio.Add{
					Title:       po.Title,
					Description: po.Description,
					LiveURL:     po.LiveURL,
					GitHubURL:   po.GitHubURL,
					Tech:        po.Tech,
					DropTech:    po.DropTech,
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

	options.AddProjectArgs(cmd, po)
	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addProjectsList(parent *cobra.Command, s *session) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects in the order they were added.",
		Example: `
devlog projects list
devlog projects list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			err := s.withSlots(cmd.Context(), func(slots store.Slots) error {
				l := portfolio.List{
					ShowID: io.ShowID,
					JSON:   oo.JSON,
					Slots:  slots,
					Out:    oo.Writer(),
				}
				return l.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addProjectsDelete(parent *cobra.Command, s *session) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete projects by id. Unknown ids are ignored.",
		Args:    cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return s.completeIDs(cmd.Context(), projects.Slot), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			err := s.withSlots(cmd.Context(), func(slots store.Slots) error {
				d := portfolio.Delete{
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
