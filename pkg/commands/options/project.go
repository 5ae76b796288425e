package options

import (
	"github.com/spf13/cobra"
)

// ProjectOptions
type ProjectOptions struct {
	Title       string
	Description string
	Tech        []string
	DropTech    []string
	LiveURL     string
	GitHubURL   string
}

func AddProjectArgs(cmd *cobra.Command, o *ProjectOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Project title, required.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Project description, required.")
	cmd.Flags().StringArrayVar(&o.Tech, "tech", nil,
		`Add a technology tag, repeatable: --tech=Go --tech="Redis".`)
	cmd.Flags().StringArrayVar(&o.DropTech, "drop-tech", nil,
		"Remove a technology tag added by --tech, repeatable.")
	cmd.Flags().StringVar(&o.LiveURL, "live-url", "",
		"Link to the running project.")
	cmd.Flags().StringVar(&o.GitHubURL, "github-url", "",
		"Link to the source repository.")
}
