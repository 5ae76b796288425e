package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/devlog/pkg/config"
	"tableflip.dev/devlog/pkg/store"
)

// AddStorageArgs registers the global flags and binds them to v, so they
// take precedence over the environment and the config file.
func AddStorageArgs(cmd *cobra.Command, v *viper.Viper) error {
	backends := make([]string, 0, len(store.Backends()))
	for _, b := range store.Backends() {
		backends = append(backends, string(b))
	}

	pf := cmd.PersistentFlags()
	pf.String("storage", "",
		fmt.Sprintf("Storage backend, one of %s. Defaults to disk.", strings.Join(backends, ", ")))
	pf.String("path", "",
		"Directory holding devlog data. Defaults to ~/.devlog.")
	pf.String("log-level", "",
		"Log level: debug, info, warn or error.")

	for key, flag := range map[string]string{
		config.KeyStorage:  "storage",
		config.KeyPath:     "path",
		config.KeyLogLevel: "log-level",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			return err
		}
	}

	return cmd.RegisterFlagCompletionFunc("storage", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return backends, cobra.ShellCompDirectiveNoFileComp
	})
}
