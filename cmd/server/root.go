package main

import (
	"github.com/spf13/cobra"

	"github.com/simp-lee/gonotes/internal/config"
)

const defaultConfigPath = "configs/config.yaml"

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	var configPath string

	load := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	root := &cobra.Command{
		Use:   "gonotes",
		Short: "Per-user notes API with filtering, sorting and pagination",
		Long: `gonotes serves a JSON API where authenticated users manage their own notes.
Listing supports a free-text search, column filters, sorting and paging.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(load)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the YAML configuration file")

	root.AddCommand(
		newServeCmd(load),
		newMigrateCmd(load),
		newConfigCmd(load),
	)
	return root
}
