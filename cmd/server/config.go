package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Load and validate the configuration file, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ok: mode=%s addr=%s:%d driver=%s\n",
				cfg.Server.Mode, cfg.Server.Host, cfg.Server.Port, cfg.Database.Driver)
			return nil
		},
	})
	return cmd
}
