package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simp-lee/gonotes/internal/app"
	"github.com/simp-lee/gonotes/internal/config"
)

type configLoader func() (*config.Config, error)

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(load)
		},
	}
}

func runServe(load configLoader) error {
	cfg, err := load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}

	return a.Run()
}
