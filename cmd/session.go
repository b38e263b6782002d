package main

import (
	"fmt"
	"idresolve/internal/config"
	"idresolve/pkg/metrics"

	"github.com/spf13/cobra"
)

func sessionCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Checks that the configured session credential is accepted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.RequireSession(); err != nil {
				return err //nolint: wrapcheck
			}

			client, err := newInstagram(cfg, newHTTPClient(cfg), metrics.New())
			if err != nil {
				return err
			}
			if err := client.ValidateSession(cmd.Context()); err != nil {
				return err //nolint: wrapcheck
			}

			fmt.Println("session ok") //nolint: forbidigo

			return nil
		},
	}
}
