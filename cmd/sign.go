package main

import (
	"fmt"
	"idresolve/internal/config"
	"idresolve/pkg/domain"
	"idresolve/pkg/profiles/instagram"
	"idresolve/pkg/signer"

	"github.com/spf13/cobra"
)

// signCommand prints the signed account lookup body for a handle, exactly as
// it would be posted.
func signCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Prints the signed account lookup body for a handle",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")

			if err := cfg.RequireSigning(); err != nil {
				return err //nolint: wrapcheck
			}

			body, err := signer.Sign(
				instagram.LookupPayload(domain.CleanHandle(query), cfg.Instagram.SigKeyVersion),
				cfg.Instagram.SigKey,
				cfg.Instagram.SigKeyVersion,
			)
			if err != nil {
				return err //nolint: wrapcheck
			}

			fmt.Println(body) //nolint: forbidigo

			return nil
		},
	}

	cmd.Flags().String("query", "", "Handle to look up")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}
