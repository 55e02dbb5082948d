package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-members-server/auth"
	"github.com/jrsteele09/go-members-server/internal/config"
)

var errMemoryStore = errors.New("USER_STORE is memory, nothing to do")

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the user store schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.GetUserStore() == config.StoreMemory {
				return errMemoryStore
			}
			// opening a SQL store runs the migrations
			repo, err := openUserStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeQuietly("user store", repo.Close)

			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", cfg.GetUserStore())
			return nil
		},
	}
}

func newSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <email> <role>",
		Short: "Change the role of a user (user or admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.GetUserStore() == config.StoreMemory {
				return errMemoryStore
			}
			repo, err := openUserStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeQuietly("user store", repo.Close)

			admin, err := auth.NewAdminService(repo)
			if err != nil {
				return err
			}
			if err := admin.SetUserRole(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("set role: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], args[1])
			return nil
		},
	}
}
