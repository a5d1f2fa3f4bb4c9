package main

import (
	"fmt"

	"invest-portal/internal/features/user"

	"github.com/spf13/cobra"
)

func newSeedAdminCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the super admin account or reset its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 6 {
				return fmt.Errorf("--password must be at least 6 characters")
			}

			var users user.UserService
			return withApp(cmd.Context(), func() error {
				u, created, err := users.UpsertAdmin(cmd.Context(), email, password, name)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "created super admin %s (%s)\n", u.Email, u.ID.Hex())
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "reset password of super admin %s\n", u.Email)
				}
				return nil
			}, &users)
		},
	}

	cmd.Flags().StringVar(&email, "email", "admin@gmail.com", "admin email")
	cmd.Flags().StringVar(&password, "password", "admin123", "admin password")
	cmd.Flags().StringVar(&name, "name", "Super Admin", "display name")
	return cmd
}
