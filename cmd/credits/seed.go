package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
)

// seedUsers are development accounts, one per supported locale.
var seedUsers = []types.RegisterRequest{
	{Name: "John Doe", Email: "john.doe@example.com", Locale: "en"},
	{Name: "Jana Schmidt", Email: "jana.schmidt@example.com", Locale: "de"},
	{Name: "Li Wei", Email: "li.wei@example.com", Locale: "zh"},
	{Name: "Admin User", Email: "admin@example.com", Locale: "en"},
}

func newSeedUsersCmd(open opener) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "seed-users",
		Short: "Create development users with their welcome credits",
		Args:  cobra.NoArgs,
		RunE: withApp(open, func(cmd *cobra.Command, _ []string, a *app) error {
			out := cmd.OutOrStdout()
			for _, u := range seedUsers {
				req := u
				req.Password = password
				result, err := a.auth.Register(cmd.Context(), &req)
				if errors.Is(err, service.ErrUserExists) {
					fmt.Fprintf(out, "%s already exists, skipping\n", req.Email)
					continue
				}
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", req.Email, err)
				}
				fmt.Fprintf(out, "created %s with %d credits\n", result.User.Email, result.Credits)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&password, "password", "testpassword123", "Password for every seeded user")
	return cmd
}
