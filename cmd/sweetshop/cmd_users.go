package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/sweetshop/app/models"
	"github.com/shashiranjanraj/sweetshop/app/repositories"
	"github.com/shashiranjanraj/sweetshop/config"
	"github.com/shashiranjanraj/sweetshop/pkg/database"
)

var promoteRole string

func init() {
	promoteCmd.Flags().StringVar(&promoteRole, "role", models.RoleAdmin, "role to assign (USER or ADMIN)")
}

// sweetshop user:promote — change an account's role. Role changes happen only
// here, never through the HTTP API; already-issued tokens keep their old role
// until they expire or the user logs in again.
var promoteCmd = &cobra.Command{
	Use:   "user:promote <email>",
	Short: "Set the role of the user with the given email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]
		if promoteRole != models.RoleUser && promoteRole != models.RoleAdmin {
			return fmt.Errorf("invalid role %q (want %s or %s)", promoteRole, models.RoleUser, models.RoleAdmin)
		}
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		client, err := database.Connect(ctx, config.MongoURI())
		if err != nil {
			return err
		}
		defer database.Disconnect(client)

		users := repositories.NewMongoUserRepository(client.Database(config.MongoDB()))
		if err := users.UpdateRole(ctx, email, promoteRole); err != nil {
			return err
		}

		fmt.Printf("%s is now %s\n", email, promoteRole)
		return nil
	},
}
