// Package profile implements viewing and editing the account profile.
package profile

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"clusterview/cmd/client/cmd/types"
	"clusterview/internal/app/client"
	"clusterview/internal/domain/user"
)

// ProfileCmd is the parent command for account profile operations.
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		identity, err := app.Session()
		if err != nil {
			return err
		}

		profile, err := app.Gateway().UserDetails(cmd.Context(), identity)
		if err != nil {
			return err
		}

		fmt.Printf("Username:        %s\n", profile.Username)
		fmt.Printf("Email:           %s\n", profile.Email)
		fmt.Printf("Favorite animal: %s\n", profile.FavoriteAnimal)
		fmt.Printf("Contact number:  %s\n", profile.ContactNumber)
		return nil
	},
}

var (
	editUsername string
	editAnimal   string
	editContact  string
)

var EditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	Long: `Change the editable profile fields. Flags left unset keep
their current values; the contact number is validated locally.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		identity, err := app.Session()
		if err != nil {
			return err
		}

		profile, err := app.Gateway().UserDetails(cmd.Context(), identity)
		if err != nil {
			return err
		}

		if editUsername != "" {
			profile.Username = editUsername
		}
		if editAnimal != "" {
			profile.FavoriteAnimal = editAnimal
		}
		if editContact != "" {
			if err := user.ValidatePhone(editContact); err != nil {
				return err
			}
			profile.ContactNumber = editContact
		}

		updated, err := app.Gateway().UpdateUserDetails(cmd.Context(), identity, profile)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		color.Green("✅ Profile updated")
		fmt.Printf("Username:        %s\n", updated.Username)
		fmt.Printf("Favorite animal: %s\n", updated.FavoriteAnimal)
		fmt.Printf("Contact number:  %s\n", updated.ContactNumber)
		return nil
	},
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("app is not initialized")
	}
	return app, nil
}

func init() {
	EditCmd.Flags().StringVar(&editUsername, "username", "", "new username")
	EditCmd.Flags().StringVar(&editAnimal, "animal", "", "new recovery answer")
	EditCmd.Flags().StringVar(&editContact, "contact", "", "new 10-digit contact number")
}
