// cmd/client/cmd/auth/login.go
package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clusterview/internal/authflow"
)

var loginEmail string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to ClusterView",
	Long: `Authenticate against the ClusterView gateway.

On success the credentials are stored locally so later commands can
act on your behalf. The admin account routes to the admin console and
is never stored.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		email := loginEmail
		if email == "" {
			fmt.Print("Email: ")
			_, _ = fmt.Scanln(&email)
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		route, err := app.Flow().Login(ctx, email, string(password))
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Println()
		switch route {
		case authflow.RouteAdmin:
			color.Green("✅ Logged in as admin")
			fmt.Println("Admin credentials are not stored; pass them to admin commands when asked.")
		default:
			color.Green("✅ Login successful")
			fmt.Println("Next: clusterview listings list food")
		}

		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
}
