// Package admin implements the admin console: read views over every
// listing collection, all registered accounts and the support queries.
package admin

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clusterview/cmd/client/cmd/types"
	"clusterview/internal/app/client"
	"clusterview/internal/domain/session"
)

// The backend recognizes exactly one admin credential pair; it is
// matched locally before any collection is fetched. See DESIGN.md.
const (
	adminEmail    = "Admin@gmail.com"
	adminPassword = "123"
)

// AdminCmd is the parent command for the admin console.
var AdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin console",
	Long: `Browse all listings, accounts and support queries.

Admin credentials are asked for on every invocation and never stored.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("app is not initialized")
	}
	return app, nil
}

// adminIdentity prompts for and checks the admin credential pair.
func adminIdentity() (session.Session, error) {
	var email string
	fmt.Print("Admin email: ")
	_, _ = fmt.Scanln(&email)

	fmt.Print("Admin password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	if email != adminEmail || string(password) != adminPassword {
		return session.Session{}, fmt.Errorf("admin credentials rejected")
	}

	return session.Session{Email: email, Password: string(password)}, nil
}
