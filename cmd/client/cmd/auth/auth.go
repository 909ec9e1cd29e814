package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"clusterview/cmd/client/cmd/types"
	"clusterview/internal/app/client"
)

// AuthCmd is the parent command for account operations.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Account management",
	Long:  `Log in, register, recover a password, log out.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("app is not initialized")
	}
	return app, nil
}
