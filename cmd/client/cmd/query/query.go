// Package query implements support query submission.
package query

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"clusterview/cmd/client/cmd/types"
	"clusterview/internal/app/client"
)

var (
	queryName    string
	queryMessage string
)

// QueryCmd submits a support query. The email is taken from the
// stored session.
var QueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Send a support query",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("app is not initialized")
		}

		if queryName == "" || queryMessage == "" {
			return fmt.Errorf("both --name and --message are required")
		}

		identity, err := app.Session()
		if err != nil {
			return err
		}

		message, err := app.Gateway().SubmitQuery(cmd.Context(), queryName, identity.Email, queryMessage)
		if err != nil {
			return fmt.Errorf("failed to submit query: %w", err)
		}

		color.Green("✅ %s", message)
		return nil
	},
}

func init() {
	QueryCmd.Flags().StringVarP(&queryName, "name", "n", "", "your name")
	QueryCmd.Flags().StringVarP(&queryMessage, "message", "m", "", "the query text")
}
