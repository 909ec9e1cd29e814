// cmd/client/cmd/auth/forgot.go
package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"clusterview/internal/authflow"
)

var revealPassword bool

var ForgotCmd = &cobra.Command{
	Use:   "forgot",
	Short: "Recover a forgotten password",
	Long: `Recover access by answering the account's recovery question.

The gateway returns the stored password. It is shown masked; pass
--reveal to print it in full.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		reader := bufio.NewReader(os.Stdin)
		email := readLine(reader, "Email: ")
		animal := readLine(reader, "Favorite animal: ")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		password, err := app.Flow().Recover(ctx, email, animal)
		if err != nil {
			return fmt.Errorf("recovery failed: %w", err)
		}

		shown := authflow.MaskPassword(password)
		if revealPassword {
			shown = password
		}

		fmt.Println()
		color.Green("✅ Recovery successful")
		fmt.Printf("Your password: %s\n", shown)
		if !revealPassword {
			fmt.Println("(run with --reveal to print it in full)")
		}
		return nil
	},
}

func init() {
	ForgotCmd.Flags().BoolVar(&revealPassword, "reveal", false, "print the recovered password in full")
}
