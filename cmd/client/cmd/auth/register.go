// cmd/client/cmd/auth/register.go
package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clusterview/internal/domain/user"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Create a ClusterView account.

Registration is a two-step exchange: the gateway mails a 6-digit code
to the address you give, and the account is created once the code is
verified. The form is locked while a code is outstanding.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Registration ===")
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		reg := user.Registration{
			Username:       readLine(reader, "Username: "),
			Email:          readLine(reader, "Email: "),
			FavoriteAnimal: readLine(reader, "Favorite animal (recovery answer): "),
			ContactNumber:  readLine(reader, "Contact number (10 digits): "),
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		reg.Password = string(password)

		flow := app.Flow()
		if err := flow.SetRegistration(reg); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		fmt.Println("Requesting verification code...")
		if err := flow.RequestCode(ctx); err != nil {
			return fmt.Errorf("failed to send code: %w", err)
		}
		fmt.Printf("✓ Code sent to %s\n", reg.Email)

		code := readLine(reader, "Enter the 6-digit code: ")
		message, err := flow.VerifyCode(ctx, code)
		if err != nil {
			flow.CancelCode()
			return fmt.Errorf("verification failed: %w", err)
		}

		fmt.Println()
		color.Green("✅ %s", message)
		fmt.Println("Next: clusterview auth login")
		return nil
	},
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
