// cmd/client/cmd/listings/delete.go
package listings

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <food|job|room> <id>",
	Short: "Delete one of your listings",
	Long: `Delete a listing. Deletion always asks for confirmation;
pass --yes to answer it up front.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := managerFor(cmd, args[0])
		if err != nil {
			return err
		}

		rec, err := findRecord(m, args[1])
		if err != nil {
			return err
		}
		if err := m.Select(rec); err != nil {
			return err
		}

		if err := m.RequestDelete(); err != nil {
			return err
		}

		if !deleteYes {
			outcome, _ := m.Outcome()
			fmt.Printf("%s [y/N]: ", outcome.Message)

			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				m.CancelConfirm()
				fmt.Println("Cancelled, nothing deleted")
				return nil
			}
		}

		if err := m.ConfirmDelete(cmd.Context()); err != nil {
			printOutcome(m)
			return fmt.Errorf("listing not deleted")
		}

		printOutcome(m)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
