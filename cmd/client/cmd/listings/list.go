// cmd/client/cmd/listings/list.go
package listings

import (
	"github.com/spf13/cobra"
)

var listSearch string

var ListCmd = &cobra.Command{
	Use:   "list <food|job|room>",
	Short: "List your listings",
	Long: `Show your own listings of one type.

--search filters locally with a case-insensitive substring match over
the listing's searchable fields.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := managerFor(cmd, args[0])
		if err != nil {
			return err
		}

		if listSearch != "" {
			m.Filter(listSearch)
		}

		printRecords(m)
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter listings locally")
}
