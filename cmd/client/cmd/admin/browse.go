// cmd/client/cmd/admin/browse.go
package admin

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"clusterview/internal/domain/resource"
	"clusterview/internal/manager"
	"clusterview/internal/utils/render"
)

var (
	browseSearch string
	browseSort   string
	browseDesc   bool
	revealSecret bool
)

var BrowseCmd = &cobra.Command{
	Use:   "browse <foods|jobs|rooms|users|queries>",
	Short: "Browse a collection",
	Long: `Show every record of one collection.

--search filters locally; --sort orders by a field (pass --desc to
reverse; submittedAt on queries compares as a timestamp). Account
passwords are shown masked unless --reveal is passed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		desc, columns, err := adminCollection(args[0])
		if err != nil {
			return err
		}

		identity, err := adminIdentity()
		if err != nil {
			return err
		}

		m := app.ManagerAs(desc, identity)
		if err := m.Load(cmd.Context()); err != nil {
			return err
		}

		if browseSearch != "" {
			m.Filter(browseSearch)
		}
		if browseSort != "" {
			m.SortBy(browseSort, !browseDesc)
		}

		printCollection(m, columns)
		return nil
	},
}

// adminCollection maps the collection argument to its descriptor and
// display columns.
func adminCollection(kind string) (resource.Descriptor, []string, error) {
	switch strings.ToLower(kind) {
	case "food", "foods":
		return resource.Food(), []string{"foodname", "shopname", "price", "category", "address"}, nil
	case "job", "jobs":
		return resource.Job(), []string{"title", "company", "location", "salary", "userId.username"}, nil
	case "room", "rooms":
		return resource.Room(), []string{"roomType", "price", "location", "contactNo"}, nil
	case "user", "users":
		return resource.Users(), []string{"username", "email", "password", "favoriteAnimal"}, nil
	case "query", "queries":
		return resource.Queries(), []string{"name", "email", "query", "submittedAt"}, nil
	default:
		return resource.Descriptor{}, nil, fmt.Errorf("unknown collection %q", kind)
	}
}

func printCollection(m *manager.Manager, columns []string) {
	records := m.Records()
	if len(records) == 0 {
		fmt.Println("No records found")
		return
	}

	render.Table(os.Stdout, columns, records, func(column, value string) string {
		if column == "password" && !revealSecret {
			return maskSecret(value)
		}
		return value
	})
	fmt.Printf("\nTotal: %d\n", len(records))
}

func maskSecret(s string) string {
	return strings.Repeat("*", utf8.RuneCountInString(s))
}

func init() {
	BrowseCmd.Flags().StringVarP(&browseSearch, "search", "s", "", "filter records locally")
	BrowseCmd.Flags().StringVar(&browseSort, "sort", "", "sort by field")
	BrowseCmd.Flags().BoolVar(&browseDesc, "desc", false, "sort descending")
	BrowseCmd.Flags().BoolVar(&revealSecret, "reveal", false, "show stored passwords in full")
}
