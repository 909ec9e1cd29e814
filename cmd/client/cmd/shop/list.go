// cmd/client/cmd/shop/list.go
package shop

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clusterview/internal/domain/resource"
	"clusterview/internal/gateway"
)

var (
	listSearch   string
	listRoomType string
	listPrice    string
	listLocation string
)

var ListCmd = &cobra.Command{
	Use:   "list <food|job|room>",
	Short: "Browse the public listings",
	Long: `Browse the public listings through the search endpoints.

Food listings are fetched whole and filtered locally with --search.
Job listings are matched by keyword on the gateway, also via --search.
Room listings are filtered on the gateway with --type, --price and
--location; --price takes a bucket like 5000-10000 or 20000+.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		switch strings.ToLower(args[0]) {
		case "food", "foods":
			identity, err := app.Session()
			if err != nil {
				return err
			}

			desc := resource.ShopFood()
			m := app.ManagerAs(desc, identity)
			if err := m.Load(cmd.Context()); err != nil {
				return err
			}
			if listSearch != "" {
				m.Filter(listSearch)
			}

			printRecords(desc, m.Records())
			return nil

		case "job", "jobs":
			records, err := app.Gateway().SearchJobs(cmd.Context(), listSearch)
			if err != nil {
				return err
			}

			printRecords(resource.Job(), records)
			return nil

		case "room", "rooms":
			identity, err := app.Session()
			if err != nil {
				return err
			}

			records, err := app.Gateway().SearchRooms(cmd.Context(), identity, gateway.RoomSearch{
				Type:       listRoomType,
				PriceRange: listPrice,
				Location:   listLocation,
			})
			if err != nil {
				return err
			}

			printRecords(resource.Room(), records)
			return nil

		default:
			return fmt.Errorf("unknown listing type %q (want food, job or room)", args[0])
		}
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "keyword filter (food, job)")
	ListCmd.Flags().StringVar(&listRoomType, "type", "", "room type (PG, 1BHK, 2BHK, 3BHK, 4BHK)")
	ListCmd.Flags().StringVar(&listPrice, "price", "", "room price bucket, e.g. 5000-10000 or 20000+")
	ListCmd.Flags().StringVar(&listLocation, "location", "", "room location filter")
}
