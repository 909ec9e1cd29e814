// Package shop implements the buyer-side commands: browse the public
// listings and keep a list of saved items.
package shop

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"clusterview/cmd/client/cmd/types"
	"clusterview/internal/app/client"
	"clusterview/internal/domain/resource"
	"clusterview/internal/gateway"
	"clusterview/internal/utils/render"
)

// ShopCmd is the parent command for browsing and saved items.
var ShopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse listings and manage saved items",
	Long: `Browse the public food, job and room listings and keep a
personal list of saved items.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("app is not initialized")
	}
	return app, nil
}

func descriptorFor(kind string) (resource.Descriptor, error) {
	switch strings.ToLower(kind) {
	case "food", "foods":
		return resource.Food(), nil
	case "job", "jobs":
		return resource.Job(), nil
	case "room", "rooms":
		return resource.Room(), nil
	default:
		return resource.Descriptor{}, fmt.Errorf("unknown listing type %q (want food, job or room)", kind)
	}
}

// publicListings fetches the whole public collection for a listing
// type through its search endpoint.
func publicListings(cmd *cobra.Command, app *client.App, desc resource.Descriptor) ([]resource.Record, error) {
	switch desc.Name {
	case "job":
		return app.Gateway().SearchJobs(cmd.Context(), "")
	case "food":
		identity, err := app.Session()
		if err != nil {
			return nil, err
		}
		return app.Gateway().FetchCollection(cmd.Context(), resource.ShopFood(), identity)
	case "room":
		identity, err := app.Session()
		if err != nil {
			return nil, err
		}
		return app.Gateway().SearchRooms(cmd.Context(), identity, gateway.RoomSearch{})
	default:
		return nil, fmt.Errorf("no public listings for %q", desc.Name)
	}
}

func printRecords(desc resource.Descriptor, records []resource.Record) {
	if len(records) == 0 {
		fmt.Println("No listings found")
		return
	}

	columns := desc.Fields
	if len(columns) > 5 {
		columns = columns[:5]
	}

	render.Table(os.Stdout, columns, records, nil)
	fmt.Printf("\nTotal: %d\n", len(records))
}
