// Package listings implements the commands for a user's own food, job
// and room listings: list, add, edit, delete. All four run through the
// shared resource manager.
package listings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"clusterview/cmd/client/cmd/types"
	"clusterview/internal/app/client"
	"clusterview/internal/domain/resource"
	"clusterview/internal/manager"
	"clusterview/internal/utils/render"
)

// ListingsCmd is the parent command for own-listing management.
var ListingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Manage your own listings",
	Long: `List, create, edit and delete your food, job and room listings.

Every subcommand takes the listing type as its first argument:
food, job or room.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("app is not initialized")
	}
	return app, nil
}

// descriptorFor resolves the listing type argument to its self-scoped
// descriptor.
func descriptorFor(kind string) (resource.Descriptor, error) {
	switch strings.ToLower(kind) {
	case "food", "foods":
		return resource.MyFood(), nil
	case "job", "jobs":
		return resource.MyJob(), nil
	case "room", "rooms":
		return resource.MyRoom(), nil
	default:
		return resource.Descriptor{}, fmt.Errorf("unknown listing type %q (want food, job or room)", kind)
	}
}

// managerFor builds a loaded manager for the given listing type.
func managerFor(cmd *cobra.Command, kind string) (*manager.Manager, error) {
	app, err := appFrom(cmd)
	if err != nil {
		return nil, err
	}

	desc, err := descriptorFor(kind)
	if err != nil {
		return nil, err
	}

	m, err := app.Manager(desc)
	if err != nil {
		return nil, err
	}

	if err := m.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return m, nil
}

// findRecord locates one record by identifier in the loaded collection.
func findRecord(m *manager.Manager, id string) (resource.Record, error) {
	for _, rec := range m.Records() {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("no %s listing with id %s", m.Descriptor().Name, id)
}

// parseSets turns repeated --set name=value flags into a field map.
func parseSets(sets []string) (map[string]string, error) {
	fields := make(map[string]string, len(sets))
	for _, set := range sets {
		name, value, found := strings.Cut(set, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --set %q (want name=value)", set)
		}
		fields[name] = value
	}
	return fields, nil
}

// loadUploads reads the given files into attachment uploads.
func loadUploads(paths []string) ([]resource.Upload, error) {
	uploads := make([]resource.Upload, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		uploads = append(uploads, resource.Upload{
			Filename: filepath.Base(path),
			Data:     data,
		})
	}
	return uploads, nil
}

// printRecords renders the collection as a table keyed on the
// descriptor's form fields.
func printRecords(m *manager.Manager) {
	records := m.Records()
	if len(records) == 0 {
		fmt.Println("No listings found")
		return
	}

	columns := m.Descriptor().Fields
	if len(columns) > 5 {
		columns = columns[:5]
	}

	render.Table(os.Stdout, columns, records, nil)
	fmt.Printf("\nTotal: %d\n", len(records))
}

// printOutcome renders the manager's overlay, if one is pending.
func printOutcome(m *manager.Manager) {
	outcome, ok := m.Outcome()
	if !ok {
		return
	}

	switch outcome.Kind {
	case manager.OutcomeSuccess:
		color.Green("✅ %s", outcome.Message)
	case manager.OutcomeError:
		color.Red("⚠️  %s", outcome.Message)
	case manager.OutcomeConfirm:
		color.Yellow("? %s", outcome.Message)
	default:
		fmt.Println(outcome.Message)
	}
	m.Dismiss()
}
