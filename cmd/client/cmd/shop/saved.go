// cmd/client/cmd/shop/saved.go
package shop

import (
	"fmt"

	"github.com/spf13/cobra"
)

var SaveCmd = &cobra.Command{
	Use:   "save <food|job|room> <id>",
	Short: "Save a listing for later",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		desc, err := descriptorFor(args[0])
		if err != nil {
			return err
		}

		identity, err := app.Session()
		if err != nil {
			return err
		}

		// The gateway stores the whole record, so fetch it first.
		records, err := publicListings(cmd, app, desc)
		if err != nil {
			return err
		}

		for _, rec := range records {
			if rec.ID() != args[1] {
				continue
			}
			if err := app.Gateway().SaveItem(cmd.Context(), desc, identity.Email, rec); err != nil {
				return fmt.Errorf("failed to save: %w", err)
			}
			fmt.Printf("✓ %s saved\n", desc.Name)
			return nil
		}

		return fmt.Errorf("no %s listing with id %s", desc.Name, args[1])
	},
}

var UnsaveCmd = &cobra.Command{
	Use:   "unsave <food|job|room> <id>",
	Short: "Remove a saved listing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		desc, err := descriptorFor(args[0])
		if err != nil {
			return err
		}

		identity, err := app.Session()
		if err != nil {
			return err
		}

		if err := app.Gateway().UnsaveItem(cmd.Context(), desc, identity.Email, args[1]); err != nil {
			return fmt.Errorf("failed to remove: %w", err)
		}

		fmt.Printf("✓ %s removed from saved items\n", desc.Name)
		return nil
	},
}

var SavedCmd = &cobra.Command{
	Use:   "saved <food|job|room>",
	Short: "Show your saved listings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		desc, err := descriptorFor(args[0])
		if err != nil {
			return err
		}

		identity, err := app.Session()
		if err != nil {
			return err
		}

		records, err := app.Gateway().SavedItems(cmd.Context(), desc, identity.Email)
		if err != nil {
			return err
		}

		printRecords(desc, records)
		return nil
	},
}
