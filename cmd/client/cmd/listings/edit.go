// cmd/client/cmd/listings/edit.go
package listings

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editSets       []string
	editImages     []string
	editToggles    []string
	editDropImages []string
)

var EditCmd = &cobra.Command{
	Use:   "edit <food|job|room> <id>",
	Short: "Edit one of your listings",
	Long: `Edit a listing in place.

Fields not named in a --set keep their current values. Attachments
kept from the existing listing are re-sent as references; --drop-image
removes one, --image adds new files.`,
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

		fields, err := parseSets(editSets)
		if err != nil {
			return err
		}
		for name, value := range fields {
			if err := m.UpdateField(name, value); err != nil {
				return err
			}
		}
		for _, name := range editToggles {
			if err := m.UpdateField(name, ""); err != nil {
				return err
			}
		}

		for _, ref := range editDropImages {
			if err := m.DropExisting(ref); err != nil {
				return err
			}
		}
		if len(editImages) > 0 {
			uploads, err := loadUploads(editImages)
			if err != nil {
				return err
			}
			if err := m.Attach(uploads...); err != nil {
				return err
			}
		}

		if err := m.Submit(cmd.Context()); err != nil {
			printOutcome(m)
			return fmt.Errorf("listing not updated")
		}

		printOutcome(m)
		return nil
	},
}

func init() {
	EditCmd.Flags().StringArrayVar(&editSets, "set", nil, "field value as name=value (repeatable)")
	EditCmd.Flags().StringArrayVar(&editImages, "image", nil, "attachment file (repeatable)")
	EditCmd.Flags().StringArrayVar(&editToggles, "toggle", nil, "flip a boolean field (repeatable)")
	EditCmd.Flags().StringArrayVar(&editDropImages, "drop-image", nil, "drop a kept attachment reference (repeatable)")
}
