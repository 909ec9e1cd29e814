// cmd/client/cmd/listings/add.go
package listings

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addSets    []string
	addImages  []string
	addToggles []string
)

var AddCmd = &cobra.Command{
	Use:   "add <food|job|room>",
	Short: "Create a new listing",
	Long: `Create a listing from --set name=value pairs.

All of the type's fields are required; attachments are added with
--image. Validation runs locally before anything is sent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := managerFor(cmd, args[0])
		if err != nil {
			return err
		}

		if err := m.StartInsert(); err != nil {
			return err
		}

		fields, err := parseSets(addSets)
		if err != nil {
			return err
		}
		for name, value := range fields {
			if err := m.UpdateField(name, value); err != nil {
				return err
			}
		}
		for _, name := range addToggles {
			if err := m.UpdateField(name, ""); err != nil {
				return err
			}
		}

		if len(addImages) > 0 {
			uploads, err := loadUploads(addImages)
			if err != nil {
				return err
			}
			if err := m.Attach(uploads...); err != nil {
				return err
			}
		}

		if err := m.Submit(cmd.Context()); err != nil {
			printOutcome(m)
			return fmt.Errorf("listing not created")
		}

		printOutcome(m)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringArrayVar(&addSets, "set", nil, "field value as name=value (repeatable)")
	AddCmd.Flags().StringArrayVar(&addImages, "image", nil, "attachment file (repeatable)")
	AddCmd.Flags().StringArrayVar(&addToggles, "toggle", nil, "flip a boolean field (repeatable)")
}
