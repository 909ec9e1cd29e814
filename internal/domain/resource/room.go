package resource

import (
	"fmt"
	"regexp"
)

var contactNoPattern = regexp.MustCompile(`^\d{10}$`)

// Room returns the descriptor for room listings. The contact number is
// checked locally before any request goes out.
func Room() Descriptor {
	return Descriptor{
		Name:    "room",
		Plural:  "rooms",
		IDParam: "roomId",

		FetchMode:  FetchAdmin,
		FetchPath:  "/fetch-all-rooms",
		InsertPath: "/insert-room",
		UpdatePath: "/update-room",
		DeletePath: "/delete-room",

		Fields:   []string{"roomType", "price", "location", "contactNo", "forroom"},
		Required: []string{"roomType", "price", "location", "contactNo", "forroom"},
		Searchable: []string{
			"roomType", "price", "location", "contactNo", "forroom",
		},

		BoolFields: []string{"availability"},

		Attachment:      SlotImages,
		AttachmentField: "images",

		Validate: func(fields map[string]string) error {
			if !contactNoPattern.MatchString(fields["contactNo"]) {
				return fmt.Errorf("contact number must be exactly 10 digits")
			}
			return nil
		},
	}
}

// MyRoom is the self-scoped variant for the profile screen.
func MyRoom() Descriptor {
	d := Room()
	d.FetchMode = FetchSelf
	d.FetchPath = "/fetch-rooms"
	return d
}
