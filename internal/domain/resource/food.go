package resource

// Food returns the descriptor for food vendor listings.
func Food() Descriptor {
	return Descriptor{
		Name:    "food",
		Plural:  "foods",
		IDParam: "foodId",

		FetchMode:  FetchAdmin,
		FetchPath:  "/fetch-all-foods",
		InsertPath: "/insert-food",
		UpdatePath: "/update-food",
		DeletePath: "/delete-food",

		Fields:   []string{"foodname", "shopname", "description", "price", "category", "address"},
		Required: []string{"foodname", "shopname", "description", "price", "category", "address"},
		Searchable: []string{
			"foodname", "shopname", "category", "price", "address", "description",
		},

		Attachment:      SlotImages,
		AttachmentField: "image",
	}
}

// MyFood is the self-scoped variant used on the profile screen: the
// collection is fetched with the session identity in the body and only
// contains the caller's own listings.
func MyFood() Descriptor {
	d := Food()
	d.FetchMode = FetchSelf
	d.FetchPath = "/fetch-food"
	return d
}

// ShopFood is the buyer-side variant: the search endpoint returns every
// listing and filtering happens locally, as on the shop screen.
func ShopFood() Descriptor {
	d := Food()
	d.FetchMode = FetchSelf
	d.FetchPath = "/search-food"
	return d
}
