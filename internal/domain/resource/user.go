package resource

// Users returns the read-only descriptor for the admin user list.
func Users() Descriptor {
	return Descriptor{
		Name:    "user",
		Plural:  "users",
		IDParam: "userId",

		FetchMode: FetchAdmin,
		FetchPath: "/fetch-all-users",

		Searchable: []string{"username", "email", "password", "favoriteAnimal"},

		ReadOnly: true,
	}
}
