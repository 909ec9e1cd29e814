package resource

// Queries returns the read-only descriptor for the admin support query
// list. Queries sort on any field; submittedAt compares as a timestamp.
func Queries() Descriptor {
	return Descriptor{
		Name:    "query",
		Plural:  "queries",
		IDParam: "queryId",

		FetchMode: FetchAdmin,
		FetchPath: "/fetch-all-queries",

		Searchable: []string{"name"},
		DateFields: []string{"submittedAt"},

		ReadOnly: true,
	}
}
