package resource

// Job returns the descriptor for job listings.
func Job() Descriptor {
	return Descriptor{
		Name:    "job",
		Plural:  "jobs",
		IDParam: "jobId",

		FetchMode:  FetchAdmin,
		FetchPath:  "/fetch-all-jobs",
		InsertPath: "/insert-job",
		UpdatePath: "/update-job",
		DeletePath: "/delete-job",

		Fields: []string{
			"title", "description", "company", "location", "salary",
			"vacancies", "experience", "skills", "qualification",
			"industryType", "employmentType", "education", "contactEmail",
		},
		Required: []string{
			"title", "description", "company", "location", "salary",
			"vacancies", "experience", "skills", "qualification",
			"industryType", "employmentType", "education", "contactEmail",
		},
		Searchable: []string{
			"title", "company", "location", "salary", "description",
			"experience", "skills", "qualification", "industryType",
			"employmentType", "education", "contactEmail",
			"userId.username", "userId.email",
		},

		Attachment:      SlotLogo,
		AttachmentField: "logo",
	}
}

// MyJob is the self-scoped variant for the profile screen; the gateway
// reuses its search endpoint with an empty query for this.
func MyJob() Descriptor {
	d := Job()
	d.FetchMode = FetchSelf
	d.FetchPath = "/search-job"
	return d
}
