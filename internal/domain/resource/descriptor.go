package resource

// FetchMode selects how the collection endpoint expects the caller's
// identity: admin endpoints take it on the query string, self-scoped
// endpoints take it in a JSON body.
type FetchMode int

const (
	FetchAdmin FetchMode = iota
	FetchSelf
)

// AttachmentSlot describes the shape of a descriptor's file slot.
type AttachmentSlot int

const (
	SlotNone AttachmentSlot = iota
	// SlotImages is a multi-image slot: retained references are re-sent
	// as repeated existingImages strings, new files as images parts.
	SlotImages
	// SlotLogo is a single-file slot; when no new file is attached the
	// gateway keeps the stored one.
	SlotLogo
)

// Descriptor parameterizes the generic resource manager for one listing
// type. Each type supplies only its descriptor; all CRUD behavior is
// shared.
type Descriptor struct {
	Name    string
	Plural  string
	IDParam string

	FetchMode  FetchMode
	FetchPath  string
	InsertPath string
	UpdatePath string
	DeletePath string

	// Fields is the edit form in display order; Required the subset that
	// must be non-empty before a mutation is sent.
	Fields   []string
	Required []string

	// Searchable fields are matched locally by Filter; a field absent on
	// a record never matches.
	Searchable []string

	// BoolFields toggle rather than set; their seed default is true.
	BoolFields []string

	Attachment      AttachmentSlot
	AttachmentField string

	// ReadOnly descriptors (users, support queries) have no mutation
	// endpoints; the manager exposes Load/Filter/Sort only.
	ReadOnly bool

	// DateFields are compared as timestamps when sorting.
	DateFields []string

	// Validate runs after the required-field check; nil means no extra
	// constraints.
	Validate func(fields map[string]string) error
}

// IsRequired reports whether the named field must be non-empty.
func (d Descriptor) IsRequired(name string) bool {
	for _, f := range d.Required {
		if f == name {
			return true
		}
	}
	return false
}

// IsBool reports whether the named field is a toggle.
func (d Descriptor) IsBool(name string) bool {
	for _, f := range d.BoolFields {
		if f == name {
			return true
		}
	}
	return false
}

// IsDate reports whether the named field sorts as a timestamp.
func (d Descriptor) IsDate(name string) bool {
	for _, f := range d.DateFields {
		if f == name {
			return true
		}
	}
	return false
}
