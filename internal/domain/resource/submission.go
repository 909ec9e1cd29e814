package resource

// Upload is a new binary attachment read once at submit time.
type Upload struct {
	Filename string
	Data     []byte
}

// Submission is the mutation payload built from an edit buffer:
// scalar fields, toggles, retained attachment references, and new
// uploads. Retained references go out as repeated existingImages
// strings, uploads as binary parts.
type Submission struct {
	Fields   map[string]string
	Bools    map[string]bool
	Existing []string
	Uploads  []Upload
}
