package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"clusterview/internal/domain/resource"
	"clusterview/internal/domain/session"
)

// FetchCollection loads the full collection for the descriptor. Admin
// descriptors pass the identity on the query string; self-scoped ones
// post it as a JSON body. The response is the raw record array, kept
// verbatim.
func (c *Client) FetchCollection(ctx context.Context, desc resource.Descriptor, identity session.Session) ([]resource.Record, error) {
	var resp *http.Response
	var err error

	switch desc.FetchMode {
	case resource.FetchSelf:
		body := map[string]string{
			"email":    identity.Email,
			"password": identity.Password,
		}
		if desc.FetchPath == "/search-job" {
			// The gateway reuses its search endpoint for own-listing
			// fetches; an empty query returns everything.
			resp, err = c.doJSON(ctx, http.MethodPost, desc.FetchPath, map[string]string{
				"email":    identity.Email,
				"password": identity.Password,
				"query":    "",
			})
		} else {
			resp, err = c.doJSON(ctx, http.MethodPost, desc.FetchPath, body)
		}
	default:
		q := url.Values{}
		q.Set("email", identity.Email)
		q.Set("password", identity.Password)
		resp, err = c.doGet(ctx, desc.FetchPath+"?"+q.Encode())
	}

	if err != nil {
		return nil, err
	}

	var records []resource.Record
	if err := c.parseResponse(resp, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// Update sends the edit buffer as a multipart form to the descriptor's
// update endpoint: identifier and identity first, scalar fields and
// toggles next, retained references as repeated existingImages strings,
// new files as binary parts.
func (c *Client) Update(ctx context.Context, desc resource.Descriptor, id string, identity session.Session, sub resource.Submission) error {
	if desc.UpdatePath == "" {
		return fmt.Errorf("%s records cannot be updated", desc.Name)
	}

	form := map[string]string{desc.IDParam: id}
	return c.mutate(ctx, desc.UpdatePath, desc, form, identity, sub)
}

// Insert creates a new listing through the descriptor's insert
// endpoint; the payload shape matches Update minus the identifier.
func (c *Client) Insert(ctx context.Context, desc resource.Descriptor, identity session.Session, sub resource.Submission) error {
	if desc.InsertPath == "" {
		return fmt.Errorf("%s records cannot be inserted", desc.Name)
	}

	return c.mutate(ctx, desc.InsertPath, desc, map[string]string{}, identity, sub)
}

func (c *Client) mutate(ctx context.Context, path string, desc resource.Descriptor, form map[string]string, identity session.Session, sub resource.Submission) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	form["email"] = identity.Email
	form["password"] = identity.Password
	for name, value := range form {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to build form: %w", err)
		}
	}

	for _, name := range desc.Fields {
		if err := w.WriteField(name, sub.Fields[name]); err != nil {
			return fmt.Errorf("failed to build form: %w", err)
		}
	}

	for _, name := range desc.BoolFields {
		value := "false"
		if sub.Bools[name] {
			value = "true"
		}
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to build form: %w", err)
		}
	}

	switch desc.Attachment {
	case resource.SlotImages:
		for _, ref := range sub.Existing {
			if err := w.WriteField("existingImages", ref); err != nil {
				return fmt.Errorf("failed to build form: %w", err)
			}
		}
		for _, up := range sub.Uploads {
			part, err := w.CreateFormFile("images", up.Filename)
			if err != nil {
				return fmt.Errorf("failed to attach image: %w", err)
			}
			if _, err := part.Write(up.Data); err != nil {
				return fmt.Errorf("failed to attach image: %w", err)
			}
		}
	case resource.SlotLogo:
		// A missing logo part keeps the stored one; only the first
		// upload is meaningful for a single-file slot.
		if len(sub.Uploads) > 0 {
			part, err := w.CreateFormFile("logo", sub.Uploads[0].Filename)
			if err != nil {
				return fmt.Errorf("failed to attach logo: %w", err)
			}
			if _, err := part.Write(sub.Uploads[0].Data); err != nil {
				return fmt.Errorf("failed to attach logo: %w", err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return err
	}

	return c.parseResponse(resp, nil)
}

// Delete removes the identified record. The gateway models deletes as
// JSON POSTs rather than HTTP DELETEs.
func (c *Client) Delete(ctx context.Context, desc resource.Descriptor, id string, identity session.Session) error {
	if desc.DeletePath == "" {
		return fmt.Errorf("%s records cannot be deleted", desc.Name)
	}

	body := map[string]string{
		desc.IDParam: id,
		"email":      identity.Email,
		"password":   identity.Password,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, desc.DeletePath, body)
	if err != nil {
		return err
	}

	return c.parseResponse(resp, nil)
}
