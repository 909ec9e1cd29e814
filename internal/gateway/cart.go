package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"clusterview/internal/domain/resource"
)

// SaveItem adds a listing to the user's saved items. The gateway takes
// the whole record payload, not just the identifier.
func (c *Client) SaveItem(ctx context.Context, desc resource.Descriptor, userEmail string, rec resource.Record) error {
	body := map[string]any{
		"userEmail": userEmail,
		desc.Name:   rec,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/save-"+desc.Name, body)
	if err != nil {
		return err
	}

	return c.parseResponse(resp, nil)
}

// UnsaveItem removes a saved listing by identifier.
func (c *Client) UnsaveItem(ctx context.Context, desc resource.Descriptor, userEmail, id string) error {
	body := map[string]string{
		"userEmail":  userEmail,
		desc.IDParam: id,
	}

	resp, err := c.doJSON(ctx, http.MethodDelete, "/unsave-"+desc.Name, body)
	if err != nil {
		return err
	}

	return c.parseResponse(resp, nil)
}

// SavedItems fetches the user's saved listings for one resource type.
func (c *Client) SavedItems(ctx context.Context, desc resource.Descriptor, userEmail string) ([]resource.Record, error) {
	q := url.Values{}
	q.Set("email", userEmail)

	resp, err := c.doGet(ctx, fmt.Sprintf("/get-saved-%s?%s", desc.Plural, q.Encode()))
	if err != nil {
		return nil, err
	}

	var records []resource.Record
	if err := c.parseResponse(resp, &records); err != nil {
		return nil, err
	}

	return records, nil
}
