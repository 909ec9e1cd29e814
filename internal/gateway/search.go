package gateway

import (
	"context"
	"net/http"
	"net/url"

	"clusterview/internal/domain/resource"
	"clusterview/internal/domain/session"
)

// RoomSearch are the server-side room filters. Empty fields match
// everything; PriceRange is a bucket string like "5000-10000" or
// "20000+".
type RoomSearch struct {
	Type       string
	PriceRange string
	Location   string
}

// SearchRooms fetches rooms matching the filters. Unlike the other
// listing types, room filtering happens on the gateway.
func (c *Client) SearchRooms(ctx context.Context, identity session.Session, search RoomSearch) ([]resource.Record, error) {
	body := map[string]string{
		"email":      identity.Email,
		"password":   identity.Password,
		"type":       search.Type,
		"priceRange": search.PriceRange,
		"location":   search.Location,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/search-room", body)
	if err != nil {
		return nil, err
	}

	var records []resource.Record
	if err := c.parseResponse(resp, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// SearchJobs fetches jobs matching the keyword. The endpoint takes no
// identity; an empty query returns everything.
func (c *Client) SearchJobs(ctx context.Context, query string) ([]resource.Record, error) {
	q := url.Values{}
	q.Set("query", query)

	resp, err := c.doGet(ctx, "/search-job?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var records []resource.Record
	if err := c.parseResponse(resp, &records); err != nil {
		return nil, err
	}

	return records, nil
}
