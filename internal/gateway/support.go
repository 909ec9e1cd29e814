package gateway

import (
	"context"
	"net/http"
)

// SubmitQuery files a support query and returns the gateway's
// confirmation message.
func (c *Client) SubmitQuery(ctx context.Context, name, email, query string) (string, error) {
	body := map[string]string{
		"name":  name,
		"email": email,
		"query": query,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/submit-query", body)
	if err != nil {
		return "", err
	}

	var result struct {
		Message string `json:"message"`
	}
	if err := c.parseResponse(resp, &result); err != nil {
		return "", err
	}

	return result.Message, nil
}
