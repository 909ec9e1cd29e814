package gateway

import (
	"context"
	"net/http"

	"clusterview/internal/domain/session"
	"clusterview/internal/domain/user"
)

// UserDetails fetches the account record for the session identity.
func (c *Client) UserDetails(ctx context.Context, identity session.Session) (user.Profile, error) {
	body := map[string]string{
		"email":    identity.Email,
		"password": identity.Password,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/get-user-details", body)
	if err != nil {
		return user.Profile{}, err
	}

	var profile user.Profile
	if err := c.parseResponse(resp, &profile); err != nil {
		return user.Profile{}, err
	}

	return profile, nil
}

// UpdateUserDetails saves the editable profile fields and returns the
// gateway's updated copy.
func (c *Client) UpdateUserDetails(ctx context.Context, identity session.Session, profile user.Profile) (user.Profile, error) {
	body := map[string]string{
		"email":          identity.Email,
		"password":       identity.Password,
		"username":       profile.Username,
		"favoriteAnimal": profile.FavoriteAnimal,
		"contactNumber":  profile.ContactNumber,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/update-user-details", body)
	if err != nil {
		return user.Profile{}, err
	}

	var result struct {
		UpdatedUser user.Profile `json:"updatedUser"`
	}
	if err := c.parseResponse(resp, &result); err != nil {
		return user.Profile{}, err
	}

	return result.UpdatedUser, nil
}
