package gateway

import (
	"context"
	"fmt"
	"net/http"

	"clusterview/internal/domain/user"
)

const loginSuccessMessage = "Login Successful"

// Login posts the credential pair. Anything other than the gateway's
// literal success message is treated as a failed login.
func (c *Client) Login(ctx context.Context, creds user.Credentials) error {
	body := map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/login", body)
	if err != nil {
		return err
	}

	var result struct {
		Message string `json:"message"`
	}
	if err := c.parseResponse(resp, &result); err != nil {
		return err
	}

	if result.Message != loginSuccessMessage {
		return fmt.Errorf("login rejected: %s", result.Message)
	}

	return nil
}

// SendOTP requests a one-time code delivered out of band to the given
// address.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/send-otp", map[string]string{"email": email})
	if err != nil {
		return err
	}

	return c.parseResponse(resp, nil)
}

// VerifyOTP submits the code the user received.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{
		"email": email,
		"otp":   otp,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/verify-otp", body)
	if err != nil {
		return err
	}

	return c.parseResponse(resp, nil)
}

// Register completes registration with the fields buffered through the
// OTP exchange. Returns the gateway's confirmation message.
func (c *Client) Register(ctx context.Context, reg user.Registration) (string, error) {
	body := map[string]string{
		"username":       reg.Username,
		"email":          reg.Email,
		"password":       reg.Password,
		"favoriteAnimal": reg.FavoriteAnimal,
		"contactNumber":  reg.ContactNumber,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/register", body)
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

// RecoverPassword exchanges the recovery answer for the account
// password. The gateway hands the password back in cleartext; see the
// design notes before exposing it anywhere.
func (c *Client) RecoverPassword(ctx context.Context, rec user.Recovery) (string, error) {
	body := map[string]string{
		"email":          rec.Email,
		"favoriteAnimal": rec.FavoriteAnimal,
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/forgot-password", body)
	if err != nil {
		return "", err
	}

	var result struct {
		Password string `json:"password"`
	}
	if err := c.parseResponse(resp, &result); err != nil {
		return "", err
	}

	if result.Password == "" {
		return "", fmt.Errorf("no password in recovery response")
	}

	return result.Password, nil
}
