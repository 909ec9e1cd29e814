package user

import (
	"fmt"
	"regexp"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	otpPattern   = regexp.MustCompile(`^\d{6}$`)
)

// Validation is presence- and pattern-only, mirroring the gateway's
// expectations: required fields non-empty, 10-digit contact numbers,
// 6-digit one-time codes. Format checks beyond that are the gateway's
// job.

// ValidateLogin checks the login form.
func ValidateLogin(c Credentials) error {
	if c.Email == "" {
		return fmt.Errorf("email is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ValidateRegistration checks the registration form.
func ValidateRegistration(r Registration) error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if r.FavoriteAnimal == "" {
		return fmt.Errorf("favorite animal is required")
	}
	if err := ValidatePhone(r.ContactNumber); err != nil {
		return err
	}
	return nil
}

// ValidateRecovery checks the forgot-password form.
func ValidateRecovery(r Recovery) error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.FavoriteAnimal == "" {
		return fmt.Errorf("favorite animal is required")
	}
	return nil
}

// ValidatePhone requires exactly 10 digits.
func ValidatePhone(contactNumber string) error {
	if !phonePattern.MatchString(contactNumber) {
		return fmt.Errorf("contact number must be 10 digits")
	}
	return nil
}

// ValidateOTP requires exactly 6 digits.
func ValidateOTP(code string) error {
	if !otpPattern.MatchString(code) {
		return fmt.Errorf("one-time code must be 6 digits")
	}
	return nil
}
