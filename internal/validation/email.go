package validation

import (
	"errors"
	"regexp"
)

// emailPattern accepts the usual local@domain.tld shape. Deliberately
// stricter than RFC 5322: bare domains without a TLD are rejected.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email format and length
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}

	// RFC 5321: total address max 254 characters
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}

	return nil
}
