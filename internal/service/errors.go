package service

import (
	"errors"
)

// Sentinel errors classified by the handler layer into HTTP responses.
var (
	ErrEmailExists       = errors.New("email already registered")
	ErrNotRegistered     = errors.New("user not registered")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrNotApproved       = errors.New("account not approved by admin yet")
	ErrInvalidOTP        = errors.New("invalid otp")
	ErrOTPExpired        = errors.New("otp expired")
	ErrMailDelivery      = errors.New("failed to send email")
	ErrStorageDisabled   = errors.New("object storage is not configured")
)

// InvalidInputError reports malformed or missing input. The reason is safe to
// show to the caller.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

func invalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}
