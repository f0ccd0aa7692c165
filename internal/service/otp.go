package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/territoria/territoria/internal/repository"
	"github.com/territoria/territoria/internal/validation"
)

// IssueResetOTP generates a 6-digit reset code, persists it with an absolute
// expiry and dispatches it by email. The record is written before dispatch,
// so a delivery failure leaves the code pending; the caller still gets
// ErrMailDelivery.
func (s *AuthService) IssueResetOTP(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" {
		return invalidInput("email is required")
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotRegistered
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	expiry := time.Now().Add(s.otpExpiry)

	err = s.userRepository.SetResetOTP(user.ID, otp, expiry)
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	err = s.mailer.SendResetOTP(user.Email, otp)
	if err != nil {
		slog.Error("reset otp delivery failed", "error", err, "email", user.Email)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	slog.Info("reset otp issued", "user_id", user.ID, "email", user.Email)
	return nil
}

// ResetPassword consumes a pending reset code. The submitted code must match
// the stored one exactly and the expiry must still be in the future. On
// success the password is rehashed and both OTP fields are cleared in a
// single conditional update, making the code single-use.
func (s *AuthService) ResetPassword(email, otp, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" || otp == "" || newPassword == "" {
		return invalidInput("all fields are required")
	}

	err := validation.ValidatePassword(newPassword)
	if err != nil {
		return invalidInput(err.Error())
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasActiveOTP() || *user.ForgotPasswordOTP != otp {
		return ErrInvalidOTP
	}

	// Expiry must still be strictly in the future
	if !user.ForgotPasswordExpiry.After(time.Now()) {
		return ErrOTPExpired
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepository.ConsumeResetOTP(user.ID, otp, hash)
	if err != nil {
		if errors.Is(err, repository.ErrOTPMismatch) {
			// A concurrent consume won the conditional update
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	slog.Info("password reset via otp", "user_id", user.ID, "email", user.Email)
	return nil
}

// generateOTP draws a 6-digit code uniformly from [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
