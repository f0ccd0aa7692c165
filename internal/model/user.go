package model

import (
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID                   string     `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	Email                string     `db:"email" json:"email"`
	PasswordHash         string     `db:"password_hash" json:"-"`
	Congregation         string     `db:"congregation" json:"congregation"`
	ReferralSource       string     `db:"referral_source" json:"referralSource"`
	Avatar               string     `db:"avatar" json:"-"`
	VerifyEmail          bool       `db:"verify_email" json:"verify_email"`
	Role                 string     `db:"role" json:"role"`
	ForgotPasswordOTP    *string    `db:"forgot_password_otp" json:"-"`
	ForgotPasswordExpiry *time.Time `db:"forgot_password_expiry" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updatedAt"`

	// Computed fields (not in database)
	AvatarURL string `db:"-" json:"avatarUrl,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasActiveOTP reports whether a reset code has been issued and not yet
// consumed. Expiry is checked lazily when the code is submitted.
func (u *User) HasActiveOTP() bool {
	return u.ForgotPasswordOTP != nil && u.ForgotPasswordExpiry != nil
}

// PublicUser is the projection returned by the admin user listing.
type PublicUser struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Congregation   string    `db:"congregation" json:"congregation"`
	ReferralSource string    `db:"referral_source" json:"referralSource"`
	VerifyEmail    bool      `db:"verify_email" json:"verify_email"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
