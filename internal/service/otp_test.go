package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerTestUser(t *testing.T, svc *AuthService) string {
	t.Helper()

	user, err := svc.Register(RegisterInput{Name: "A", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	return user.ID
}

func TestIssueResetOTP_Success(t *testing.T) {
	svc, repo, mailer := newTestAuthService()
	userID := registerTestUser(t, svc)

	before := time.Now()
	err := svc.IssueResetOTP("a@x.com")
	require.NoError(t, err)

	user, err := repo.ByID(userID)
	require.NoError(t, err)
	require.True(t, user.HasActiveOTP())

	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), *user.ForgotPasswordOTP)

	// Expiry sits ten minutes out
	assert.WithinDuration(t, before.Add(10*time.Minute), *user.ForgotPasswordExpiry, 5*time.Second)

	// The same code was dispatched by mail
	require.Len(t, mailer.otps, 1)
	assert.Equal(t, "a@x.com", mailer.otps[0].email)
	assert.Equal(t, *user.ForgotPasswordOTP, mailer.otps[0].otp)
}

func TestIssueResetOTP_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	err := svc.IssueResetOTP("ghost@x.com")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestIssueResetOTP_DeliveryFailure(t *testing.T) {
	svc, repo, mailer := newTestAuthService()
	userID := registerTestUser(t, svc)
	mailer.failOTP = true

	err := svc.IssueResetOTP("a@x.com")
	assert.ErrorIs(t, err, ErrMailDelivery)

	// Issuance is not rolled back on delivery failure
	user, err := repo.ByID(userID)
	require.NoError(t, err)
	assert.True(t, user.HasActiveOTP())
}

func TestResetPassword_Success(t *testing.T) {
	svc, repo, mailer := newTestAuthService()
	userID := registerTestUser(t, svc)

	require.NoError(t, svc.IssueResetOTP("a@x.com"))
	otp := mailer.otps[0].otp

	err := svc.ResetPassword("a@x.com", otp, "newpassword1")
	require.NoError(t, err)

	user, err := repo.ByID(userID)
	require.NoError(t, err)

	// Both OTP fields cleared together, password rehashed
	assert.False(t, user.HasActiveOTP())
	assert.NoError(t, svc.ComparePassword("newpassword1", user.PasswordHash))
	assert.Error(t, svc.ComparePassword("password1", user.PasswordHash))
}

func TestResetPassword_SingleUse(t *testing.T) {
	svc, _, mailer := newTestAuthService()
	registerTestUser(t, svc)

	require.NoError(t, svc.IssueResetOTP("a@x.com"))
	otp := mailer.otps[0].otp

	require.NoError(t, svc.ResetPassword("a@x.com", otp, "newpassword1"))

	// The code was consumed; replaying it fails
	err := svc.ResetPassword("a@x.com", otp, "anotherpass1")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestResetPassword_WrongCode(t *testing.T) {
	svc, _, mailer := newTestAuthService()
	registerTestUser(t, svc)

	require.NoError(t, svc.IssueResetOTP("a@x.com"))
	wrong := "000000"
	if mailer.otps[0].otp == wrong {
		wrong = "000001"
	}

	err := svc.ResetPassword("a@x.com", wrong, "newpassword1")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestResetPassword_Expired(t *testing.T) {
	svc, repo, mailer := newTestAuthService()
	userID := registerTestUser(t, svc)

	require.NoError(t, svc.IssueResetOTP("a@x.com"))
	otp := mailer.otps[0].otp

	// Push the expiry into the past; the correct code must now be rejected
	require.NoError(t, repo.SetResetOTP(userID, otp, time.Now().Add(-time.Second)))

	err := svc.ResetPassword("a@x.com", otp, "newpassword1")
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestResetPassword_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	err := svc.ResetPassword("ghost@x.com", "123456", "newpassword1")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestResetPassword_MissingFields(t *testing.T) {
	svc, _, _ := newTestAuthService()

	tests := []struct {
		name                 string
		email, otp, password string
	}{
		{"missing email", "", "123456", "newpassword1"},
		{"missing otp", "a@x.com", "", "newpassword1"},
		{"missing password", "a@x.com", "123456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ResetPassword(tt.email, tt.otp, tt.password)
			var invalid *InvalidInputError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestGenerateOTP_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		require.GreaterOrEqual(t, otp, "100000")
		require.LessOrEqual(t, otp, "999999")
	}
}
