package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Mailer is the narrow mail-transport contract the auth and admin flows
// consume. Tests substitute an in-memory implementation.
type Mailer interface {
	SendResetOTP(email, otp string) error
	SendWelcome(email, name string) error
}

type EmailService struct {
	client    *resend.Client
	fromEmail string
	appName   string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appName:   appName,
		isDev:     isDev,
	}
}

// SendResetOTP dispatches the one-time password reset code.
func (s *EmailService) SendResetOTP(email, otp string) error {
	subject, body := resetOTPEmailTemplate(otp, s.appName)
	return s.send("reset_otp", email, subject, body)
}

// SendWelcome notifies a user that an admin approved their account.
func (s *EmailService) SendWelcome(email, name string) error {
	subject, body := welcomeEmailTemplate(name, s.appName)
	return s.send("welcome", email, subject, body)
}

func (s *EmailService) send(kind, email, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", email, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", email)
	}
	return err
}
