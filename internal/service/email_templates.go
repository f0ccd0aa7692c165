package service

import "fmt"

func resetOTPEmailTemplate(otp, appName string) (string, string) {
	subject := "Your Password Reset OTP"
	body := fmt.Sprintf(`Use this OTP to reset your password: %s

The code expires in 10 minutes and can only be used once.

If you didn't request this, you can safely ignore this email. Your password won't be changed.

Best,
The %s Team`, otp, appName)

	return subject, body
}

func welcomeEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account has been approved and you can now sign in.

If you have questions, reach out to our support team.

Best,
The %s Team`, name, appName)

	return subject, body
}
