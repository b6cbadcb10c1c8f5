// Package mailer delivers one-time passcodes to users by email.
package mailer

import (
	"context"
	"fmt"
	"time"
)

// Sender is the outbound mail dependency of the auth service. Implementations
// must not retry: a failed send surfaces to the caller as-is.
type Sender interface {
	SendOTP(ctx context.Context, toEmail, toName, code string, validity time.Duration) error
}

// otpSubject is the subject line for passcode mails.
const otpSubject = "Your OTP Code for Highway App"

// otpHTMLBody renders the passcode mail body.
func otpHTMLBody(name, code string, validity time.Duration) string {
	if name == "" {
		name = "User"
	}
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; text-align: center; padding: 20px;">
  <h2 style="color: #333;">Your One-Time Password (OTP)</h2>
  <p style="font-size: 16px;">Hi %s,</p>
  <p style="font-size: 18px; font-weight: bold; background: #f2f2f2; padding: 10px; display: inline-block;">%s</p>
  <p style="font-size: 14px; color: #555;">This OTP is valid for %d minutes.</p>
</div>`, name, code, int(validity.Minutes()))
}

// otpTextBody is the plain-text alternative for clients without HTML.
func otpTextBody(name, code string, validity time.Duration) string {
	if name == "" {
		name = "User"
	}
	return fmt.Sprintf("Hi %s,\n\nYour one-time password is %s. It is valid for %d minutes.\n", name, code, int(validity.Minutes()))
}
