package models

import "time"

// Signup methods recorded on a user.
const (
	SignupMethodEmail  = "email"
	SignupMethodGoogle = "google"
	SignupMethodGithub = "github"
)

// User is a registered account keyed by lowercased email. PasswordHash is
// empty for OTP-only accounts. OTP is nil unless a passcode is live.
type User struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	SignupMethod  string
	EmailVerified bool
	OTP           *OTP
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
