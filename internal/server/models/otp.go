package models

import (
	"crypto/subtle"
	"time"
)

// OTP is a short-lived one-time passcode bound to a user record. A user has
// at most one live OTP: issuing a new one replaces the previous pair
// unconditionally, and a successful verification clears it.
type OTP struct {
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the passcode is past its expiry at the given time.
func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// Matches compares a submitted code against the stored one in constant time.
func (o *OTP) Matches(code string) bool {
	return subtle.ConstantTimeCompare([]byte(o.Code), []byte(code)) == 1
}
