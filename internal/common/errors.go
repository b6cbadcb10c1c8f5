// Package common defines sentinel errors shared across notesvc layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors.
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// OTP lifecycle errors.
	ErrOTPNotRequested = errors.New("otp not requested")
	ErrOTPInvalid      = errors.New("invalid or expired otp")
)
