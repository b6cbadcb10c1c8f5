package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTP_Expired(t *testing.T) {
	now := time.Now()
	otp := &OTP{Code: "123456", IssuedAt: now, ExpiresAt: now.Add(5 * time.Minute)}

	assert.False(t, otp.Expired(now))
	assert.False(t, otp.Expired(now.Add(5*time.Minute)))
	assert.True(t, otp.Expired(now.Add(5*time.Minute+time.Second)))
}

func TestOTP_Matches(t *testing.T) {
	otp := &OTP{Code: "123456"}

	assert.True(t, otp.Matches("123456"))
	assert.False(t, otp.Matches("654321"))
	assert.False(t, otp.Matches(""))
	assert.False(t, otp.Matches("1234567"))
}
