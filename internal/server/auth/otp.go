package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/hwdelite/notesvc/internal/server/models"
)

// otpRange covers the 6-digit decimal codes 100000..999999.
const otpRange = 900000

// GenerateOTP issues a fresh 6-digit passcode valid for the given duration.
// Codes are drawn from crypto/rand, uniform over [100000, 999999].
func GenerateOTP(validity time.Duration) (*models.OTP, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return nil, fmt.Errorf("otp generation error: %w", err)
	}

	now := time.Now()
	return &models.OTP{
		Code:      fmt.Sprintf("%06d", n.Int64()+100000),
		IssuedAt:  now,
		ExpiresAt: now.Add(validity),
	}, nil
}
