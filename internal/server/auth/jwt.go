// Package auth implements the credential primitives of notesvc: signed
// access tokens, bcrypt password hashes, and one-time passcodes.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hwdelite/notesvc/internal/common"
)

// Claims is the access token payload: registered claims plus the identity
// fields the API needs to rebuild a user projection.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	SignupMethod string `json:"signup_method"`
}

// GenerateToken mints an HS256-signed access token for the given identity,
// expiring after validityDuration.
func GenerateToken(userID, email, signupMethod string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:       userID,
		Email:        email,
		SignupMethod: signupMethod,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of a token string and returns
// its claims. Any parse or validation failure maps to common.ErrInvalidToken
// so callers need not distinguish malformed from expired.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
