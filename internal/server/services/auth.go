// Package services contains server-side business logic. This file implements
// AuthService, which handles OTP issuance and verification, password-based
// signup/login, and access token minting.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hwdelite/notesvc/internal/common"
	"github.com/hwdelite/notesvc/internal/dbx"
	"github.com/hwdelite/notesvc/internal/server/auth"
	"github.com/hwdelite/notesvc/internal/server/config"
	"github.com/hwdelite/notesvc/internal/server/mailer"
	"github.com/hwdelite/notesvc/internal/server/models"
	"github.com/hwdelite/notesvc/internal/server/repositories/repomanager"
)

// AuthResult bundles a freshly minted access token with the user it
// belongs to.
type AuthResult struct {
	Token string
	User  *models.User
}

// OTPRequestResult reports whether issuing an OTP created a new user, so the
// transport layer can phrase the acknowledgment accordingly.
type OTPRequestResult struct {
	Created bool
}

// AuthService provides authentication operations:
//   - RequestOTP: create-or-fetch a user, issue a passcode, email it
//   - VerifyOTP: consume a passcode and mint a token
//   - RegisterWithPassword / LoginWithPassword: the password-based path
type AuthService struct {
	db                  *sql.DB
	repomanager         repomanager.RepositoryManager
	sender              mailer.Sender
	jwtSecret           []byte
	accessTokenValidity time.Duration
	otpValidity         time.Duration
}

// NewAuthService constructs an AuthService from repositories, the mail
// sender, and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, sender mailer.Sender, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                  db,
		repomanager:         m,
		sender:              sender,
		jwtSecret:           []byte(cfg.JWTSecret),
		accessTokenValidity: cfg.AccessTokenValidityDuration,
		otpValidity:         cfg.OTPValidityDuration,
	}
}

// NormalizeEmail lowercases and trims an email address; all lookups and
// stored values go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RequestOTP issues a fresh passcode for the given email, creating the user
// record on first contact. Any previously live passcode is replaced
// unconditionally. The code is emailed and never returned to the caller.
func (s *AuthService) RequestOTP(ctx context.Context, email, name string) (*OTPRequestResult, error) {
	email = NormalizeEmail(email)

	otp, err := auth.GenerateOTP(s.otpValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var user *models.User
	created := false

	// Create-or-fetch and the OTP write happen in one transaction so a
	// concurrent first-signup race cannot interleave them.
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		var txErr error
		user, txErr = repo.GetByEmail(ctx, email)
		if txErr != nil {
			if !errors.Is(txErr, common.ErrorNotFound) {
				return txErr
			}
			user = &models.User{
				ID:           uuid.NewString(),
				Email:        email,
				Name:         name,
				SignupMethod: models.SignupMethodEmail,
			}
			if user, txErr = repo.Create(ctx, user); txErr != nil {
				return txErr
			}
			created = true
		}

		if name != "" && user.Name == "" {
			user.Name = name
		}
		user.OTP = otp

		return repo.Update(ctx, user)
	}); err != nil {
		return nil, fmt.Errorf("error storing otp: %w", err)
	}

	if err := s.sender.SendOTP(ctx, user.Email, user.Name, otp.Code, s.otpValidity); err != nil {
		return nil, fmt.Errorf("error sending otp: %w", err)
	}

	return &OTPRequestResult{Created: created}, nil
}

// VerifyOTP checks a submitted passcode against the stored one. On success
// the passcode is cleared (a code verifies at most once), the email is
// marked verified, and an access token is minted.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrOTPNotRequested
		}
		return nil, common.ErrorInternal
	}

	if user.OTP == nil {
		return nil, common.ErrOTPNotRequested
	}
	if !user.OTP.Matches(code) || user.OTP.Expired(time.Now()) {
		return nil, common.ErrOTPInvalid
	}

	user.OTP = nil
	user.EmailVerified = true
	if err := repo.Update(ctx, user); err != nil {
		return nil, common.ErrorInternal
	}

	return s.issueToken(user)
}

// RegisterWithPassword creates a user with a bcrypt password hash and logs
// them in. A duplicate email yields common.ErrorAlreadyExists.
func (s *AuthService) RegisterWithPassword(ctx context.Context, email, name, password string) (*AuthResult, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(email),
		Name:         name,
		PasswordHash: hash,
		SignupMethod: models.SignupMethodEmail,
	}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	return s.issueToken(user)
}

// LoginWithPassword verifies a password against the stored hash. User
// absence, a missing hash, and a mismatch all collapse into
// common.ErrInvalidCredentials. A successful login discards any live OTP.
func (s *AuthService) LoginWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	if user.OTP != nil {
		user.OTP = nil
		if err := repo.Update(ctx, user); err != nil {
			return nil, common.ErrorInternal
		}
	}

	return s.issueToken(user)
}

// GetUserByID fetches a user for the bearer-token middleware; tokens of
// deleted accounts fail here with common.ErrorNotFound.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, user.SignupMethod, s.jwtSecret, s.accessTokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{Token: token, User: user}, nil
}
