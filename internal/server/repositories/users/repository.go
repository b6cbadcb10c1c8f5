package users

import (
	"context"

	"github.com/hwdelite/notesvc/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Update persists the mutable fields of an existing user: name,
	// password hash, verified flag, and the OTP column triple.
	Update(ctx context.Context, user *models.User) error
}
