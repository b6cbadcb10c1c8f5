package notes

import (
	"context"

	"github.com/hwdelite/notesvc/internal/server/models"
)

// Repository persists notes. Every read and delete is scoped to an owning
// user id so one user's notes are invisible to another.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)
	Delete(ctx context.Context, id, userID string) error
}
