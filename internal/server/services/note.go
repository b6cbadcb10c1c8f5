package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hwdelite/notesvc/internal/common"
	"github.com/hwdelite/notesvc/internal/server/models"
	"github.com/hwdelite/notesvc/internal/server/repositories/repomanager"
)

// NoteService provides ownership-scoped note CRUD. There is no update
// operation: notes are immutable after creation except for deletion.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

func (s *NoteService) Create(ctx context.Context, userID, title, content string) (*models.Note, error) {
	note := &models.Note{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	repo := s.repomanager.Notes(s.db)
	note, err := repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return note, nil
}

func (s *NoteService) List(ctx context.Context, userID string) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	notes, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return notes, nil
}

// Get returns the note only if it exists and belongs to userID. A malformed
// id is indistinguishable from an absent note.
func (s *NoteService) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Notes(s.db).GetByID(ctx, id, userID)
}

// Delete removes the note after an ownership-matching existence check so the
// caller can distinguish 404 from a silent no-op.
func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	if err := uuid.Validate(id); err != nil {
		return common.ErrorNotFound
	}
	return s.repomanager.Notes(s.db).Delete(ctx, id, userID)
}
