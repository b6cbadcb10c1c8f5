package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hwdelite/notesvc/internal/common"
	"github.com/hwdelite/notesvc/internal/dbx"
	"github.com/hwdelite/notesvc/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	query :=
		`INSERT INTO notes (id, user_id, title, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content).
		Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {

	query :=
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content,
			&note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return notes, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {

	query :=
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE id = $1 AND user_id = $2
		 `

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {

	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
