// Package repomanager wires concrete repository implementations to a
// database handle. Repositories are created per call against a dbx.DBTX so
// the same factory serves both plain connections and transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/hwdelite/notesvc/internal/dbx"
	"github.com/hwdelite/notesvc/internal/server/repositories/notes"
	"github.com/hwdelite/notesvc/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
