package models

import "time"

// Note is a user-owned text record. Notes are immutable after creation
// except for full deletion; every read and delete is filtered by UserID.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
