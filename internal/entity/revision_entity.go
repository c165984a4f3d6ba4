package entity

import (
	"time"

	"github.com/google/uuid"
)

// Revision is an immutable full-content snapshot of a note.
type Revision struct {
	Id          int64
	NoteId      uuid.UUID
	Content     string
	AuthorId    *string
	Title       string
	Description string
	Tags        []string
	Length      int
	CreatedAt   time.Time
}
