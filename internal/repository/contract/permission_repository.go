package contract

import (
	"context"

	"collabnote-be/internal/entity"

	"github.com/google/uuid"
)

type PermissionRepository interface {
	// ReplaceForNote drops the note's access list and writes perms in its place.
	ReplaceForNote(ctx context.Context, noteId uuid.UUID, perms []entity.NotePermission) error
	DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error
}
