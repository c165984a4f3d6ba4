package contract

import (
	"context"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/repository/specification"

	"github.com/google/uuid"
)

type HistoryRepository interface {
	// Upsert inserts entry, or on an existing (user, note) pair overwrites only updateColumns.
	Upsert(ctx context.Context, entry *entity.HistoryEntry, updateColumns ...string) error
	Update(ctx context.Context, entry *entity.HistoryEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HistoryEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HistoryEntry, error)
	Delete(ctx context.Context, userId string, noteId uuid.UUID) error
	DeleteByUserId(ctx context.Context, userId string) error
	DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error
}
