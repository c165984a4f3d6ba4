package contract

import (
	"context"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/repository/specification"

	"github.com/google/uuid"
)

// RevisionRepository has no Update: revisions are immutable once created.
type RevisionRepository interface {
	Create(ctx context.Context, revision *entity.Revision) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Revision, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Revision, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindAuthorIds(ctx context.Context, noteId uuid.UUID) ([]string, error)
	DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error
}
