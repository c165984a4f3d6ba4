package contract

import (
	"context"

	"github.com/google/uuid"
)

type ViewCounter interface {
	Increment(ctx context.Context, noteId uuid.UUID) (int64, error)
	Count(ctx context.Context, noteId uuid.UUID) (int64, error)
	Reset(ctx context.Context, noteId uuid.UUID) error
}
