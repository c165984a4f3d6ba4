package unitofwork

import (
	"context"
	"errors"
	"testing"
	"time"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/repository/specification"
	"collabnote-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNote() *entity.Note {
	owner := "alice"
	return &entity.Note{
		Id:         uuid.New(),
		OwnerId:    &owner,
		Visibility: entity.SpecialVisibility{Everyone: entity.AccessNone, LoggedIn: entity.AccessNone},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestWithinCommits(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	uow := NewRepositoryFactory(db).NewUnitOfWork(ctx)
	note := newNote()

	err := Within(ctx, uow, func() error {
		return uow.NoteRepository().Create(ctx, note)
	})
	require.NoError(t, err)
	assert.False(t, uow.InTransaction())

	found, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", *found.OwnerId)
}

func TestWithinRollsBackOnError(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	uow := NewRepositoryFactory(db).NewUnitOfWork(ctx)
	note := newNote()
	boom := errors.New("boom")

	err := Within(ctx, uow, func() error {
		if err := uow.NoteRepository().Create(ctx, note); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, uow.InTransaction())

	count, err := uow.NoteRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestWithinJoinsOpenTransaction(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	uow := NewRepositoryFactory(db).NewUnitOfWork(ctx)

	require.NoError(t, uow.Begin(ctx))
	err := Within(ctx, uow, func() error {
		return uow.NoteRepository().Create(ctx, newNote())
	})
	require.NoError(t, err)
	assert.True(t, uow.InTransaction(), "inner Within must not commit the outer transaction")

	require.NoError(t, uow.Rollback())
	count, err := uow.NoteRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestBeginTwiceFails(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	uow := NewRepositoryFactory(db).NewUnitOfWork(ctx)

	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()
	assert.Error(t, uow.Begin(ctx))
}

func TestCommitWithoutTransactionFails(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	uow := NewRepositoryFactory(db).NewUnitOfWork(context.Background())

	assert.Error(t, uow.Commit())
	assert.Error(t, uow.Rollback())
}
