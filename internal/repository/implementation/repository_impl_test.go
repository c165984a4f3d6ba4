package implementation

import (
	"context"
	"testing"
	"time"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/repository/specification"
	"collabnote-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNote(t *testing.T, db *gorm.DB, alias string) *entity.Note {
	t.Helper()
	note := &entity.Note{
		Id:         uuid.New(),
		Alias:      &alias,
		Visibility: entity.SpecialVisibility{Everyone: entity.AccessRead, LoggedIn: entity.AccessWrite},
	}
	require.NoError(t, NewNoteRepository(db).Create(context.Background(), note))
	return note
}

func strPtr(s string) *string { return &s }

func TestNoteRepositoryRoundTrip(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	repo := NewNoteRepository(db)

	note := seedNote(t, db, "round-trip")

	found, err := repo.FindOne(ctx, specification.ByAlias{Alias: "round-trip"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, note.Id, found.Id)
	assert.Equal(t, entity.AccessRead, found.Visibility.Everyone)
	assert.Equal(t, entity.AccessWrite, found.Visibility.LoggedIn)
	assert.Zero(t, found.CurrentRevisionId)
	assert.Nil(t, found.OwnerId)

	missing, err := repo.FindOne(ctx, specification.ByAlias{Alias: "nope"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.FindOne(ctx, specification.ByID{ID: note.Id}, specification.ForUpdate{})
	assert.NoError(t, err, "row locks are ignored on SQLite")
}

func TestNoteRepositoryDuplicateAlias(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	seedNote(t, db, "taken")

	alias := "taken"
	err := NewNoteRepository(db).Create(context.Background(), &entity.Note{Id: uuid.New(), Alias: &alias})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestPermissionRepositoryReplace(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	note := seedNote(t, db, "perm")
	repo := NewPermissionRepository(db)

	require.NoError(t, repo.ReplaceForNote(ctx, note.Id, []entity.NotePermission{
		{GranteeKind: entity.GranteeUser, Grantee: "bob", CanEdit: true},
		{GranteeKind: entity.GranteeGroup, Grantee: "devs"},
	}))
	require.NoError(t, repo.ReplaceForNote(ctx, note.Id, []entity.NotePermission{
		{GranteeKind: entity.GranteeUser, Grantee: "carol"},
	}))

	loaded, err := NewNoteRepository(db).FindOne(ctx, specification.ByID{ID: note.Id}, specification.WithPermissions{})
	require.NoError(t, err)
	require.Len(t, loaded.Permissions, 1)
	assert.Equal(t, "carol", loaded.Permissions[0].Grantee)
	assert.False(t, loaded.Permissions[0].CanEdit)

	require.NoError(t, repo.ReplaceForNote(ctx, note.Id, nil))
	loaded, err = NewNoteRepository(db).FindOne(ctx, specification.ByID{ID: note.Id}, specification.WithPermissions{})
	require.NoError(t, err)
	assert.Empty(t, loaded.Permissions)
}

func TestRevisionRepositoryAuthors(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	note := seedNote(t, db, "authors")
	repo := NewRevisionRepository(db)

	for _, author := range []*string{strPtr("zed"), nil, strPtr("amy"), strPtr("zed")} {
		require.NoError(t, repo.Create(ctx, &entity.Revision{NoteId: note.Id, Content: "x", AuthorId: author, Length: 1}))
	}

	authors, err := repo.FindAuthorIds(ctx, note.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"amy", "zed"}, authors)

	count, err := repo.Count(ctx, specification.ByNoteID{NoteID: note.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	require.NoError(t, repo.DeleteByNoteId(ctx, note.Id))
	count, err = repo.Count(ctx, specification.ByNoteID{NoteID: note.Id})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRevisionRepositoryKeepsTags(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	note := seedNote(t, db, "tags")
	repo := NewRevisionRepository(db)

	rev := &entity.Revision{NoteId: note.Id, Content: "x", Tags: []string{"go", "notes"}, Length: 1}
	require.NoError(t, repo.Create(ctx, rev))
	assert.NotZero(t, rev.Id)

	found, err := repo.FindOne(ctx, specification.ByRevisionID{ID: rev.Id})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "notes"}, found.Tags)
}

func TestHistoryRepositoryUpsert(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	note := seedNote(t, db, "hist")
	repo := NewHistoryRepository(db)

	first := time.Now().Add(-time.Hour).UTC()
	require.NoError(t, repo.Upsert(ctx, &entity.HistoryEntry{UserId: "alice", NoteId: note.Id, LastVisited: first}, "last_visited"))

	entry, err := repo.FindOne(ctx, specification.UserOwnedBy{UserID: "alice"}, specification.ByNoteID{NoteID: note.Id})
	require.NoError(t, err)
	require.NotNil(t, entry)
	entry.Pinned = true
	require.NoError(t, repo.Update(ctx, entry))

	later := time.Now().UTC()
	require.NoError(t, repo.Upsert(ctx, &entity.HistoryEntry{UserId: "alice", NoteId: note.Id, LastVisited: later}, "last_visited"))

	entries, err := repo.FindAll(ctx, specification.UserOwnedBy{UserID: "alice"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Pinned, "upsert leaves pinned alone")
	assert.WithinDuration(t, later, entries[0].LastVisited, time.Second)

	require.NoError(t, repo.Upsert(ctx, &entity.HistoryEntry{UserId: "bob", NoteId: note.Id, LastVisited: later}))
	require.NoError(t, repo.DeleteByNoteId(ctx, note.Id))
	entries, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
