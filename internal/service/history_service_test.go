package service

import (
	"context"
	"testing"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"
	"collabnote-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRecordsVisitsAndEdits(t *testing.T) {
	f := newFixture(t, withDefaultVisibility(entity.SpecialVisibility{Everyone: entity.AccessWrite, LoggedIn: entity.AccessWrite}))
	ctx := context.Background()

	_, err := f.svc.CreateNamedNote(ctx, alice, "visited", "---\ntags: [a, b]\n---\n# Visited note\n")
	require.NoError(t, err)

	list, err := f.history.ListForUser(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list, "creating a note is not a visit")

	_, err = f.svc.GetNote(ctx, alice, "visited")
	require.NoError(t, err)

	list, err = f.history.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "visited", list[0].Identifier)
	assert.Equal(t, "Visited note", list[0].Title)
	assert.Equal(t, []string{"a", "b"}, list[0].Tags)
	assert.Nil(t, list[0].LastEdited)
	assert.False(t, list[0].Pinned)

	_, err = f.svc.UpdateNote(ctx, alice, "visited", "# Renamed")
	require.NoError(t, err)

	list, err = f.history.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Renamed", list[0].Title)
	assert.NotNil(t, list[0].LastEdited)

	_, err = f.svc.GetNote(ctx, guest, "visited")
	require.NoError(t, err)
	_, err = f.svc.ListRevisions(ctx, bob, "visited")
	require.NoError(t, err)

	list, err = f.history.ListForUser(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list, "listing revisions is not a visit")
}

func TestHistoryVisitKeepsPinAndEditTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateNamedNote(ctx, alice, "pinned", "body")
	require.NoError(t, err)
	_, err = f.svc.UpdateNote(ctx, alice, "pinned", "body 2")
	require.NoError(t, err)

	entry, err := f.history.SetPinned(ctx, "alice", "pinned", true)
	require.NoError(t, err)
	assert.True(t, entry.Pinned)

	_, err = f.svc.GetNoteMetadata(ctx, alice, "pinned")
	require.NoError(t, err)

	list, err := f.history.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Pinned)
	assert.NotNil(t, list[0].LastEdited)
}

func TestHistoryListsPinnedFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, alias := range []string{"first", "second", "third"} {
		_, err := f.svc.CreateNamedNote(ctx, alice, alias, alias)
		require.NoError(t, err)
		_, err = f.svc.GetNote(ctx, alice, alias)
		require.NoError(t, err)
	}

	_, err := f.history.SetPinned(ctx, "alice", "first", true)
	require.NoError(t, err)

	list, err := f.history.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Identifier)
	assert.True(t, list[0].Pinned)
}

func TestHistoryRemoveAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, alias := range []string{"a1", "a2"} {
		_, err := f.svc.CreateNamedNote(ctx, alice, alias, alias)
		require.NoError(t, err)
		_, err = f.svc.GetNote(ctx, alice, alias)
		require.NoError(t, err)
	}

	require.NoError(t, f.history.Remove(ctx, "alice", "a1"))
	err := f.history.Remove(ctx, "alice", "a1")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	list, err := f.history.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a2", list[0].Identifier)

	require.NoError(t, f.history.Clear(ctx, "alice"))
	list, err = f.history.ListForUser(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	content, err := f.svc.GetNoteContent(ctx, alice, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", content, "clearing history leaves notes alone")
}

func TestHistoryUnknownNote(t *testing.T) {
	f := newFixture(t)

	_, err := f.history.SetPinned(context.Background(), "alice", "missing", true)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestHistoryIgnoresDeletedNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateNamedNote(ctx, alice, "gone", "body")
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteNote(ctx, alice, "gone"))

	err = f.history.RecordVisit(ctx, "alice", created.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "visit: %v", err)
	err = f.history.RecordEdit(ctx, "bob", created.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "edit: %v", err)

	var rows int64
	require.NoError(t, f.db.Model(&model.HistoryEntry{}).Where("note_id = ?", created.Id).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestHistoryIsPerUser(t *testing.T) {
	f := newFixture(t, withDefaultVisibility(entity.SpecialVisibility{Everyone: entity.AccessNone, LoggedIn: entity.AccessRead}))
	ctx := context.Background()

	_, err := f.svc.CreateNamedNote(ctx, alice, "common", "body")
	require.NoError(t, err)
	_, err = f.svc.GetNote(ctx, bob, "common")
	require.NoError(t, err)

	_, err = f.history.SetPinned(ctx, "alice", "common", true)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	list, err := f.history.ListForUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 1)
}
