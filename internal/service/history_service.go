package service

import (
	"context"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/apperror"
	"collabnote-be/internal/repository/specification"
	"collabnote-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IHistoryService tracks the notes a signed-in user has visited or edited.
type IHistoryService interface {
	RecordVisit(ctx context.Context, userId string, noteId uuid.UUID) error
	RecordEdit(ctx context.Context, userId string, noteId uuid.UUID) error
	ListForUser(ctx context.Context, userId string) ([]*dto.HistoryEntryDto, error)
	SetPinned(ctx context.Context, userId string, idOrAlias string, pinned bool) (*dto.HistoryEntryDto, error)
	Remove(ctx context.Context, userId string, idOrAlias string) error
	Clear(ctx context.Context, userId string) error
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
	registry   INoteRegistry
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory, registry INoteRegistry) IHistoryService {
	return &historyService{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// RecordVisit stamps last_visited, creating the entry on first visit. Pinned is left alone.
func (s *historyService) RecordVisit(ctx context.Context, userId string, noteId uuid.UUID) error {
	entry := &entity.HistoryEntry{
		UserId:      userId,
		NoteId:      noteId,
		LastVisited: time.Now(),
	}
	return s.upsert(ctx, entry, "last_visited")
}

// RecordEdit counts as a visit too.
func (s *historyService) RecordEdit(ctx context.Context, userId string, noteId uuid.UUID) error {
	now := time.Now()
	entry := &entity.HistoryEntry{
		UserId:      userId,
		NoteId:      noteId,
		LastVisited: now,
		LastEdited:  &now,
	}
	return s.upsert(ctx, entry, "last_visited", "last_edited")
}

// upsert writes the entry only while its note still exists, so a visit racing
// a delete cannot leave an orphan behind.
func (s *historyService) upsert(ctx context.Context, entry *entity.HistoryEntry, columns ...string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return unitofwork.Within(ctx, uow, func() error {
		count, err := uow.NoteRepository().Count(ctx, specification.ByID{ID: entry.NoteId})
		if err != nil {
			return err
		}
		if count == 0 {
			return apperror.NotFound("note", entry.NoteId.String())
		}
		return uow.HistoryRepository().Upsert(ctx, entry, columns...)
	})
}

// ListForUser returns pinned entries first, then the most recently visited.
func (s *historyService) ListForUser(ctx context.Context, userId string) ([]*dto.HistoryEntryDto, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entries, err := uow.HistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "pinned", Desc: true},
		specification.OrderBy{Field: "last_visited", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	return s.toDtos(ctx, uow, entries)
}

func (s *historyService) SetPinned(ctx context.Context, userId string, idOrAlias string, pinned bool) (*dto.HistoryEntryDto, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := s.findEntry(ctx, uow, userId, idOrAlias)
	if err != nil {
		return nil, err
	}

	entry.Pinned = pinned
	if err := uow.HistoryRepository().Update(ctx, entry); err != nil {
		return nil, err
	}

	res, err := s.toDtos(ctx, uow, []*entity.HistoryEntry{entry})
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

func (s *historyService) Remove(ctx context.Context, userId string, idOrAlias string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := s.findEntry(ctx, uow, userId, idOrAlias)
	if err != nil {
		return err
	}
	return uow.HistoryRepository().Delete(ctx, entry.UserId, entry.NoteId)
}

func (s *historyService) Clear(ctx context.Context, userId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.HistoryRepository().DeleteByUserId(ctx, userId)
}

func (s *historyService) findEntry(ctx context.Context, uow unitofwork.UnitOfWork, userId string, idOrAlias string) (*entity.HistoryEntry, error) {
	note, err := s.registry.Resolve(ctx, uow, idOrAlias)
	if err != nil {
		return nil, err
	}

	entry, err := uow.HistoryRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByNoteID{NoteID: note.Id},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NotFound("history entry", idOrAlias)
	}
	return entry, nil
}

// toDtos joins entries with their note and head revision. Entries whose note
// has vanished are skipped.
func (s *historyService) toDtos(ctx context.Context, uow unitofwork.UnitOfWork, entries []*entity.HistoryEntry) ([]*dto.HistoryEntryDto, error) {
	res := make([]*dto.HistoryEntryDto, 0, len(entries))
	if len(entries) == 0 {
		return res, nil
	}

	noteIds := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		noteIds[i] = e.NoteId
	}
	notes, err := uow.NoteRepository().FindAll(ctx, specification.ByIDs{IDs: noteIds})
	if err != nil {
		return nil, err
	}

	notesById := make(map[uuid.UUID]*entity.Note, len(notes))
	revisionIds := make([]int64, 0, len(notes))
	for _, n := range notes {
		notesById[n.Id] = n
		revisionIds = append(revisionIds, n.CurrentRevisionId)
	}

	revisions, err := uow.RevisionRepository().FindAll(ctx, specification.ByRevisionIDs{IDs: revisionIds})
	if err != nil {
		return nil, err
	}
	revisionsById := make(map[int64]*entity.Revision, len(revisions))
	for _, rev := range revisions {
		revisionsById[rev.Id] = rev
	}

	for _, e := range entries {
		note, ok := notesById[e.NoteId]
		if !ok {
			continue
		}

		item := &dto.HistoryEntryDto{
			NoteId:      note.Id,
			Identifier:  note.Identifier(),
			Tags:        []string{},
			Pinned:      e.Pinned,
			LastVisited: e.LastVisited,
			LastEdited:  e.LastEdited,
		}
		if rev, ok := revisionsById[note.CurrentRevisionId]; ok {
			item.Title = rev.Title
			item.Tags = rev.Tags
		}
		res = append(res, item)
	}

	return res, nil
}
