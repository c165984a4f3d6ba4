package service

import (
	"context"
	"strconv"
	"time"
	"unicode/utf8"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/apperror"
	"collabnote-be/internal/repository/specification"
	"collabnote-be/internal/repository/unitofwork"
	"collabnote-be/pkg/markdown"

	"github.com/google/uuid"
)

// IRevisionStore is the append-only content log of notes.
// Every method runs on the caller's unit of work so it can join a wider transaction.
type IRevisionStore interface {
	Append(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID, authorId *string, content string) (*entity.Revision, error)
	Get(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID, revisionId int64) (*entity.Revision, error)
	ListAll(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) ([]*entity.Revision, error)
	DeleteAll(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) error
}

type revisionStore struct{}

func NewRevisionStore() IRevisionStore {
	return &revisionStore{}
}

// Append stores content as the note's new head. The insert and the head move
// share one transaction and the note row stays locked until it commits, so
// concurrent appends to a note serialize in the database.
func (s *revisionStore) Append(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID, authorId *string, content string) (*entity.Revision, error) {
	var revision *entity.Revision

	err := unitofwork.Within(ctx, uow, func() error {
		note, err := uow.NoteRepository().FindOne(ctx,
			specification.ByID{ID: noteId},
			specification.ForUpdate{},
		)
		if err != nil {
			return err
		}
		if note == nil {
			return apperror.NotFound("note", noteId.String())
		}

		meta := markdown.Extract(content)
		revision = &entity.Revision{
			NoteId:      noteId,
			Content:     content,
			AuthorId:    authorId,
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			Length:      utf8.RuneCountInString(content),
			CreatedAt:   time.Now(),
		}
		if err := uow.RevisionRepository().Create(ctx, revision); err != nil {
			return err
		}

		note.CurrentRevisionId = revision.Id
		return uow.NoteRepository().Update(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	return revision, nil
}

func (s *revisionStore) Get(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID, revisionId int64) (*entity.Revision, error) {
	if err := s.requireNote(ctx, uow, noteId); err != nil {
		return nil, err
	}

	revision, err := uow.RevisionRepository().FindOne(ctx,
		specification.ByRevisionID{ID: revisionId},
		specification.ByNoteID{NoteID: noteId},
	)
	if err != nil {
		return nil, err
	}
	if revision == nil {
		return nil, apperror.NotFound("revision", strconv.FormatInt(revisionId, 10))
	}
	return revision, nil
}

// ListAll returns the note's revisions oldest first. Each call reads a fresh snapshot.
func (s *revisionStore) ListAll(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) ([]*entity.Revision, error) {
	if err := s.requireNote(ctx, uow, noteId); err != nil {
		return nil, err
	}

	return uow.RevisionRepository().FindAll(ctx,
		specification.ByNoteID{NoteID: noteId},
		specification.OrderBy{Field: "id"},
	)
}

// DeleteAll is only meant to run as part of deleting the note itself.
func (s *revisionStore) DeleteAll(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) error {
	return uow.RevisionRepository().DeleteByNoteId(ctx, noteId)
}

func (s *revisionStore) requireNote(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) error {
	count, err := uow.NoteRepository().Count(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return err
	}
	if count == 0 {
		return apperror.NotFound("note", noteId.String())
	}
	return nil
}
