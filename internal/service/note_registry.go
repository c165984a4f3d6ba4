package service

import (
	"context"
	"errors"
	"time"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/apperror"
	"collabnote-be/internal/repository/specification"
	"collabnote-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// INoteRegistry owns note identity, aliases and access lists. It does not
// authorize; callers decide who may invoke what.
type INoteRegistry interface {
	Resolve(ctx context.Context, uow unitofwork.UnitOfWork, idOrAlias string) (*entity.Note, error)
	Create(ctx context.Context, uow unitofwork.UnitOfWork, alias *string, ownerId *string, visibility entity.SpecialVisibility, content string) (*entity.Note, *entity.Revision, error)
	UpdateContent(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID, authorId *string, content string) (*entity.Note, *entity.Revision, error)
	UpdatePermissions(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID, access []entity.NotePermission, visibility entity.SpecialVisibility) (*entity.Note, error)
	Delete(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) error
}

type noteRegistry struct {
	store IRevisionStore
}

func NewNoteRegistry(store IRevisionStore) INoteRegistry {
	return &noteRegistry{store: store}
}

// Resolve treats a well formed UUID as an id and anything else as an alias.
// The returned note carries its access list.
func (r *noteRegistry) Resolve(ctx context.Context, uow unitofwork.UnitOfWork, idOrAlias string) (*entity.Note, error) {
	var lookup specification.Specification = specification.ByAlias{Alias: idOrAlias}
	if id, err := uuid.Parse(idOrAlias); err == nil {
		lookup = specification.ByID{ID: id}
	}

	note, err := uow.NoteRepository().FindOne(ctx, lookup, specification.WithPermissions{})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note", idOrAlias)
	}
	return note, nil
}

// Create inserts the note and its first revision atomically. The alias is
// checked inside the transaction and the unique index catches any racer.
func (r *noteRegistry) Create(ctx context.Context, uow unitofwork.UnitOfWork, alias *string, ownerId *string, visibility entity.SpecialVisibility, content string) (*entity.Note, *entity.Revision, error) {
	var (
		note     *entity.Note
		revision *entity.Revision
	)

	err := unitofwork.Within(ctx, uow, func() error {
		if alias != nil {
			taken, err := uow.NoteRepository().Count(ctx, specification.ByAlias{Alias: *alias})
			if err != nil {
				return err
			}
			if taken > 0 {
				return apperror.AliasConflict(*alias)
			}
		}

		now := time.Now()
		note = &entity.Note{
			Id:          uuid.New(),
			Alias:       alias,
			OwnerId:     ownerId,
			Visibility:  visibility,
			Permissions: []entity.NotePermission{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uow.NoteRepository().Create(ctx, note); err != nil {
			if alias != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.AliasConflict(*alias)
			}
			return err
		}

		var err error
		revision, err = r.store.Append(ctx, uow, note.Id, ownerId, content)
		if err != nil {
			return err
		}
		note.CurrentRevisionId = revision.Id
		note.UpdatedAt = revision.CreatedAt
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return note, revision, nil
}

func (r *noteRegistry) UpdateContent(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID, authorId *string, content string) (*entity.Note, *entity.Revision, error) {
	var (
		note     *entity.Note
		revision *entity.Revision
	)

	err := unitofwork.Within(ctx, uow, func() error {
		var err error
		revision, err = r.store.Append(ctx, uow, noteId, authorId, content)
		if err != nil {
			return err
		}
		note, err = r.Resolve(ctx, uow, noteId.String())
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return note, revision, nil
}

// UpdatePermissions replaces the access list and the special visibility as a whole.
func (r *noteRegistry) UpdatePermissions(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID, access []entity.NotePermission, visibility entity.SpecialVisibility) (*entity.Note, error) {
	var note *entity.Note

	err := unitofwork.Within(ctx, uow, func() error {
		locked, err := r.lock(ctx, uow, noteId)
		if err != nil {
			return err
		}

		locked.Visibility = visibility
		if err := uow.NoteRepository().Update(ctx, locked); err != nil {
			return err
		}

		perms := make([]entity.NotePermission, len(access))
		for i, p := range access {
			p.NoteId = noteId
			perms[i] = p
		}
		if err := uow.PermissionRepository().ReplaceForNote(ctx, noteId, perms); err != nil {
			return err
		}

		note, err = r.Resolve(ctx, uow, noteId.String())
		return err
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

// Delete removes the note together with its revisions, access list and the
// history entries pointing at it.
func (r *noteRegistry) Delete(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) error {
	return unitofwork.Within(ctx, uow, func() error {
		if _, err := r.lock(ctx, uow, noteId); err != nil {
			return err
		}
		if err := uow.HistoryRepository().DeleteByNoteId(ctx, noteId); err != nil {
			return err
		}
		if err := uow.PermissionRepository().DeleteByNoteId(ctx, noteId); err != nil {
			return err
		}
		if err := r.store.DeleteAll(ctx, uow, noteId); err != nil {
			return err
		}
		return uow.NoteRepository().Delete(ctx, noteId)
	})
}

func (r *noteRegistry) lock(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note", noteId.String())
	}
	return note, nil
}
