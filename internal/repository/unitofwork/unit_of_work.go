package unitofwork

import (
	"context"

	"collabnote-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	InTransaction() bool

	NoteRepository() contract.NoteRepository
	RevisionRepository() contract.RevisionRepository
	PermissionRepository() contract.PermissionRepository
	HistoryRepository() contract.HistoryRepository
}

// Within runs fn inside a transaction on uow, joining the transaction when one is already open.
// fn must reach the database only through uow's repositories.
func Within(ctx context.Context, uow UnitOfWork, fn func() error) error {
	if uow.InTransaction() {
		return fn()
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(); err != nil {
		return err
	}
	return uow.Commit()
}
