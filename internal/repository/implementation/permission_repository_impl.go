package implementation

import (
	"context"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/mapper"
	"collabnote-be/internal/model"
	"collabnote-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PermissionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewPermissionRepository(db *gorm.DB) contract.PermissionRepository {
	return &PermissionRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *PermissionRepositoryImpl) ReplaceForNote(ctx context.Context, noteId uuid.UUID, perms []entity.NotePermission) error {
	if err := r.DeleteByNoteId(ctx, noteId); err != nil {
		return err
	}
	if len(perms) == 0 {
		return nil
	}

	models := r.mapper.ToPermissionModels(perms)
	for _, m := range models {
		m.NoteId = noteId
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *PermissionRepositoryImpl) DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("note_id = ?", noteId).Delete(&model.NotePermission{}).Error
}
