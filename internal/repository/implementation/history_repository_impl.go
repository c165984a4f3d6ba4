package implementation

import (
	"context"
	"errors"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/mapper"
	"collabnote-be/internal/model"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HistoryEntryMapper
}

func NewHistoryRepository(db *gorm.DB) contract.HistoryRepository {
	return &HistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewHistoryEntryMapper(),
	}
}

func (r *HistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HistoryRepositoryImpl) Upsert(ctx context.Context, entry *entity.HistoryEntry, updateColumns ...string) error {
	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "note_id"}},
	}
	if len(updateColumns) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(updateColumns)
	}

	m := r.mapper.ToModel(entry)
	return r.db.WithContext(ctx).Clauses(onConflict).Create(m).Error
}

func (r *HistoryRepositoryImpl) Update(ctx context.Context, entry *entity.HistoryEntry) error {
	return r.db.WithContext(ctx).
		Model(&model.HistoryEntry{}).
		Where("user_id = ? AND note_id = ?", entry.UserId, entry.NoteId).
		Updates(map[string]interface{}{
			"pinned":       entry.Pinned,
			"last_visited": entry.LastVisited,
			"last_edited":  entry.LastEdited,
		}).Error
}

func (r *HistoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HistoryEntry, error) {
	var m model.HistoryEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *HistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HistoryEntry, error) {
	var models []*model.HistoryEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *HistoryRepositoryImpl) Delete(ctx context.Context, userId string, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND note_id = ?", userId, noteId).
		Delete(&model.HistoryEntry{}).Error
}

func (r *HistoryRepositoryImpl) DeleteByUserId(ctx context.Context, userId string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.HistoryEntry{}).Error
}

func (r *HistoryRepositoryImpl) DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("note_id = ?", noteId).Delete(&model.HistoryEntry{}).Error
}
