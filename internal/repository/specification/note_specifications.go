package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByAlias struct {
	Alias string
}

func (s ByAlias) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("alias = ?", s.Alias)
}

// WithPermissions loads the note's access list alongside it.
type WithPermissions struct{}

func (s WithPermissions) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Permissions")
}

type ByNoteID struct {
	NoteID uuid.UUID
}

func (s ByNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id = ?", s.NoteID)
}
