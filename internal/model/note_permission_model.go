package model

import "github.com/google/uuid"

type NotePermission struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	NoteId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_permissions_grantee"`
	GranteeKind string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_note_permissions_grantee"`
	Grantee     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_note_permissions_grantee"`
	CanEdit     bool      `gorm:"not null"`
}

func (NotePermission) TableName() string {
	return "note_permissions"
}
