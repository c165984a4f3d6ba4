package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Revision struct {
	Id          int64                       `gorm:"primaryKey;autoIncrement"`
	NoteId      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Content     string                      `gorm:"type:text;not null"`
	AuthorId    *string                     `gorm:"type:varchar(255);index"`
	Title       string                      `gorm:"type:varchar(255)"`
	Description string                      `gorm:"type:text"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:json"`
	Length      int                         `gorm:"not null"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
}

func (Revision) TableName() string {
	return "revisions"
}
