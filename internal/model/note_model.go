package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Alias             *string          `gorm:"type:varchar(64);uniqueIndex"`
	OwnerId           *string          `gorm:"type:varchar(255);index"`
	EveryoneAccess    string           `gorm:"type:varchar(16);not null;default:'none'"`
	LoggedInAccess    string           `gorm:"type:varchar(16);not null;default:'none'"`
	CurrentRevisionId *int64           `gorm:"index"`
	Permissions       []NotePermission `gorm:"foreignKey:NoteId"`
	CreatedAt         time.Time        `gorm:"autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
