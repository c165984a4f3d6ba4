package model

import (
	"time"

	"github.com/google/uuid"
)

type HistoryEntry struct {
	UserId      string    `gorm:"type:varchar(255);primaryKey"`
	NoteId      uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Pinned      bool      `gorm:"not null;default:false"`
	LastVisited time.Time `gorm:"not null"`
	LastEdited  *time.Time
}

func (HistoryEntry) TableName() string {
	return "history_entries"
}
