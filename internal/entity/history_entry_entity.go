package entity

import (
	"time"

	"github.com/google/uuid"
)

type HistoryEntry struct {
	UserId      string
	NoteId      uuid.UUID
	Pinned      bool
	LastVisited time.Time
	LastEdited  *time.Time
}
