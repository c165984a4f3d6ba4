package dto

import (
	"time"

	"github.com/google/uuid"
)

type HistoryEntryDto struct {
	NoteId      uuid.UUID  `json:"note_id"`
	Identifier  string     `json:"identifier"`
	Title       string     `json:"title"`
	Tags        []string   `json:"tags"`
	Pinned      bool       `json:"pinned"`
	LastVisited time.Time  `json:"last_visited"`
	LastEdited  *time.Time `json:"last_edited"`
}

type UpdateHistoryEntryRequest struct {
	Pinned *bool `json:"pinned" validate:"required"`
}
