package dto

import (
	"time"

	"github.com/google/uuid"
)

type NoteDto struct {
	Id          uuid.UUID       `json:"id"`
	Alias       *string         `json:"alias"`
	Content     string          `json:"content"`
	Metadata    NoteMetadataDto `json:"metadata"`
	Permissions PermissionsDto  `json:"permissions"`
}

type NoteMetadataDto struct {
	Id                uuid.UUID      `json:"id"`
	Alias             *string        `json:"alias"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Tags              []string       `json:"tags"`
	CreateTime        time.Time      `json:"create_time"`
	UpdateTime        time.Time      `json:"update_time"`
	CurrentRevisionId int64          `json:"current_revision_id"`
	ViewCount         int64          `json:"view_count"`
	EditedBy          []string       `json:"edited_by"`
	Permissions       PermissionsDto `json:"permissions"`
}

// PublishNoteViewedMessage is put on the in-process bus whenever a note body is served.
type PublishNoteViewedMessage struct {
	NoteId    uuid.UUID `json:"note_id"`
	ViewerKey string    `json:"viewer_key"`
}
