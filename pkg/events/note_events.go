package events

import "time"

const (
	NoteCreated            = "NOTE_CREATED"
	NoteUpdated            = "NOTE_UPDATED"
	NoteDeleted            = "NOTE_DELETED"
	NotePermissionsUpdated = "NOTE_PERMISSIONS_UPDATED"
)

// NewNoteEvent builds a note lifecycle event. actorId is empty for guests.
func NewNoteEvent(eventType, noteId, identifier, actorId string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"note_id":    noteId,
		"identifier": identifier,
		"actor_id":   actorId,
	}
	for k, v := range extra {
		data[k] = v
	}

	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
