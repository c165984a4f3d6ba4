package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNoteEvent(t *testing.T) {
	e := NewNoteEvent(NoteUpdated, "abc", "my-note", "alice", map[string]interface{}{"revision_id": int64(7)})

	assert.Equal(t, "NOTE_UPDATED", e.EventType())
	assert.Equal(t, "abc", e.Payload()["note_id"])
	assert.Equal(t, "my-note", e.Payload()["identifier"])
	assert.Equal(t, "alice", e.Payload()["actor_id"])
	assert.Equal(t, int64(7), e.Payload()["revision_id"])
	assert.False(t, e.Timestamp().IsZero())
}
