package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFirstViewDedupesWithinWindow(t *testing.T) {
	repo := NewViewDedupeRepository(time.Minute)
	noteId := uuid.New()

	assert.True(t, repo.FirstView(noteId, "alice"))
	assert.False(t, repo.FirstView(noteId, "alice"))
	assert.True(t, repo.FirstView(noteId, "bob"))
	assert.True(t, repo.FirstView(uuid.New(), "alice"))
}

func TestFirstViewExpires(t *testing.T) {
	repo := NewViewDedupeRepository(20 * time.Millisecond)
	noteId := uuid.New()

	assert.True(t, repo.FirstView(noteId, "alice"))
	time.Sleep(40 * time.Millisecond)
	assert.True(t, repo.FirstView(noteId, "alice"))
}

func TestFirstViewDisabled(t *testing.T) {
	repo := NewViewDedupeRepository(0)
	noteId := uuid.New()

	assert.True(t, repo.FirstView(noteId, "alice"))
	assert.True(t, repo.FirstView(noteId, "alice"))
}
