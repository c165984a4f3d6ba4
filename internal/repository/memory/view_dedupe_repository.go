package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ViewDedupeRepository remembers which viewers already counted towards a note
// within the configured window.
type ViewDedupeRepository struct {
	cache  *cache.Cache
	window time.Duration
}

func NewViewDedupeRepository(window time.Duration) *ViewDedupeRepository {
	cleanup := 2 * window
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &ViewDedupeRepository{
		cache:  cache.New(window, cleanup),
		window: window,
	}
}

// FirstView reports whether viewerKey has not viewed the note within the
// window and marks it as seen. A non-positive window disables deduplication.
func (r *ViewDedupeRepository) FirstView(noteId uuid.UUID, viewerKey string) bool {
	if r.window <= 0 || viewerKey == "" {
		return true
	}
	return r.cache.Add(dedupeKey(noteId, viewerKey), struct{}{}, cache.DefaultExpiration) == nil
}

func dedupeKey(noteId uuid.UUID, viewerKey string) string {
	return noteId.String() + "|" + viewerKey
}
