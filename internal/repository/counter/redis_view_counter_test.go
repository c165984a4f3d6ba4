package counter

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCounter(t *testing.T) (*miniredis.Miniredis, *RedisViewCounter) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, NewRedisViewCounter(rdb).(*RedisViewCounter)
}

func TestCountMissingKeyIsZero(t *testing.T) {
	_, c := newCounter(t)

	n, err := c.Count(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestIncrementAndReset(t *testing.T) {
	mr, c := newCounter(t)
	ctx := context.Background()
	noteId := uuid.New()

	for i := 1; i <= 3; i++ {
		n, err := c.Increment(ctx, noteId)
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}

	stored, err := mr.Get("collabnote:views:" + noteId.String())
	require.NoError(t, err)
	assert.Equal(t, "3", stored)

	require.NoError(t, c.Reset(ctx, noteId))
	n, err := c.Count(ctx, noteId)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCountSurfacesConnectionErrors(t *testing.T) {
	mr, c := newCounter(t)
	mr.Close()

	_, err := c.Count(context.Background(), uuid.New())
	assert.Error(t, err)
}
