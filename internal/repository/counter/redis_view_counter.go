package counter

import (
	"context"
	"errors"

	"collabnote-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const viewKeyPrefix = "collabnote:views:"

type RedisViewCounter struct {
	rdb redis.UniversalClient
}

func NewRedisViewCounter(rdb redis.UniversalClient) contract.ViewCounter {
	return &RedisViewCounter{rdb: rdb}
}

func (c *RedisViewCounter) Increment(ctx context.Context, noteId uuid.UUID) (int64, error) {
	return c.rdb.Incr(ctx, viewKey(noteId)).Result()
}

func (c *RedisViewCounter) Count(ctx context.Context, noteId uuid.UUID) (int64, error) {
	n, err := c.rdb.Get(ctx, viewKey(noteId)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (c *RedisViewCounter) Reset(ctx context.Context, noteId uuid.UUID) error {
	return c.rdb.Del(ctx, viewKey(noteId)).Err()
}

func viewKey(noteId uuid.UUID) string {
	return viewKeyPrefix + noteId.String()
}
