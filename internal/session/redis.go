package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"materialmart/internal/cache"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sess:"

// RedisBackend 以 key TTL 處理過期
type RedisBackend struct {
	c   cache.Cache
	now func() time.Time
}

func NewRedisBackend(c cache.Cache) *RedisBackend {
	return &RedisBackend{c: c, now: time.Now}
}

func (b *RedisBackend) Load(ctx context.Context, id string) (string, bool, error) {
	data, err := b.c.Get(ctx, redisKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("Load session: %w", err)
	}
	return data, true, nil
}

// Save 已過期的 session 直接刪除，避免 ttl<=0 變成永久 key
func (b *RedisBackend) Save(ctx context.Context, id, data string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		return b.Delete(ctx, id)
	}
	if err := b.c.Set(ctx, redisKeyPrefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("Save session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, id string) error {
	if err := b.c.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("Delete session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.c.Ping(ctx).Err()
}
