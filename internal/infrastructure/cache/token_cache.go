package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/recipe-app-api/pkg/helpers"
)

// TokenCache stores token key -> user id in Redis.
type TokenCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenCache(rdb *redis.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{rdb: rdb, ttl: ttl}
}

type tokenEntry struct {
	UserID int64 `json:"user_id"`
}

func (c *TokenCache) Get(ctx context.Context, key string) (int64, bool, error) {
	var e tokenEntry
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, helpers.KeyAuthToken(key), &e)
	if err != nil || !ok {
		return 0, false, err
	}
	return e.UserID, true, nil
}

func (c *TokenCache) Set(ctx context.Context, key string, userID int64) error {
	return helpers.RedisSetJSON(ctx, c.rdb, helpers.KeyAuthToken(key), tokenEntry{UserID: userID}, c.ttl)
}

func (c *TokenCache) Delete(ctx context.Context, key string) error {
	return helpers.RedisDel(ctx, c.rdb, helpers.KeyAuthToken(key))
}
