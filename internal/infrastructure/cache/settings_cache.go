package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/settings"
)

const (
	settingsCacheKey = "settings"
	settingsCacheTTL = 30 * time.Minute
)

// RedisSettingsCache caches the shop settings record. A nil receiver or
// nil client degrades to a no-op.
type RedisSettingsCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSettingsCache creates a new RedisSettingsCache. Passing a nil
// client disables caching.
func NewRedisSettingsCache(client *redis.Client, logger *zap.Logger) *RedisSettingsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSettingsCache{client: client, logger: logger}
}

// Get returns the cached settings record, or nil on a cache miss
func (c *RedisSettingsCache) Get(ctx context.Context) (*settings.Settings, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, settingsCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("Failed to read settings from cache", zap.Error(err))
		return nil, nil
	}

	var record settings.Settings
	if err := json.Unmarshal(data, &record); err != nil {
		c.logger.Warn("Failed to decode cached settings", zap.Error(err))
		return nil, nil
	}
	return &record, nil
}

// Set stores the settings record
func (c *RedisSettingsCache) Set(ctx context.Context, record *settings.Settings) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, settingsCacheKey, data, settingsCacheTTL).Err(); err != nil {
		c.logger.Warn("Failed to cache settings", zap.Error(err))
	}
}

// Invalidate drops the cached record. Called after an update.
func (c *RedisSettingsCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, settingsCacheKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached settings", zap.Error(err))
	}
}
