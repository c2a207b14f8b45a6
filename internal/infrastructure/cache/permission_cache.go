package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/identity"
)

const permissionCacheTTL = 10 * time.Minute

// RedisPermissionCache caches resolved permission matrix cells. A nil
// receiver or nil client degrades to a no-op so the permission service
// works without Redis.
type RedisPermissionCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisPermissionCache creates a new RedisPermissionCache. Passing a
// nil client disables caching.
func NewRedisPermissionCache(client *redis.Client, logger *zap.Logger) *RedisPermissionCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPermissionCache{client: client, logger: logger}
}

func (c *RedisPermissionCache) key(role identity.Role, module identity.Module) string {
	return fmt.Sprintf("permission:%s:%s", role, module)
}

// Get returns the cached capability for a role/module pair, or nil on a
// cache miss.
func (c *RedisPermissionCache) Get(ctx context.Context, role identity.Role, module identity.Module) (*identity.Capability, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, c.key(role, module)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("Failed to read permission from cache", zap.Error(err))
		return nil, nil
	}

	var capability identity.Capability
	if err := json.Unmarshal(data, &capability); err != nil {
		c.logger.Warn("Failed to decode cached permission", zap.Error(err))
		return nil, nil
	}
	return &capability, nil
}

// Set stores the capability for a role/module pair
func (c *RedisPermissionCache) Set(ctx context.Context, role identity.Role, module identity.Module, capability identity.Capability) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(capability)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(role, module), data, permissionCacheTTL).Err(); err != nil {
		c.logger.Warn("Failed to cache permission", zap.Error(err))
	}
}

// Invalidate drops every cached cell. Called after the matrix changes.
func (c *RedisPermissionCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, "permission:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("Failed to invalidate cached permission", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Failed to scan permission cache", zap.Error(err))
	}
}
