package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/userhub/internal/model"
)

// Cache keys and TTLs.
const (
	userKeyPrefix = "user:"
	userListKey   = "users:list"

	// DefaultUserTTL is the TTL for cached user records.
	DefaultUserTTL = 5 * time.Minute

	// UserListTTL keeps the list cache short-lived.
	// The list is also invalidated whenever a user is created.
	UserListTTL = 30 * time.Second
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetUser retrieves a cached user by ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUser(ctx context.Context, id int64) (*model.User, error) {
	key := userKeyPrefix + strconv.FormatInt(id, 10)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}

	return &user, nil
}

// SetUser stores a user in cache.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	key := userKeyPrefix + strconv.FormatInt(user.ID, 10)

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := c.client.Set(ctx, key, data, DefaultUserTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// GetUserList retrieves the cached default user list.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUserList(ctx context.Context) ([]*model.User, error) {
	data, err := c.client.Get(ctx, userListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var users []*model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode cached user list: %w", err)
	}

	return users, nil
}

// SetUserList stores the default user list in cache.
func (c *Cache) SetUserList(ctx context.Context, users []*model.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user list: %w", err)
	}

	if err := c.client.Set(ctx, userListKey, data, UserListTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache user list: %w", err)
	}

	return nil
}

// InvalidateUserList drops the cached user list.
func (c *Cache) InvalidateUserList(ctx context.Context) error {
	if err := c.client.Del(ctx, userListKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate user list: %w", err)
	}
	return nil
}
