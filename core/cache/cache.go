package cache

import (
	"context"
	"time"

	"wedding-rsvp/core/constants"
	"wedding-rsvp/core/logger"

	"github.com/redis/go-redis/v9"
)

// ICache is the slice of redis the application uses: cached page renderings
// with explicit invalidation, and the admin login attempt throttle.
type ICache interface {
	GetPage(ctx context.Context, key string) (string, bool)
	SetPage(ctx context.Context, key string, value string) error
	InvalidatePages(ctx context.Context) error

	IsLoginBlocked(ctx context.Context, key string) (bool, error)
	IncrementLoginAttempt(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type Cache struct {
	client *redis.Client
}

type CacheConfig struct {
	Addr     string
	Password string
	DB       int
}

var instance *Cache

func GetCache() ICache {
	return instance
}

func InitCache(config CacheConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		return nil, err
	}

	logger.Info("Redis initialized successfully", "addr", config.Addr, "db", config.DB)
	instance = &Cache{client: client}
	return instance, nil
}

func (c *Cache) GetPage(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache:GetPage:Error", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

func (c *Cache) SetPage(ctx context.Context, key string, value string) error {
	return c.client.Set(ctx, key, value, constants.PageCacheTTL).Err()
}

// InvalidatePages drops every cached rendering that depends on the RSVP record
// set. Called after create, update and delete.
func (c *Cache) InvalidatePages(ctx context.Context) error {
	return c.client.Del(ctx,
		constants.RedisKeyPageGuests,
		constants.RedisKeyPageDashboard,
		constants.RedisKeyPageDietary,
		constants.RedisKeyPageSongs,
	).Err()
}

func (c *Cache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= constants.MaxLoginAttempts, nil
}

func (c *Cache) IncrementLoginAttempt(ctx context.Context, key string) error {
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, constants.BlockDuration).Err()
}

func (c *Cache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

func (c *Cache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
