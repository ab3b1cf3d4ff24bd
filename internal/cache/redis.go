package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the Store implementation backed by go-redis. A nil client turns
// every operation into a miss/no-op so the surrounding orchestration degrades
// to store and fresh-fetch transparently.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects to redisURL. If the URL is empty, invalid, or the server
// is unreachable, it returns a disabled cache rather than an error.
func NewRedis(redisURL string) *Redis {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &Redis{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &Redis{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &Redis{}
	}

	log.Println("redis: connected, caching enabled")
	return &Redis{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *Redis) Client() *redis.Client {
	return c.rdb
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observe(false)
		return nil, false
	}
	if err != nil {
		log.Printf("cache: get %s error: %v", key, err)
		return nil, false
	}
	observe(true)
	return data, true
}

func (c *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if c.rdb == nil {
		return false
	}
	b, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: marshal %s error: %v", key, err)
		return false
	}
	if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		log.Printf("cache: set %s error: %v", key, err)
		return false
	}
	return true
}

func (c *Redis) SetNX(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if c.rdb == nil {
		return false
	}
	b, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: marshal %s error: %v", key, err)
		return false
	}
	ok, err := c.rdb.SetNX(ctx, key, b, ttl).Result()
	if err != nil {
		log.Printf("cache: setnx %s error: %v", key, err)
		return false
	}
	return ok
}

func (c *Redis) Delete(ctx context.Context, key string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("cache: del %s error: %v", key, err)
	}
}

func (c *Redis) Exists(ctx context.Context, key string) bool {
	if c.rdb == nil {
		return false
	}
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		log.Printf("cache: exists %s error: %v", key, err)
		return false
	}
	return n > 0
}

func (c *Redis) TTL(ctx context.Context, key string) (time.Duration, bool) {
	if c.rdb == nil {
		return 0, false
	}
	d, err := c.rdb.TTL(ctx, key).Result()
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}

// Close shuts down the Redis connection.
func (c *Redis) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
