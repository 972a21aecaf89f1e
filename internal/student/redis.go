package student

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bassista/go_grades/internal/logger"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "student:"

// ErrCacheMiss is returned by the Redis layer when a student is not cached.
var ErrCacheMiss = errors.New("student cache miss")

// redisClient is the subset of *redis.Client used by CachedRepository.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// CachedRepository is a read-through Redis cache in front of another Repository.
// Redis failures are logged and the lookup falls through to the backing store.
type CachedRepository struct {
	next  Repository
	redis redisClient
	ttl   time.Duration
}

// RedisOptions configures the connection used by NewCachedRepository.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewCachedRepository(next Repository, opts RedisOptions) *CachedRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return newCachedRepository(next, client, opts.TTL)
}

func newCachedRepository(next Repository, client redisClient, ttl time.Duration) *CachedRepository {
	return &CachedRepository{next: next, redis: client, ttl: ttl}
}

func cacheKey(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

func (c *CachedRepository) Get(ctx context.Context, id int64) (*Student, error) {
	log := logger.WithComponent("student-cache")
	key := cacheKey(id)

	s, err := c.cached(ctx, key)
	switch {
	case err == nil:
		log.Debugf("cache hit for %s", key)
		return s, nil
	case errors.Is(err, ErrCacheMiss):
		log.Debugf("cache miss for %s", key)
	default:
		log.Warnf("redis lookup %s failed, falling through: %v", key, err)
	}

	s, err = c.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return s, nil
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warnf("redis set %s failed: %v", key, err)
	}
	return s, nil
}

// cached returns the student stored under key, or ErrCacheMiss.
func (c *CachedRepository) cached(ctx context.Context, key string) (*Student, error) {
	raw, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var s Student
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return &s, nil
}

// Ping checks the backing store. An unreachable Redis only degrades caching.
func (c *CachedRepository) Ping(ctx context.Context) error {
	if err := c.redis.Ping(ctx).Err(); err != nil {
		logger.WithComponent("student-cache").Warnf("redis ping failed: %v", err)
	}
	if err := c.next.Ping(ctx); err != nil {
		return fmt.Errorf("student store: %w", err)
	}
	return nil
}

func (c *CachedRepository) Close() {
	if err := c.redis.Close(); err != nil {
		logger.WithComponent("student-cache").Warnf("redis close failed: %v", err)
	}
	c.next.Close()
}
