package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned by a Backend when a key holds no value
var ErrKeyNotFound = errors.New("key not found")

// Backend is the raw durable key-value area shared by all execution contexts
type Backend interface {
	// Get returns the stored bytes or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Sizes returns the stored size in bytes of each existing key
	Sizes(ctx context.Context, keys []string) (map[string]int64, error)
}

// NewRedisClient opens a client for the given redis:// URL
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// RedisBackend stores values in Redis strings under a namespace prefix
type RedisBackend struct {
	client    *redis.Client
	namespace string
}

// NewRedisBackend creates a backend on top of an existing client
func NewRedisBackend(client *redis.Client, namespace string) *RedisBackend {
	return &RedisBackend{client: client, namespace: namespace}
}

func (b *RedisBackend) key(k string) string {
	if b.namespace == "" {
		return k
	}
	return b.namespace + ":" + k
}

// Get returns the stored bytes or ErrKeyNotFound
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the value stored under key
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := b.client.Set(ctx, b.key(key), value, 0).Err(); err != nil {
		if isOutOfMemory(err) {
			return fmt.Errorf("redis set %s: %w", key, domain.ErrQuotaExceeded)
		}
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Sizes returns the stored size in bytes of each existing key
func (b *RedisBackend) Sizes(ctx context.Context, keys []string) (map[string]int64, error) {
	pipe := b.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(keys))
	for i, k := range keys {
		cmds[i] = pipe.StrLen(ctx, b.key(k))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis strlen: %w", err)
	}

	sizes := make(map[string]int64, len(keys))
	for i, cmd := range cmds {
		if n := cmd.Val(); n > 0 {
			sizes[keys[i]] = n
		}
	}
	return sizes, nil
}

// Ping checks if Redis is available
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// isOutOfMemory detects the error Redis returns when maxmemory is reached
func isOutOfMemory(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM ")
}
