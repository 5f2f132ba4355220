package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps records as fields of one Redis hash per namespace.
type RedisStore struct {
	namespace string
	hash      string
	client    *redis.Client
	now       func() time.Time
}

// NewRedisStore connects to url (redis://...) and pings the server.
func NewRedisStore(ctx context.Context, url, namespace string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return newRedisStore(client, namespace), nil
}

func newRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisStore{
		namespace: namespace,
		hash:      "expertkit:memory:" + namespace,
		client:    client,
		now:       time.Now,
	}
}

// Namespace returns the store namespace.
func (s *RedisStore) Namespace() string { return s.namespace }

// Save writes value under key.
func (s *RedisStore) Save(ctx context.Context, key string, value any) error {
	field, err := SanitizeKey(key)
	if err != nil {
		return err
	}
	data, err := encodeRecord(value, s.now())
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.hash, field, data).Err(); err != nil {
		return fmt.Errorf("saving memory %s: %w", key, err)
	}
	return nil
}

// Load returns the record for key or ErrNotFound.
func (s *RedisStore) Load(ctx context.Context, key string) (*Record, error) {
	field, err := SanitizeKey(key)
	if err != nil {
		return nil, err
	}
	data, err := s.client.HGet(ctx, s.hash, field).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading memory %s: %w", key, err)
	}
	return decodeRecord(data)
}

// Keys lists stored keys in sorted order.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.client.HKeys(ctx, s.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("listing memory: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
