package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each namespace in one Redis hash, so clearing a browser
// is a single DEL.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore wraps rdb.  prefix namespaces the hashes (default "kv").
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "kv"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (r *RedisStore) hashKey(ns string) string { return r.prefix + ":" + ns }

func (r *RedisStore) Get(ctx context.Context, ns, key string) ([]byte, error) {
	bs, err := r.rdb.HGet(ctx, r.hashKey(ns), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: redis hget: %w", err)
	}
	return bs, nil
}

func (r *RedisStore) Set(ctx context.Context, ns, key string, value []byte) error {
	if err := r.rdb.HSet(ctx, r.hashKey(ns), key, value).Err(); err != nil {
		return fmt.Errorf("kvstore: redis hset: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, ns string) error {
	if err := r.rdb.Del(ctx, r.hashKey(ns)).Err(); err != nil {
		return fmt.Errorf("kvstore: redis del: %w", err)
	}
	return nil
}
