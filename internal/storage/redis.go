package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisRetries = 10

// RedisStore keeps each key as a Redis string under a namespace prefix.
// Update uses WATCH/MULTI/EXEC and retries when a watched key changes.
type RedisStore struct {
	client     *redis.Client
	namespace  string
	maxRetries int
}

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{
		client:     client,
		namespace:  namespace,
		maxRetries: defaultRedisRetries,
	}
}

func (s *RedisStore) key(k string) string {
	if s.namespace == "" {
		return k
	}
	return s.namespace + ":" + k
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return readRedis(ctx, s.client, s.key(key))
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readRedis(ctx context.Context, c redisGetter, key string) ([]byte, error) {
	v, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := checkJSON(key, value); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, keys []string, fn func(tx Accessor) error) error {
	watched := make([]string, 0, len(keys))
	for _, k := range keys {
		watched = append(watched, s.key(k))
	}

	txf := func(rtx *redis.Tx) error {
		staged := newStagedTx(func(ctx context.Context, key string) ([]byte, error) {
			return readRedis(ctx, rtx, s.key(key))
		})
		if err := fn(staged); err != nil {
			return err
		}
		if staged.empty() {
			return nil
		}
		_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return staged.apply(
				func(key string, value []byte) error {
					return pipe.Set(ctx, s.key(key), value, 0).Err()
				},
				func(key string) error {
					return pipe.Del(ctx, s.key(key)).Err()
				},
			)
		})
		return err
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, watched...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w after %d attempts", ErrConflict, s.maxRetries)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close is a no-op; the client is owned by the database package.
func (s *RedisStore) Close() error { return nil }
