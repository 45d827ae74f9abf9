package userdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tfa:ud"

// RedisStore is a Store backed by Redis. Update uses optimistic WATCH
// transactions so concurrent read-modify-write cycles for the same
// record are serialized by the server.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	hygieneTTL time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the default key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithHygieneTTL applies a Redis expiry to every written record. This is
// storage hygiene only: record correctness never depends on the backend
// purging anything, expiry of pending codes is enforced by the caller.
func WithHygieneTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.hygieneTTL = ttl
	}
}

// NewRedisStore creates a Store on top of an established Redis client.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: redisKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) recordKey(userID uuid.UUID, namespace, key string) string {
	return s.prefix + ":" + userID.String() + ":" + namespace + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID, namespace, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.recordKey(userID, namespace, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, userID uuid.UUID, namespace, key string, value []byte) error {
	if err := s.client.Set(ctx, s.recordKey(userID, namespace, key), value, s.hygieneTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID uuid.UUID, namespace, key string) error {
	if err := s.client.Del(ctx, s.recordKey(userID, namespace, key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

// Update runs fn inside a WATCH/MULTI/EXEC cycle. If another writer
// touches the record between read and commit the transaction fails and
// the cycle retries with the fresh value, up to a small retry budget.
func (s *RedisStore) Update(ctx context.Context, userID uuid.UUID, namespace, key string, fn UpdateFunc) error {
	const maxRetries = 4
	rk := s.recordKey(userID, namespace, key)

	for range maxRetries {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, rk).Bytes()
			found := err == nil
			if err != nil && !errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
			}
			if !found {
				current = nil
			}

			next, err := fn(current, found)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if next == nil {
					pipe.Del(ctx, rk)
				} else {
					pipe.Set(ctx, rk, next, s.hygieneTTL)
				}
				return nil
			})
			return err
		}, rk)

		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return ErrUpdateConflict
}
