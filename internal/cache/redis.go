package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/apperr"
)

// DefaultOpTimeout bounds every cache operation so an unreachable
// backend degrades to a miss instead of stalling the request.
const DefaultOpTimeout = 250 * time.Millisecond

// RedisStore implements Store on top of go-redis.
type RedisStore struct {
	rdb       *redis.Client
	opTimeout time.Duration
	log       zerolog.Logger
}

// NewRedisStore creates a RedisStore. opTimeout <= 0 selects the default.
func NewRedisStore(rdb *redis.Client, opTimeout time.Duration, log zerolog.Logger) *RedisStore {
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	return &RedisStore{
		rdb:       rdb,
		opTimeout: opTimeout,
		log:       log.With().Str("component", "cache").Logger(),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, apperr.Unavailable("cache get "+key, err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return apperr.Unavailable("cache set "+key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return apperr.Unavailable("cache delete", err)
	}
	return nil
}
