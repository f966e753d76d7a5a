// Package cache provides the key-value read accelerator used by the
// service layer. Entries are derived, disposable views: a miss or a
// backend failure always falls back to the source of truth.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the injected cache capability. Implementations must treat
// every operation as best-effort; correctness-sensitive decisions never
// read through a Store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TTLs per key family. Stats outlive content caches deliberately.
const (
	TTLQuiz            = 10 * time.Minute
	TTLQuizList        = 5 * time.Minute
	TTLCategories      = 10 * time.Minute
	TTLUserSubmissions = 5 * time.Minute
	TTLQuizStats       = 60 * time.Minute
)
