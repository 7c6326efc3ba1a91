package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	signalKeyPrefix = "zh:foodUpdated:"
	signalTTL       = 24 * time.Hour
)

// SignalCache keeps the foodUpdated timestamp of each session in Redis,
// so every portal instance sees the same value.
type SignalCache struct {
	client *redis.Client
	now    func() time.Time
}

// NewSignalCache returns a Redis-backed signal store.
func NewSignalCache(client *redis.Client) *SignalCache {
	return &SignalCache{client: client, now: time.Now}
}

func (r *SignalCache) Touch(ctx context.Context, sessionID string) (time.Time, error) {
	ts := r.now().Truncate(time.Millisecond)
	if err := r.client.Set(ctx, signalKeyPrefix+sessionID, ts.UnixMilli(), signalTTL).Err(); err != nil {
		return time.Time{}, err
	}
	return ts, nil
}

func (r *SignalCache) Last(ctx context.Context, sessionID string) (time.Time, error) {
	ms, err := r.client.Get(ctx, signalKeyPrefix+sessionID).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}
