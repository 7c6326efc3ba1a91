package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/session"
)

const sessionKeyPrefix = "zh:session:"

// SessionCache stores sessions in Redis with a TTL matching their expiry.
type SessionCache struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionCache returns a Redis-backed session store.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client, now: time.Now}
}

func (r *SessionCache) Load(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *SessionCache) Save(ctx context.Context, sess *domain.Session) (string, error) {
	ttl := sess.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return "", r.Delete(ctx, sess.ID)
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+sess.ID, raw, ttl).Err(); err != nil {
		return "", err
	}
	return sess.ID, nil
}

func (r *SessionCache) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKeyPrefix+id).Err()
}
