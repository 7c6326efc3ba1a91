package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/session"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionCacheRoundTrip(t *testing.T) {
	mr, client := newRedis(t)
	cache := NewSessionCache(client)
	ctx := context.Background()

	sess := &domain.Session{ID: "sid-1", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	if err := sess.SignIn("cred", domain.RoleDonor); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	token, err := cache.Save(ctx, sess)
	if err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}
	if token != "sid-1" {
		t.Fatalf("Save: token want=sid-1 got=%s", token)
	}
	if ttl := mr.TTL(sessionKeyPrefix + "sid-1"); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("Save: unexpected ttl %s", ttl)
	}

	loaded, err := cache.Load(ctx, token)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if loaded.Credential != "cred" || loaded.Role != domain.RoleDonor {
		t.Fatalf("Load: unexpected session %+v", loaded)
	}

	if err := cache.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if _, err := cache.Load(ctx, token); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Load after delete: want ErrNotFound got %v", err)
	}
}

func TestSessionCacheExpires(t *testing.T) {
	mr, client := newRedis(t)
	cache := NewSessionCache(client)
	ctx := context.Background()

	sess := &domain.Session{ID: "sid-2", ExpiresAt: time.Now().Add(time.Minute)}
	if _, err := cache.Save(ctx, sess); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := cache.Load(ctx, "sid-2"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Load after ttl: want ErrNotFound got %v", err)
	}
}

func TestSignalCacheTouchAndLast(t *testing.T) {
	_, client := newRedis(t)
	signals := NewSignalCache(client)
	ctx := context.Background()

	last, err := signals.Last(ctx, "sid")
	if err != nil || !last.IsZero() {
		t.Fatalf("Last before touch: want zero got %s (%v)", last, err)
	}
	touched, err := signals.Touch(ctx, "sid")
	if err != nil {
		t.Fatalf("Touch: unexpected error: %v", err)
	}
	last, err = signals.Last(ctx, "sid")
	if err != nil {
		t.Fatalf("Last: unexpected error: %v", err)
	}
	if !last.Equal(touched) {
		t.Fatalf("Last: want=%s got=%s", touched, last)
	}
}
