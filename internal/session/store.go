// Package session keeps the {credential, role} pair of each browser on the server side.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/zerohunger/portal/internal/domain"
)

// ErrNotFound is returned when a cookie token resolves to no live session.
var ErrNotFound = errors.New("session not found")

// Store persists sessions. Save returns the token to place in the cookie:
// the session id for server-side stores, the sealed session for cookie stores.
type Store interface {
	Load(ctx context.Context, token string) (*domain.Session, error)
	Save(ctx context.Context, sess *domain.Session) (string, error)
	Delete(ctx context.Context, id string) error
}

// SignalStore records when a session last changed a listing's status.
type SignalStore interface {
	Touch(ctx context.Context, sessionID string) (time.Time, error)
	Last(ctx context.Context, sessionID string) (time.Time, error)
}
