package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/session"
)

// SessionRepository stores sessions in the web_sessions table.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed session store.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Load(ctx context.Context, token string) (*domain.Session, error) {
	const query = `
        SELECT id, credential, role, flash, created_at, expires_at
        FROM web_sessions WHERE id=$1 AND expires_at > NOW()`

	var sess domain.Session
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&sess.ID,
		&sess.Credential,
		&sess.Role,
		&sess.FlashMessage,
		&sess.CreatedAt,
		&sess.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (r *SessionRepository) Save(ctx context.Context, sess *domain.Session) (string, error) {
	const query = `
        INSERT INTO web_sessions (id, credential, role, flash, created_at, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE
        SET credential=EXCLUDED.credential, role=EXCLUDED.role, flash=EXCLUDED.flash, expires_at=EXCLUDED.expires_at`

	if _, err := r.pool.Exec(ctx, query,
		sess.ID,
		sess.Credential,
		string(sess.Role),
		sess.FlashMessage,
		sess.CreatedAt,
		sess.ExpiresAt,
	); err != nil {
		return "", err
	}
	return sess.ID, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM web_sessions WHERE id=$1`, id)
	return err
}

// PurgeExpired removes sessions past their expiry and reports how many were dropped.
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM web_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
