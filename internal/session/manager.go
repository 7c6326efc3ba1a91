package session

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zerohunger/portal/internal/config"
	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/events"
)

const localsKey = "portal_session"

// ExpiryFunc reports when a credential stops being valid, if it says so.
type ExpiryFunc func(credential string) (time.Time, bool)

// Manager binds sessions to cookies and is the only writer of session state.
type Manager struct {
	store  Store
	cfg    config.SessionConfig
	expiry ExpiryFunc
	logger *zap.Logger
	now    func() time.Time
}

// ManagerDependencies bundles collaborators of the manager.
type ManagerDependencies struct {
	Store  Store
	Expiry ExpiryFunc
	Logger *zap.Logger
}

// NewManager constructs the manager.
func NewManager(cfg config.SessionConfig, deps ManagerDependencies) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "zh_session"
	}
	return &Manager{
		store:  deps.Store,
		cfg:    cfg,
		expiry: deps.Expiry,
		logger: logger,
		now:    time.Now,
	}
}

// Middleware loads the session before the handler and persists it afterwards when it changed.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := m.load(c)
		before := *sess
		c.Locals(localsKey, sess)

		err := c.Next()

		if *sess != before {
			if commitErr := m.commit(c, sess); commitErr != nil {
				m.logger.Error("session commit failed", zap.String("session_id", sess.ID), zap.Error(commitErr))
				if err == nil {
					err = commitErr
				}
			}
		}
		return err
	}
}

// FromContext returns the request's session. It is never nil behind Middleware.
func FromContext(c *fiber.Ctx) *domain.Session {
	sess, _ := c.Locals(localsKey).(*domain.Session)
	return sess
}

// SignIn stores credential and role together under a new session id and bounds
// the session by the credential's expiry. The pre-login record is dropped.
func (m *Manager) SignIn(ctx context.Context, sess *domain.Session, credential string, role domain.Role) error {
	if err := sess.SignIn(credential, role); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, sess.ID); err != nil {
		m.logger.Warn("pre-login session delete failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
	sess.ID = uuid.NewString()
	expiresAt := m.now().Add(m.cfg.TTL())
	if m.expiry != nil {
		if credExp, ok := m.expiry(credential); ok && credExp.Before(expiresAt) {
			expiresAt = credExp
		}
	}
	sess.ExpiresAt = expiresAt
	return nil
}

// SignOut clears credential and role together.
func (m *Manager) SignOut(sess *domain.Session) {
	sess.SignOut()
}

// Invalidate drops a stored session by id.
func (m *Manager) Invalidate(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}

// RegisterHandlers subscribes the manager to session lifecycle events.
func (m *Manager) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventSessionInvalidated, m.handleSessionInvalidated)
}

func (m *Manager) handleSessionInvalidated(ctx context.Context, event events.Event) error {
	m.logger.Info("invalidating session", zap.String("session_id", event.SessionID))
	return m.Invalidate(ctx, event.SessionID)
}

func (m *Manager) load(c *fiber.Ctx) *domain.Session {
	if token := c.Cookies(m.cfg.CookieName); token != "" {
		sess, err := m.store.Load(c.UserContext(), token)
		switch {
		case err == nil && !sess.Expired(m.now()):
			return sess
		case err == nil:
			_ = m.store.Delete(c.UserContext(), sess.ID)
		case !errors.Is(err, ErrNotFound):
			m.logger.Warn("session load failed", zap.Error(err))
		}
	}
	return m.fresh()
}

func (m *Manager) fresh() *domain.Session {
	now := m.now()
	return &domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.TTL()),
	}
}

func (m *Manager) commit(c *fiber.Ctx, sess *domain.Session) error {
	token, err := m.store.Save(c.UserContext(), sess)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		Secure:   m.cfg.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}
