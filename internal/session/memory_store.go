package session

import (
	"context"
	"sync"
	"time"

	"github.com/zerohunger/portal/internal/domain"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]domain.Session{}, now: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, token string) (*domain.Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok || sess.Expired(m.now()) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (m *MemoryStore) Save(_ context.Context, sess *domain.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = *sess
	return sess.ID, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are held.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// MemorySignals keeps cross-tab change signals in process memory.
type MemorySignals struct {
	mu      sync.Mutex
	touched map[string]time.Time
	now     func() time.Time
}

// NewMemorySignals constructs an empty signal store.
func NewMemorySignals() *MemorySignals {
	return &MemorySignals{touched: map[string]time.Time{}, now: time.Now}
}

func (m *MemorySignals) Touch(_ context.Context, sessionID string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts := m.now().Truncate(time.Millisecond)
	m.touched[sessionID] = ts
	return ts, nil
}

func (m *MemorySignals) Last(_ context.Context, sessionID string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.touched[sessionID], nil
}
