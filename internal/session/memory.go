package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	playerID int64
	expires  time.Time
}

// Memory is an in-process Store. Sessions do not survive a restart.
type Memory struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]entry),
	}
}

func (m *Memory) Create(_ context.Context, playerID int64) (string, error) {
	token := newToken()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	m.sessions[token] = entry{playerID: playerID, expires: m.now().Add(m.ttl)}
	return token, nil
}

func (m *Memory) Lookup(_ context.Context, token string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[token]
	if !ok {
		return 0, ErrInvalid
	}
	if !m.now().Before(e.expires) {
		delete(m.sessions, token)
		return 0, ErrInvalid
	}
	return e.playerID, nil
}

func (m *Memory) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// sweep drops expired sessions. Callers hold mu.
func (m *Memory) sweep() {
	now := m.now()
	for token, e := range m.sessions {
		if !now.Before(e.expires) {
			delete(m.sessions, token)
		}
	}
}
