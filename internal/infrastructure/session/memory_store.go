package session

import (
	"context"
	"sync"
	"time"
)

const memorySweepEvery = time.Minute

// MemoryStore is an in-process Store used when Redis is disabled and in tests.
// Expired sessions are dropped on Load, and Save sweeps all of them at most
// once per minute so abandoned chats do not pile up.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[int64]Session
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{sessions: make(map[int64]Session), ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, chatID int64) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		return New(chatID), nil
	}
	if m.now().Sub(s.UpdatedAt) > m.ttl {
		delete(m.sessions, chatID)
		return New(chatID), nil
	}
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweepLocked(now)
	s.UpdatedAt = now.UTC()
	m.sessions[s.ChatID] = s
	return nil
}

func (m *MemoryStore) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < memorySweepEvery {
		return
	}
	m.lastSweep = now
	for id, s := range m.sessions {
		if now.Sub(s.UpdatedAt) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

func (m *MemoryStore) Clear(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

var _ Store = (*MemoryStore)(nil)
