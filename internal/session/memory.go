package session

import (
	"context"
	"sync"
	"time"

	"infobot-backend/internal/dialogue"
)

type entry struct {
	ctx       dialogue.ConversationContext
	updatedAt time.Time
}

// MemoryStore keeps contexts in process memory. Entries older than ttl are
// dropped on read and by Sweep.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (dialogue.ConversationContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sessionID]
	if !ok {
		return dialogue.ContextNone, nil
	}
	if m.expiredLocked(e) {
		delete(m.sessions, sessionID)
		return dialogue.ContextNone, nil
	}
	return e.ctx, nil
}

// Save stores c. Saving ContextNone removes the entry.
func (m *MemoryStore) Save(_ context.Context, sessionID string, c dialogue.ConversationContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c == dialogue.ContextNone {
		delete(m.sessions, sessionID)
		return nil
	}
	m.sessions[sessionID] = entry{ctx: c, updatedAt: m.now()}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// Sweep removes expired entries and reports how many were dropped.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if m.expiredLocked(e) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Len reports the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) expiredLocked(e entry) bool {
	return m.ttl > 0 && m.now().Sub(e.updatedAt) > m.ttl
}
