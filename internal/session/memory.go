package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	data    Data
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]memoryEntry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Load(ctx context.Context, id uuid.UUID) (Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return Data{}, ErrNotFound
	}
	if m.now().After(e.expires) {
		delete(m.sessions, id)
		return Data{}, ErrNotFound
	}
	return e.data, nil
}

func (m *MemoryStore) Save(ctx context.Context, id uuid.UUID, data Data, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sessions[id] = memoryEntry{data: data, expires: now.Add(ttl)}

	// Opportunistic sweep keeps the map bounded by live sessions.
	for k, e := range m.sessions {
		if now.After(e.expires) {
			delete(m.sessions, k)
		}
	}
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet swept.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
