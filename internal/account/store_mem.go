package account

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded in-memory Repo, used in tests and as a
// stand-in before a database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]Account
	byEmail map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    map[string]Account{},
		byEmail: map[string]string{},
	}
}

func (m *MemoryStore) Create(_ context.Context, a Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[a.Email]; ok {
		return ErrEmailTaken
	}
	m.byID[a.ID] = a
	m.byEmail[a.Email] = a.ID
	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (m *MemoryStore) GetByEmail(_ context.Context, email string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return Account{}, ErrNotFound
	}
	return m.byID[id], nil
}

func (m *MemoryStore) GetManyByIDs(_ context.Context, ids []string) (map[string]Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Account, len(ids))
	for _, id := range ids {
		if a, ok := m.byID[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.LastLogin = at
	m.byID[id] = a
	return nil
}
