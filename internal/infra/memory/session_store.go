package memory

import (
	"context"
	"sync"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Ids live as long as the process.
type SessionStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		slots: make(map[string]string),
	}
}

func (s *SessionStore) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.slots[key]
	return id, ok, nil
}

func (s *SessionStore) Save(_ context.Context, key, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = sessionID
	return nil
}

func (s *SessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}
