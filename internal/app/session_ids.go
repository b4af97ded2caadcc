package app

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SessionSlot is the fixed slot name holding the game session id.
const SessionSlot = "gameSessionId"

// SessionIDs keeps one opaque game session id per client in a SessionRepository.
type SessionIDs struct {
	repo  SessionRepository
	key   string
	now   func() time.Time
	newID func() string
}

// NewSessionIDs scopes the session slot to clientKey (one per browser tab or terminal).
func NewSessionIDs(repo SessionRepository, clientKey string) *SessionIDs {
	ids := &SessionIDs{
		repo: repo,
		key:  clientKey + ":" + SessionSlot,
		now:  time.Now,
	}
	ids.newID = ids.generate
	return ids
}

// GetOrCreate returns the stored session id or stores a freshly generated one.
// When the slot cannot be read the caller gets a throwaway id and the slot is
// left untouched, so a session stored there stays resumable.
func (s *SessionIDs) GetOrCreate(ctx context.Context) string {
	id, ok, err := s.repo.Load(ctx, s.key)
	if err != nil {
		log.Printf("load session id %s: %v", s.key, err)
		return s.newID()
	}
	if ok && id != "" {
		return id
	}

	id = s.newID()
	if err := s.repo.Save(ctx, s.key, id); err != nil {
		log.Printf("save session id %s: %v", s.key, err)
	}
	return id
}

// Clear removes the stored session id. Clearing an empty slot is a no-op.
func (s *SessionIDs) Clear(ctx context.Context) {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		log.Printf("clear session id %s: %v", s.key, err)
	}
}

// generate builds "<unix millis>-<uuid>", which stays URL and JSON safe.
func (s *SessionIDs) generate() string {
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + uuid.NewString()
}
