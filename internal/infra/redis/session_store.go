package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis implementation of app.SessionRepository. Slots
// expire after ttl so abandoned sessions do not pile up; every Load of a live
// slot refreshes the expiry.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *SessionStore) Load(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if s.ttl > 0 {
		// best-effort sliding expiry
		_ = s.client.Expire(ctx, s.key(key), s.ttl).Err()
	}
	return id, true, nil
}

func (s *SessionStore) Save(ctx context.Context, key, sessionID string) error {
	return s.client.Set(ctx, s.key(key), sessionID, s.ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *SessionStore) key(slot string) string {
	return "game:session:" + slot
}
