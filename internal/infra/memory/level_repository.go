package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"yuwelongo/internal/domain"
)

const levelsKey = "levels"

// LevelLoader fetches the level catalog from a backing service.
type LevelLoader interface {
	Levels(ctx context.Context) ([]domain.Level, error)
}

// LevelRepository caches the level catalog with TTL to avoid repeated backend hits.
type LevelRepository struct {
	loader LevelLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	levels    []domain.Level
	expiresAt time.Time
}

func NewLevelRepository(loader LevelLoader, ttl time.Duration) *LevelRepository {
	return &LevelRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *LevelRepository) Levels(ctx context.Context) ([]domain.Level, error) {
	if levels, ok := r.cached(r.clock()); ok {
		return levels, nil
	}

	result, err, _ := r.sf.Do(levelsKey, func() (interface{}, error) {
		now := r.clock()
		if levels, ok := r.cached(now); ok {
			return levels, nil
		}

		levels, err := r.loader.Levels(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.levels = levels
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return levels, nil
	})
	if err != nil {
		return nil, err
	}
	return copyLevels(result.([]domain.Level)), nil
}

// Invalidate drops the cached catalog, e.g. after an administrator edit.
func (r *LevelRepository) Invalidate() {
	r.mu.Lock()
	r.levels = nil
	r.expiresAt = time.Time{}
	r.mu.Unlock()
}

func (r *LevelRepository) cached(now time.Time) ([]domain.Level, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.levels != nil && r.expiresAt.After(now) {
		return copyLevels(r.levels), true
	}
	return nil, false
}

func (r *LevelRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func copyLevels(levels []domain.Level) []domain.Level {
	return append([]domain.Level(nil), levels...)
}
