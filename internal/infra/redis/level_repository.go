package redis

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"yuwelongo/internal/domain"
)

// LevelLoader fetches the level catalog from a backing service.
type LevelLoader interface {
	Levels(ctx context.Context) ([]domain.Level, error)
}

// LevelRepository caches the level catalog in Redis (one JSON value shared by
// every game server) and falls back to the loader on cache miss.
type LevelRepository struct {
	client *redis.Client
	loader LevelLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewLevelRepository(client *redis.Client, loader LevelLoader, ttl time.Duration) *LevelRepository {
	return &LevelRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

const levelsKey = "game:levels"

func (r *LevelRepository) Levels(ctx context.Context) ([]domain.Level, error) {
	if levels, ok := r.cached(ctx); ok {
		return levels, nil
	}

	result, err, _ := r.sf.Do(levelsKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if levels, ok := r.cached(ctx); ok {
			return levels, nil
		}

		levels, err := r.loader.Levels(ctx)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(levels)
		if err != nil {
			return nil, err
		}
		if err := r.client.Set(ctx, levelsKey, raw, r.ttlWithJitter()).Err(); err != nil {
			log.Printf("cache levels: %v", err)
		}
		return levels, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Level), nil
}

// Invalidate drops the cached catalog for every server sharing the Redis instance.
func (r *LevelRepository) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, levelsKey).Err()
}

func (r *LevelRepository) cached(ctx context.Context) ([]domain.Level, bool) {
	raw, err := r.client.Get(ctx, levelsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var levels []domain.Level
	if err := json.Unmarshal(raw, &levels); err != nil {
		return nil, false
	}
	return levels, true
}

func (r *LevelRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
