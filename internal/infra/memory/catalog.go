package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"yuwelongo/internal/domain"
)

// StaticCatalog serves levels and questions from memory (useful for tests/demos).
type StaticCatalog struct {
	levels    []domain.Level
	questions map[int64][]domain.Question

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewStaticCatalog(levels []domain.Level, questions []domain.Question) *StaticCatalog {
	byLevel := make(map[int64][]domain.Question)
	for _, q := range questions {
		byLevel[q.LevelID] = append(byLevel[q.LevelID], q)
	}
	return &StaticCatalog{
		levels:    levels,
		questions: byLevel,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *StaticCatalog) Levels(_ context.Context) ([]domain.Level, error) {
	return copyLevels(c.levels), nil
}

// QuestionsForLevel returns up to count questions of the level in random order.
func (c *StaticCatalog) QuestionsForLevel(_ context.Context, levelID int64, count int) ([]domain.Question, error) {
	pool := c.questions[levelID]
	if len(pool) == 0 {
		return nil, domain.ErrNotFound
	}

	out := append([]domain.Question(nil), pool...)
	c.mu.Lock()
	c.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	c.mu.Unlock()
	if count > 0 && len(out) > count {
		out = out[:count]
	}
	return out, nil
}
