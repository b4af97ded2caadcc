package app

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"yuwelongo/internal/domain"
)

// QuestionProvider fetches a level's question batch and prepares it for display.
type QuestionProvider struct {
	service QuestionService

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionProvider(service QuestionService) *QuestionProvider {
	return NewQuestionProviderWithRand(service, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionProviderWithRand is used by tests for deterministic shuffles.
func NewQuestionProviderWithRand(service QuestionService, rnd *rand.Rand) *QuestionProvider {
	return &QuestionProvider{service: service, rnd: rnd}
}

// Load requests count random questions for levelID. A level the service
// reports as not found yields an empty batch, not an error. Questions that
// break authoring invariants are skipped.
func (p *QuestionProvider) Load(ctx context.Context, levelID int64, count int) ([]domain.PlayableQuestion, error) {
	questions, err := p.service.QuestionsForLevel(ctx, levelID, count)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]domain.PlayableQuestion, 0, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			log.Printf("skip question %d of level %d: %v", q.ID, levelID, err)
			continue
		}
		out = append(out, p.prepare(q))
	}
	return out, nil
}

func (p *QuestionProvider) prepare(q domain.Question) domain.PlayableQuestion {
	opts := q.Options[:]
	shuffled := make([]string, len(opts))
	copy(shuffled, opts)

	p.mu.Lock()
	p.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	p.mu.Unlock()

	return domain.PlayableQuestion{
		Question:       q,
		DisplayOptions: shuffled,
		MaskedPrompt:   domain.MaskPrompt(q.Prompt, q.CorrectAnswer),
	}
}
