package app

import (
	"context"

	"yuwelongo/internal/domain"
)

// ResultSubmitter sends completed level results to the score service.
type ResultSubmitter struct {
	scores ScoreService
}

func NewResultSubmitter(scores ScoreService) *ResultSubmitter {
	return &ResultSubmitter{scores: scores}
}

// Submit forwards result and returns the service acknowledgement.
func (s *ResultSubmitter) Submit(ctx context.Context, result domain.GameResult) (domain.ResultAck, error) {
	return s.scores.SubmitResult(ctx, result)
}
