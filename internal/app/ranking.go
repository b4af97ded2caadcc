package app

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"yuwelongo/internal/domain"
)

const (
	// DefaultRankingLimit is the top-N used when callers pass a non-positive limit.
	DefaultRankingLimit = 10
	// AnonymousName is shown for ranking rows without a user name.
	AnonymousName = "Anonymous"
)

// RankingService reads leaderboards and play history from the score service.
type RankingService struct {
	scores  ScoreService
	history HistoryService
}

// NewRankingService builds a RankingService; history may be nil when the
// backend does not expose it.
func NewRankingService(scores ScoreService, history HistoryService) *RankingService {
	return &RankingService{scores: scores, history: history}
}

// Board holds the global and per-level leaderboards shown side by side.
type Board struct {
	Global []domain.RankingRow `json:"global"`
	Level  []domain.RankingRow `json:"level"`
}

// Global returns the top limit players across all levels.
func (s *RankingService) Global(ctx context.Context, limit int) ([]domain.RankingRow, error) {
	entries, err := s.scores.GlobalRanking(ctx, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return rankRows(entries, normalizeLimit(limit)), nil
}

// ForLevel returns the best limit scores of a level.
func (s *RankingService) ForLevel(ctx context.Context, levelID int64, limit int) ([]domain.RankingRow, error) {
	entries, err := s.scores.LevelRanking(ctx, levelID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return rankRows(entries, normalizeLimit(limit)), nil
}

// Board fetches the global and level leaderboards concurrently.
func (s *RankingService) Board(ctx context.Context, levelID int64, limit int) (Board, error) {
	var board Board
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.Global(gctx, limit)
		board.Global = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.ForLevel(gctx, levelID, limit)
		board.Level = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return Board{}, err
	}
	return board, nil
}

// History returns the past plays of userID as ordered by the service.
func (s *RankingService) History(ctx context.Context, userID int64) ([]domain.HistoryEntry, error) {
	if s.history == nil {
		return nil, domain.ErrNotFound
	}
	return s.history.History(ctx, userID)
}

// TotalScore returns the accumulated score of userID.
func (s *RankingService) TotalScore(ctx context.Context, userID int64) (int, error) {
	if s.history == nil {
		return 0, domain.ErrNotFound
	}
	return s.history.TotalScore(ctx, userID)
}

// rankRows orders entries by score descending. The sort is stable so ties keep
// the order the service returned them in.
func rankRows(entries []domain.RankingEntry, limit int) []domain.RankingRow {
	sorted := append([]domain.RankingEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	rows := make([]domain.RankingRow, 0, len(sorted))
	for i, e := range sorted {
		if strings.TrimSpace(e.UserName) == "" {
			e.UserName = AnonymousName
		}
		rows = append(rows, domain.RankingRow{Position: i + 1, RankingEntry: e})
	}
	return rows
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRankingLimit
	}
	return limit
}
