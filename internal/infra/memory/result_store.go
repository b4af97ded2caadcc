package memory

import (
	"context"
	"sort"
	"sync"

	"yuwelongo/internal/domain"
)

// ResultStore keeps submitted game results in memory and derives rankings from them.
type ResultStore struct {
	mu      sync.RWMutex
	nextID  int64
	results []storedResult
}

type storedResult struct {
	id int64
	domain.GameResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) SubmitResult(_ context.Context, result domain.GameResult) (domain.ResultAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.results = append(s.results, storedResult{id: s.nextID, GameResult: result})
	return domain.ResultAck{ID: s.nextID}, nil
}

// Results returns a copy of every stored result in submission order.
func (s *ResultStore) Results() []domain.GameResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GameResult, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r.GameResult)
	}
	return out
}

// GlobalRanking sums every user's scores. Ties keep first-submission order.
func (s *ResultStore) GlobalRanking(_ context.Context, limit int) ([]domain.RankingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return topEntries(s.aggregate(func(r storedResult) bool { return true }, sumScore), limit), nil
}

// LevelRanking keeps each user's best score on the level.
func (s *ResultStore) LevelRanking(_ context.Context, levelID int64, limit int) ([]domain.RankingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return topEntries(s.aggregate(func(r storedResult) bool { return r.LevelID == levelID }, maxScore), limit), nil
}

func (s *ResultStore) History(_ context.Context, userID int64) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.HistoryEntry
	for i := len(s.results) - 1; i >= 0; i-- {
		r := s.results[i]
		if r.UserID != userID {
			continue
		}
		out = append(out, domain.HistoryEntry{
			ID:           r.id,
			LevelID:      r.LevelID,
			Score:        r.Score,
			CorrectCount: r.CorrectCount,
			TotalCount:   r.TotalCount,
			PlayedAt:     r.PlayedAt,
			SessionID:    r.SessionID,
		})
	}
	return out, nil
}

func (s *ResultStore) TotalScore(_ context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, r := range s.results {
		if r.UserID == userID {
			total += r.Score
		}
	}
	return total, nil
}

func sumScore(acc, score int) int { return acc + score }

func maxScore(acc, score int) int {
	if score > acc {
		return score
	}
	return acc
}

func (s *ResultStore) aggregate(keep func(storedResult) bool, fold func(acc, score int) int) []domain.RankingEntry {
	index := make(map[int64]int)
	var entries []domain.RankingEntry
	for _, r := range s.results {
		if !keep(r) {
			continue
		}
		i, ok := index[r.UserID]
		if !ok {
			index[r.UserID] = len(entries)
			entries = append(entries, domain.RankingEntry{UserID: r.UserID, UserName: r.UserName, Score: r.Score})
			continue
		}
		entries[i].Score = fold(entries[i].Score, r.Score)
		if r.UserName != "" {
			entries[i].UserName = r.UserName
		}
	}
	return entries
}

func topEntries(entries []domain.RankingEntry, limit int) []domain.RankingEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
